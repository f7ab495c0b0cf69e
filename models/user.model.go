package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name   string `gorm:"default:''"`
	Email  string `gorm:"unique;not null"`
	Mobile string `gorm:"default:''"`
	Role   string `gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	// Password field name kept for wire compatibility; stores the bcrypt hash
	Password string `gorm:"not null" json:"-"`

	// Gamification state. Level is cached and always recomputed from XP
	// after every award, so Level == LevelForXP(XP) holds between requests.
	XP           int        `gorm:"default:0" json:"xp"`
	Level        int        `gorm:"default:1" json:"level"`
	StreakCount  int        `gorm:"default:0" json:"streak_count"`
	LastActiveAt *time.Time `json:"last_active_at"`

	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `gorm:"default:false" json:"-"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `gorm:"default:false" json:"-"`
}
