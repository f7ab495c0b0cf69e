package gamification

import (
	"errors"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/apperr"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"gorm.io/gorm"
)

// AwardResult describes the outcome of one XP award
type AwardResult struct {
	PreviousLevel int  `json:"previous_level"`
	NewLevel      int  `json:"new_level"`
	LevelUp       bool `json:"level_up"`
	XPAwarded     int  `json:"xp_awarded"`
	NewTotalXP    int  `json:"new_total_xp"`
}

// AwardXP adds amount XP to the user, recomputes the cached level and
// writes an XPEvent ledger row. The increment runs as xp = xp + ? so
// concurrent awards of different events do not lose updates.
//
// AwardXP itself is NOT idempotent: calling it twice doubles the award.
// At-most-once per gameplay event is the caller's job (answered-question
// and completed-section guards in this package). Run it inside the
// caller's transaction so the award and its guards commit together.
func AwardXP(tx *gorm.DB, userID uint, amount int, reason string) (*AwardResult, error) {
	if amount <= 0 {
		return nil, apperr.InvalidArgument("xp amount must be positive")
	}

	var user models.User
	if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Storage(err)
	}

	previousLevel := user.Level

	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	// Re-read the committed total before deriving the level, so two
	// concurrent awards both see their combined effect.
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	newLevel := LevelForXP(user.XP)
	if newLevel != user.Level {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("level", newLevel).Error; err != nil {
			return nil, apperr.Storage(err)
		}
	}

	event := models.XPEvent{UserID: userID, Amount: amount, Reason: reason}
	if err := tx.Create(&event).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	return &AwardResult{
		PreviousLevel: previousLevel,
		NewLevel:      newLevel,
		LevelUp:       newLevel > previousLevel,
		XPAwarded:     amount,
		NewTotalXP:    user.XP,
	}, nil
}

// SetXP is the administrative override: it replaces the user's XP total
// outright, recomputes the level and writes no ledger row.
func SetXP(db *gorm.DB, userID uint, xp int) (*models.User, error) {
	if xp < 0 {
		return nil, apperr.InvalidArgument("xp must not be negative")
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Storage(err)
	}

	user.XP = xp
	user.Level = LevelForXP(xp)
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{"xp": user.XP, "level": user.Level}).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	return &user, nil
}
