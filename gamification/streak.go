package gamification

import (
	"errors"
	"time"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/apperr"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// dayOf truncates a timestamp to its calendar day. Day boundaries use the
// server's local timezone; one convention, applied everywhere.
func dayOf(t time.Time) time.Time {
	return now.New(t.Local()).BeginningOfDay()
}

// daysBetween counts calendar days from a to b. The dates are re-anchored
// in UTC first, so DST transitions (23- and 25-hour local days) cannot
// skew the count.
func daysBetween(a, b time.Time) int {
	ad, bd := dayOf(a), dayOf(b)
	au := time.Date(ad.Year(), ad.Month(), ad.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(bd.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// UpdateStreak applies the daily streak rules to the user in memory and
// reports whether anything changed. Same calendar day: no change. Next
// day: increment. Gap of more than one day: reset to 1. First activity
// ever (or a zeroed count after an admin reset) starts a fresh streak.
func UpdateStreak(user *models.User, t time.Time) bool {
	if user.LastActiveAt == nil || user.StreakCount == 0 {
		user.StreakCount = 1
		last := t
		user.LastActiveAt = &last
		return true
	}

	diffDays := daysBetween(*user.LastActiveAt, t)
	if diffDays == 0 {
		return false
	}

	if diffDays == 1 {
		user.StreakCount++
	} else {
		user.StreakCount = 1
	}
	last := t
	user.LastActiveAt = &last
	return true
}

// RefreshStreak loads the user, applies the streak rules for the given
// moment and persists the result. Invoked on every identity check.
func RefreshStreak(db *gorm.DB, userID uint, t time.Time) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Storage(err)
	}

	if !UpdateStreak(&user, t) {
		return &user, nil
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"streak_count":   user.StreakCount,
			"last_active_at": user.LastActiveAt,
		}).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	return &user, nil
}

// SetStreak is the administrative override for the streak counter
func SetStreak(db *gorm.DB, userID uint, count int, t time.Time) (*models.User, error) {
	if count < 0 {
		return nil, apperr.InvalidArgument("streak count must not be negative")
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Storage(err)
	}

	user.StreakCount = count
	user.LastActiveAt = &t
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"streak_count":   count,
			"last_active_at": t,
		}).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	return &user, nil
}
