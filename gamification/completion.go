package gamification

import (
	"errors"
	"fmt"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/apperr"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionResult describes the outcome of a section completion
type CompletionResult struct {
	AlreadyCompleted bool `json:"already_completed"`
	XPAwarded        int  `json:"xp_awarded"`
	CourseCompleted  bool `json:"course_completed"` // course newly completed by this call
	LevelUp          bool `json:"level_up"`
	NewLevel         int  `json:"new_level"`
}

// CompleteSection marks a section as completed for the user and awards the
// section XP once; repeat calls are no-ops blocked by the set membership
// itself. When the last section of a course completes, the course bonus is
// awarded exactly once. The unique-index insert is the guard, so two
// racing completions cannot both take the bonus.
func CompleteSection(db *gorm.DB, userID, sectionID uint) (*CompletionResult, error) {
	var result *CompletionResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user")
			}
			return apperr.Storage(err)
		}

		var section models.Section
		if err := tx.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("section")
			}
			return apperr.Storage(err)
		}

		result = &CompletionResult{}

		completion := models.SectionCompletion{UserID: userID, SectionID: sectionID, CourseID: section.CourseID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
		if res.Error != nil {
			return apperr.Storage(res.Error)
		}
		if res.RowsAffected == 0 {
			result.AlreadyCompleted = true
			return nil
		}

		award, err := AwardXP(tx, userID, SectionXP, fmt.Sprintf("section:%d", sectionID))
		if err != nil {
			return err
		}
		result.XPAwarded = award.XPAwarded
		result.LevelUp = award.LevelUp
		result.NewLevel = award.NewLevel

		// Course completion check against the state including the row just
		// inserted, never a stale re-read.
		var totalSections int64
		if err := tx.Model(&models.Section{}).
			Where("course_id = ? AND is_deleted = ?", section.CourseID, false).
			Count(&totalSections).Error; err != nil {
			return apperr.Storage(err)
		}
		var completed int64
		if err := tx.Model(&models.SectionCompletion{}).
			Where("user_id = ? AND course_id = ?", userID, section.CourseID).
			Count(&completed).Error; err != nil {
			return apperr.Storage(err)
		}

		if totalSections > 0 && completed >= totalSections {
			courseDone := models.CourseCompletion{UserID: userID, CourseID: section.CourseID}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&courseDone)
			if res.Error != nil {
				return apperr.Storage(res.Error)
			}
			if res.RowsAffected > 0 {
				bonus, err := AwardXP(tx, userID, CourseBonusXP, fmt.Sprintf("course:%d", section.CourseID))
				if err != nil {
					return err
				}
				result.CourseCompleted = true
				result.XPAwarded += bonus.XPAwarded
				result.LevelUp = result.LevelUp || bonus.LevelUp
				result.NewLevel = bonus.NewLevel
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
