package gamification

import (
	"errors"
	"fmt"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/apperr"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnswerResult is returned for every quiz answer submission. The correct
// option index is always revealed, right or wrong, so the client can show
// immediate feedback.
type AnswerResult struct {
	IsCorrect        bool `json:"is_correct"`
	CorrectOption    int  `json:"correct_option"`
	XPAwarded        int  `json:"xp_awarded"`
	AlreadyAnswered  bool `json:"already_answered"`
	SectionCompleted bool `json:"section_completed"` // section newly auto-completed by this answer
}

// SubmitAnswer evaluates one quiz answer for a user.
//
// Per (user, section, question) the state machine is: unanswered ->
// answered-correct (terminal, XP exactly once) or answered-incorrect
// (retry allowed). XP is awarded only when the answer is correct AND the
// question has never been answered AND the section is not already
// completed. The two guards are independent so a lost per-question marker
// still cannot re-open the award. All mutations commit in one transaction.
func SubmitAnswer(db *gorm.DB, userID, sectionID uint, questionIndex, selectedOption int) (*AnswerResult, error) {
	if questionIndex < 0 {
		return nil, apperr.InvalidArgument("question index must not be negative")
	}

	var result *AnswerResult
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
		if section.Type != models.SectionTypeQuiz {
			return apperr.InvalidArgument("section has no quiz")
		}

		var question models.Question
		if err := tx.Where("section_id = ? AND question_index = ?", sectionID, questionIndex).
			First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("question")
			}
			return apperr.Storage(err)
		}

		options, err := question.OptionList()
		if err != nil {
			return apperr.Storage(err)
		}
		if selectedOption < 0 || selectedOption >= len(options) {
			return apperr.InvalidArgument("selected option out of range")
		}

		isCorrect := selectedOption == question.CorrectOption

		var alreadyAnswered int64
		if err := tx.Model(&models.QuizAnswer{}).
			Where("user_id = ? AND section_id = ? AND question_index = ?", userID, sectionID, questionIndex).
			Count(&alreadyAnswered).Error; err != nil {
			return apperr.Storage(err)
		}

		var sectionDone int64
		if err := tx.Model(&models.SectionCompletion{}).
			Where("user_id = ? AND section_id = ?", userID, sectionID).
			Count(&sectionDone).Error; err != nil {
			return apperr.Storage(err)
		}

		result = &AnswerResult{
			IsCorrect:       isCorrect,
			CorrectOption:   question.CorrectOption,
			AlreadyAnswered: alreadyAnswered > 0,
		}

		if !isCorrect {
			return nil
		}

		// Record the correct answer regardless of the XP outcome: the set
		// membership drives "previously answered" display and completion.
		answer := models.QuizAnswer{UserID: userID, SectionID: sectionID, QuestionIndex: questionIndex}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&answer).Error; err != nil {
			return apperr.Storage(err)
		}

		if alreadyAnswered == 0 && sectionDone == 0 {
			award, err := AwardXP(tx, userID, QuestionXP, fmt.Sprintf("quiz:%d:%d", sectionID, questionIndex))
			if err != nil {
				return err
			}
			result.XPAwarded = award.XPAwarded
		}

		// Auto-complete the section once every question index is answered,
		// evaluated against the state this transaction just wrote. Answer
		// rows are counted only for indexes the section currently has, so
		// markers left behind by a question-list rewrite cannot complete a
		// section with a live question still unanswered.
		var totalQuestions int64
		if err := tx.Model(&models.Question{}).Where("section_id = ?", sectionID).
			Count(&totalQuestions).Error; err != nil {
			return apperr.Storage(err)
		}
		currentIndexes := tx.Model(&models.Question{}).
			Select("question_index").Where("section_id = ?", sectionID)
		var answered int64
		if err := tx.Model(&models.QuizAnswer{}).
			Where("user_id = ? AND section_id = ? AND question_index IN (?)",
				userID, sectionID, currentIndexes).
			Count(&answered).Error; err != nil {
			return apperr.Storage(err)
		}

		if totalQuestions > 0 && answered >= totalQuestions && sectionDone == 0 {
			completion := models.SectionCompletion{UserID: userID, SectionID: sectionID, CourseID: section.CourseID}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
			if res.Error != nil {
				return apperr.Storage(res.Error)
			}
			result.SectionCompleted = res.RowsAffected > 0
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
