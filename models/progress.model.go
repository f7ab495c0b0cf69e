package models

import "gorm.io/gorm"

// QuizAnswer records that a user has answered a quiz question correctly
// at least once. The composite unique index gives the "answered questions"
// set its set semantics: concurrent inserts of the same key collapse into
// one row via ON CONFLICT DO NOTHING.
type QuizAnswer struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"uniqueIndex:idx_user_quiz_answer;not null"`
	SectionID     uint `json:"section_id" gorm:"uniqueIndex:idx_user_quiz_answer;not null"`
	QuestionIndex int  `json:"question_index" gorm:"uniqueIndex:idx_user_quiz_answer;not null"`
}

// SectionCompletion marks a section as completed by a user
type SectionCompletion struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_user_section_completion;not null"`
	SectionID uint `json:"section_id" gorm:"uniqueIndex:idx_user_section_completion;not null"`
	CourseID  uint `json:"course_id" gorm:"index;not null"`
}

// CourseCompletion marks a course as fully completed by a user
type CourseCompletion struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_course_completion;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_user_course_completion;not null"`
}

// Unlock sources
const (
	UnlockSourceRequest = "REQUEST"
	UnlockSourceAdmin   = "ADMIN"
)

// CourseUnlock grants a user paid access to a course
type CourseUnlock struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_user_course_unlock;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_user_course_unlock;not null"`
	Source   string `json:"source" gorm:"default:'REQUEST'"` // REQUEST, ADMIN
}

// XPEvent is an append-only ledger row written for every gameplay XP award
type XPEvent struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index;not null"`
	Amount int    `json:"amount" gorm:"not null"`
	Reason string `json:"reason"`
}
