package gamification

import (
	"fmt"
	"strings"
	"testing"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database. The DSN is keyed by
// the test name so parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test Student",
		Email:    fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "."))),
		Password: "hashed",
		Role:     "STUDENT",
		Level:    1,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createQuizSection builds a published course with one QUIZ section holding
// questionCount questions. Every question has four options and the correct
// option is index 1.
func createQuizSection(t *testing.T, db *gorm.DB, questionCount int) (*models.Course, *models.Section) {
	t.Helper()

	course := models.Course{Title: "Go Basics", IsFree: true, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	section := models.Section{
		CourseID: course.ID,
		Title:    "Final Quiz",
		Type:     models.SectionTypeQuiz,
	}
	require.NoError(t, db.Create(&section).Error)

	for i := 0; i < questionCount; i++ {
		question := models.Question{
			SectionID:     section.ID,
			QuestionIndex: i,
			Text:          fmt.Sprintf("Question %d", i+1),
			CorrectOption: 1,
		}
		require.NoError(t, question.SetOptions([]string{"A", "B", "C", "D"}))
		require.NoError(t, db.Create(&question).Error)
	}

	return &course, &section
}

// createTextSection adds a plain TEXT section to an existing course
func createTextSection(t *testing.T, db *gorm.DB, courseID uint) *models.Section {
	t.Helper()

	section := models.Section{
		CourseID: courseID,
		Title:    "Reading",
		Type:     models.SectionTypeText,
		Content:  "Some lesson text.",
	}
	require.NoError(t, db.Create(&section).Error)
	return &section
}
