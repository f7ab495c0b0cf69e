package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/config"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"
	courseRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/courseRoutes"
	progressRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/progressRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupApp wires the routes against a fresh in-memory database swapped
// into the global connection the controllers read.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{Port: "3000", JWTKey: "test-secret", SaltRound: 4}

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	return app
}

func seedStudent(t *testing.T) (*models.User, string) {
	t.Helper()

	user := models.User{
		Name:  "Student",
		Email: fmt.Sprintf("%s@example.com", strings.ReplaceAll(t.Name(), "/", ".")),
		Role:  "STUDENT",
		Level: 1,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

// seedCourseWithQuiz creates a course holding one two-question quiz
// section and one text section. Correct option is always index 1.
func seedCourseWithQuiz(t *testing.T, free bool) (*models.Course, *models.Section, *models.Section) {
	t.Helper()
	db := database.Database.Db

	course := models.Course{Title: "Go Basics", IsFree: free, IsPublished: true}
	if !free {
		course.Price = 5000
	}
	require.NoError(t, db.Create(&course).Error)

	quiz := models.Section{CourseID: course.ID, Title: "Quiz", Type: models.SectionTypeQuiz}
	require.NoError(t, db.Create(&quiz).Error)
	for i := 0; i < 2; i++ {
		question := models.Question{SectionID: quiz.ID, QuestionIndex: i, Text: fmt.Sprintf("Q%d", i+1), CorrectOption: 1}
		require.NoError(t, question.SetOptions([]string{"A", "B", "C"}))
		require.NoError(t, db.Create(&question).Error)
	}

	text := models.Section{CourseID: course.ID, Title: "Reading", Type: models.SectionTypeText, Content: "lesson"}
	require.NoError(t, db.Create(&text).Error)

	return &course, &quiz, &text
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp, env
}

func answerPath(course *models.Course, section *models.Section) string {
	return fmt.Sprintf("/course/%d/section/%d/quiz/answer", course.ID, section.ID)
}

func completePath(course *models.Course, section *models.Section) string {
	return fmt.Sprintf("/course/%d/section/%d/complete", course.ID, section.ID)
}

func TestQuizAndCompletionFlow(t *testing.T) {
	app := setupApp(t)
	user, token := seedStudent(t)
	course, quiz, text := seedCourseWithQuiz(t, true)

	// First correct answer earns question XP
	resp, env := doJSON(t, app, "POST", answerPath(course, quiz), token,
		fiber.Map{"question_index": 0, "selected_option": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var answer struct {
		IsCorrect        bool `json:"is_correct"`
		XPAwarded        int  `json:"xp_awarded"`
		AlreadyAnswered  bool `json:"already_answered"`
		SectionCompleted bool `json:"section_completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &answer))
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 10, answer.XPAwarded)
	assert.False(t, answer.SectionCompleted)

	// Resubmitting the same answer is accepted but earns nothing
	resp, env = doJSON(t, app, "POST", answerPath(course, quiz), token,
		fiber.Map{"question_index": 0, "selected_option": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &answer))
	assert.True(t, answer.AlreadyAnswered)
	assert.Equal(t, 0, answer.XPAwarded)

	// Second question closes the quiz section
	resp, env = doJSON(t, app, "POST", answerPath(course, quiz), token,
		fiber.Map{"question_index": 1, "selected_option": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &answer))
	assert.True(t, answer.SectionCompleted)

	// Completing the text section finishes the course
	resp, env = doJSON(t, app, "POST", completePath(course, text), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var completion struct {
		AlreadyCompleted bool `json:"already_completed"`
		XPAwarded        int  `json:"xp_awarded"`
		CourseCompleted  bool `json:"course_completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &completion))
	assert.True(t, completion.CourseCompleted)
	assert.Equal(t, 550, completion.XPAwarded)

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, user.ID).Error)
	assert.Equal(t, 570, stored.XP) // 2 questions + section + course bonus
}

func TestCompleteSectionIdempotentOverHTTP(t *testing.T) {
	app := setupApp(t)
	_, token := seedStudent(t)
	course, _, text := seedCourseWithQuiz(t, true)

	resp, _ := doJSON(t, app, "POST", completePath(course, text), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, app, "POST", completePath(course, text), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var completion struct {
		AlreadyCompleted bool `json:"already_completed"`
		XPAwarded        int  `json:"xp_awarded"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &completion))
	assert.True(t, completion.AlreadyCompleted)
	assert.Equal(t, 0, completion.XPAwarded)
}

func TestQuizAnswerLockedCourse(t *testing.T) {
	app := setupApp(t)
	_, token := seedStudent(t)
	course, quiz, _ := seedCourseWithQuiz(t, false)

	resp, env := doJSON(t, app, "POST", answerPath(course, quiz), token,
		fiber.Map{"question_index": 0, "selected_option": 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestQuizAnswerUnlockedAfterGrant(t *testing.T) {
	app := setupApp(t)
	user, token := seedStudent(t)
	course, quiz, _ := seedCourseWithQuiz(t, false)

	unlock := models.CourseUnlock{UserID: user.ID, CourseID: course.ID, Source: models.UnlockSourceAdmin}
	require.NoError(t, database.Database.Db.Create(&unlock).Error)

	resp, _ := doJSON(t, app, "POST", answerPath(course, quiz), token,
		fiber.Map{"question_index": 0, "selected_option": 1})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestQuizAnswerRequiresAuth(t *testing.T) {
	app := setupApp(t)
	course, quiz, _ := seedCourseWithQuiz(t, true)

	resp, _ := doJSON(t, app, "POST", answerPath(course, quiz), "",
		fiber.Map{"question_index": 0, "selected_option": 1})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetMyProgress(t *testing.T) {
	app := setupApp(t)
	_, token := seedStudent(t)
	course, quiz, _ := seedCourseWithQuiz(t, true)

	doJSON(t, app, "POST", answerPath(course, quiz), token,
		fiber.Map{"question_index": 0, "selected_option": 1})

	resp, env := doJSON(t, app, "GET", "/progress/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var progress struct {
		User struct {
			XP    int `json:"xp"`
			Level int `json:"level"`
		} `json:"user"`
		LevelProgress struct {
			Level   int     `json:"level"`
			Percent float64 `json:"percent"`
		} `json:"level_progress"`
		CompletedSections []uint `json:"completed_sections"`
		RecentXPEvents    []struct {
			Amount int    `json:"amount"`
			Reason string `json:"reason"`
		} `json:"recent_xp_events"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Equal(t, 10, progress.User.XP)
	assert.Equal(t, 1, progress.LevelProgress.Level)
	require.Len(t, progress.RecentXPEvents, 1)
	assert.Equal(t, 10, progress.RecentXPEvents[0].Amount)
}

func TestLeaderboard(t *testing.T) {
	app := setupApp(t)
	_, token := seedStudent(t)
	db := database.Database.Db

	others := []models.User{
		{Name: "Alice", Email: "alice.lb@example.com", Role: "STUDENT", XP: 900, Level: 3},
		{Name: "Bob", Email: "bob.lb@example.com", Role: "STUDENT", XP: 300, Level: 2},
		{Name: "Root", Email: "root.lb@example.com", Role: "ADMIN", XP: 5000, Level: 8},
	}
	for i := range others {
		require.NoError(t, db.Create(&others[i]).Error)
	}

	resp, env := doJSON(t, app, "GET", "/progress/leaderboard?limit=2", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Leaderboard []struct {
			Rank int    `json:"rank"`
			Name string `json:"name"`
			XP   int    `json:"xp"`
		} `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Leaderboard, 2)

	// Admins never rank; students sort by XP
	assert.Equal(t, "Alice", data.Leaderboard[0].Name)
	assert.Equal(t, 1, data.Leaderboard[0].Rank)
	assert.Equal(t, "Bob", data.Leaderboard[1].Name)
}
