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
	adminRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/adminRoutes"
	courseRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/courseRoutes"

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
	adminRoutes.SetupAdminRoutes(app)
	return app
}

func seedUser(t *testing.T, role string) (*models.User, string) {
	t.Helper()

	user := models.User{
		Name:  role + " User",
		Email: fmt.Sprintf("%s.%s@example.com", strings.ToLower(role), strings.ReplaceAll(t.Name(), "/", ".")),
		Role:  role,
		Level: 1,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func seedPaidCourse(t *testing.T) *models.Course {
	t.Helper()

	course := models.Course{Title: "Advanced Go", Price: 8000, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return &course
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

func paymentBody() fiber.Map {
	return fiber.Map{
		"sender_name":  "Student",
		"sender_phone": "0912345678",
		"amount":       8000,
		"notes":        "bank transfer ref 1443",
	}
}

func TestAccessRequestLifecycle(t *testing.T) {
	app := setupApp(t)
	student, studentToken := seedUser(t, "STUDENT")
	_, adminToken := seedUser(t, "ADMIN")
	course := seedPaidCourse(t)

	requestPath := fmt.Sprintf("/course/%d/unlock/request", course.ID)

	// Submit
	resp, env := doJSON(t, app, "POST", requestPath, studentToken, paymentBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var request models.AccessRequest
	require.NoError(t, json.Unmarshal(env.Data, &request))
	assert.Equal(t, models.RequestPending, request.Status)

	// A second submission while pending is rejected
	resp, _ = doJSON(t, app, "POST", requestPath, studentToken, paymentBody())
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Admin sees the pending request
	resp, env = doJSON(t, app, "GET", "/admin/requests?status=PENDING", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing struct {
		Requests []models.AccessRequest `json:"requests"`
		Total    int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Equal(t, 1, listing.Total)

	// Approve
	resolvePath := fmt.Sprintf("/admin/requests/%d/resolve", request.ID)
	resp, env = doJSON(t, app, "POST", resolvePath, adminToken,
		fiber.Map{"decision": "approved", "admin_notes": "payment verified"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var resolved models.AccessRequest
	require.NoError(t, json.Unmarshal(env.Data, &resolved))
	assert.Equal(t, models.RequestApproved, resolved.Status)

	// Approval unlocks the course
	var unlocks int64
	require.NoError(t, database.Database.Db.Model(&models.CourseUnlock{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&unlocks).Error)
	assert.Equal(t, int64(1), unlocks)

	// A new request for an unlocked course is rejected
	resp, _ = doJSON(t, app, "POST", requestPath, studentToken, paymentBody())
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Re-resolving conflicts
	resp, _ = doJSON(t, app, "POST", resolvePath, adminToken,
		fiber.Map{"decision": "REJECTED"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAccessRequestValidation(t *testing.T) {
	app := setupApp(t)
	_, studentToken := seedUser(t, "STUDENT")
	course := seedPaidCourse(t)

	requestPath := fmt.Sprintf("/course/%d/unlock/request", course.ID)

	resp, env := doJSON(t, app, "POST", requestPath, studentToken,
		fiber.Map{"sender_name": "", "sender_phone": "123", "amount": 0})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestGetMyRequests(t *testing.T) {
	app := setupApp(t)
	_, studentToken := seedUser(t, "STUDENT")
	course := seedPaidCourse(t)

	requestPath := fmt.Sprintf("/course/%d/unlock/request", course.ID)
	resp, _ := doJSON(t, app, "POST", requestPath, studentToken, paymentBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, "GET", "/user/requests", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing struct {
		Requests []models.AccessRequest `json:"requests"`
		Total    int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Equal(t, 1, listing.Total)
	assert.Equal(t, models.RequestPending, listing.Requests[0].Status)
}

func TestCertificateRequestFlow(t *testing.T) {
	app := setupApp(t)
	student, studentToken := seedUser(t, "STUDENT")
	_, adminToken := seedUser(t, "ADMIN")
	course := seedPaidCourse(t)

	certPath := fmt.Sprintf("/course/%d/certificate/request", course.ID)

	// Not completed yet
	resp, _ := doJSON(t, app, "POST", certPath, studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	completion := models.CourseCompletion{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, database.Database.Db.Create(&completion).Error)

	resp, env := doJSON(t, app, "POST", certPath, studentToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var request models.CertificateRequest
	require.NoError(t, json.Unmarshal(env.Data, &request))

	// Approve and issue
	resolvePath := fmt.Sprintf("/admin/certificates/%d/resolve", request.ID)
	resp, env = doJSON(t, app, "POST", resolvePath, adminToken,
		fiber.Map{"decision": "APPROVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var resolution struct {
		Request     models.CertificateRequest `json:"request"`
		Certificate *models.Certificate       `json:"certificate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resolution))
	assert.Equal(t, models.RequestApproved, resolution.Request.Status)
	require.NotNil(t, resolution.Certificate)
	assert.NotEmpty(t, resolution.Certificate.CertificateNumber)

	// Student sees the issued certificate
	resp, env = doJSON(t, app, "GET", "/user/certificates", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var certListing struct {
		Certificates []struct {
			CertificateNumber string `json:"certificate_number"`
			CourseName        string `json:"course_name"`
		} `json:"certificates"`
		PendingRequests int `json:"pending_requests"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &certListing))
	require.Len(t, certListing.Certificates, 1)
	assert.Equal(t, "Advanced Go", certListing.Certificates[0].CourseName)
	assert.Equal(t, 0, certListing.PendingRequests)

	// One application ever per course
	resp, _ = doJSON(t, app, "POST", certPath, studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdminRoutesForbiddenForStudents(t *testing.T) {
	app := setupApp(t)
	_, studentToken := seedUser(t, "STUDENT")

	resp, _ := doJSON(t, app, "GET", "/admin/requests", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
