package adminRoutes

import (
	adminControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/admin"
	contactControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/contact"
	courseControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/course"
	requestControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/request"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	adminValidators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/admin"
	contactValidators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/contact"
	courseValidators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/course"
	requestValidators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/request"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin console routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminMiddleware)

	// Dashboard
	adminGroup.Get("/dashboard", adminControllers.GetDashboard)

	// Course management
	adminGroup.Post("/courses", courseValidators.CreateCourse(), courseControllers.CreateCourse)
	adminGroup.Put("/courses/:id", courseValidators.CourseID(), courseValidators.CreateCourse(), courseControllers.UpdateCourse)
	adminGroup.Delete("/courses/:id", courseValidators.CourseID(), courseControllers.DeleteCourse)
	adminGroup.Post("/courses/:id/sections", courseValidators.CourseID(), courseValidators.AddSection(), courseControllers.AddSection)
	adminGroup.Put("/sections/:section_id", courseValidators.SectionID(), courseValidators.AddSection(), courseControllers.UpdateSection)
	adminGroup.Delete("/sections/:section_id", courseValidators.SectionID(), courseControllers.DeleteSection)

	// Access requests
	adminGroup.Get("/requests", requestControllers.ListAccessRequests)
	adminGroup.Post("/requests/:request_id/resolve",
		requestValidators.RequestID(), requestValidators.Resolution(), requestControllers.ResolveAccessRequest)

	// Certificate requests
	adminGroup.Get("/certificates", requestControllers.ListCertificateRequests)
	adminGroup.Post("/certificates/:request_id/resolve",
		requestValidators.RequestID(), requestValidators.Resolution(), requestControllers.ResolveCertificateRequest)

	// User management and overrides
	adminGroup.Get("/users", adminControllers.ListUsers)
	adminGroup.Delete("/users/:user_id", adminValidators.UserID(), adminControllers.DeleteUser)
	adminGroup.Post("/users/:user_id/xp", adminValidators.UserID(), adminValidators.SetXP(), adminControllers.SetUserXP)
	adminGroup.Post("/users/:user_id/streak", adminValidators.UserID(), adminValidators.SetStreak(), adminControllers.SetUserStreak)
	adminGroup.Post("/users/:user_id/unlock/:id",
		adminValidators.UserID(), courseValidators.CourseID(), adminControllers.GrantCourseAccess)

	// Contact messages
	adminGroup.Get("/messages", contactControllers.ListContactMessages)
	adminGroup.Put("/messages/:message_id/read", contactValidators.MessageID(), contactControllers.MarkMessageRead)
	adminGroup.Delete("/messages/:message_id", contactValidators.MessageID(), contactControllers.DeleteContactMessage)
}
