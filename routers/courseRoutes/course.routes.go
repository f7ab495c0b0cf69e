package courseRoutes

import (
	courseControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/course"
	progressControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/progress"
	requestControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/request"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	courseValidators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/course"
	progressValidators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/progress"
	requestValidators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/request"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// Course listing and details
	courseGroup.Get("/list", courseControllers.GetAllCourses)
	courseGroup.Get("/:id", courseValidators.CourseID(), courseControllers.GetCourseDetails)

	// Quiz answering and section completion
	courseGroup.Post("/:id/section/:section_id/quiz/answer",
		courseValidators.SectionID(), progressValidators.SubmitAnswer(), progressControllers.SubmitQuizAnswer)
	courseGroup.Post("/:id/section/:section_id/complete",
		courseValidators.SectionID(), progressControllers.CompleteSection)

	// Unlock and certificate requests
	courseGroup.Post("/:id/unlock/request",
		courseValidators.CourseID(), requestValidators.PaymentDetails(), requestControllers.SubmitAccessRequest)
	courseGroup.Post("/:id/certificate/request",
		courseValidators.CourseID(), requestControllers.RequestCertificate)

	// User-scoped listings
	userGroup := app.Group("/user", middleware.JWTMiddleware)
	userGroup.Get("/requests", requestControllers.GetMyRequests)
	userGroup.Get("/certificates", requestControllers.GetMyCertificates)
}
