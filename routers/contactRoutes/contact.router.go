package contactRoutes

import (
	controllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/contact"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	validators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/contact"

	"github.com/gofiber/fiber/v2"
)

// SetupContactRoutes sets up the public contact form route
func SetupContactRoutes(app *fiber.App, limiter middleware.RateLimiter) {
	app.Post("/contact", middleware.RateLimitMiddleware(limiter), validators.ContactMessage(), controllers.SubmitContactMessage)
}
