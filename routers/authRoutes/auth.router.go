package authRoutes

import (
	controllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/auth"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	validators "github.com/moecode-c/mohammedcourseswebsite-sub000/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and identity routes
func SetupAuthRoutes(app *fiber.App, limiter middleware.RateLimiter) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", middleware.RateLimitMiddleware(limiter), validators.Login(), controllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, controllers.Me)
}
