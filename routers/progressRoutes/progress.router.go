package progressRoutes

import (
	controllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/progress"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up progress and leaderboard routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress", middleware.JWTMiddleware)

	progressGroup.Get("/me", controllers.GetMyProgress)
	progressGroup.Get("/leaderboard", controllers.GetLeaderboard)
}
