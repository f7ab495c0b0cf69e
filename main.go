package main

import (
	"log"
	"time"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/config"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	adminRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/adminRoutes"
	authRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/authRoutes"
	contactRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/contactRoutes"
	courseRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/courseRoutes"
	progressRoutes "github.com/moecode-c/mohammedcourseswebsite-sub000/routers/progressRoutes"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Rate limiters for the abuse-prone public endpoints
	loginLimiter := middleware.NewMemoryRateLimiter(10, 15*time.Minute)
	contactLimiter := middleware.NewMemoryRateLimiter(5, time.Hour)

	authRoutes.SetupAuthRoutes(app, loginLimiter)
	courseRoutes.SetupCourseRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	contactRoutes.SetupContactRoutes(app, contactLimiter)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeMaintenanceScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
