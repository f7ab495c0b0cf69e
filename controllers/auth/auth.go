package authController

import (
	"log"
	"time"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/config"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/gamification"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLogins = 5
	loginBlockTime  = 15 * time.Minute
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Password: string(hashedPassword),
		Level:    1,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up user!", nil)
	}

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	// Blocked accounts stay blocked until the window passes
	if user.IsBlocked && user.BlockedUntil != nil && time.Now().Before(*user.BlockedUntil) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account temporarily blocked. Try again later!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		now := time.Now()
		user.FailedLoginAttempts++
		user.LastFailedLogin = &now
		if user.FailedLoginAttempts >= maxFailedLogins {
			user.IsBlocked = true
			blockedUntil := now.Add(loginBlockTime)
			user.BlockedUntil = &blockedUntil
		}
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).UpdateColumns(map[string]interface{}{
			"failed_login_attempts": user.FailedLoginAttempts,
			"last_failed_login":     user.LastFailedLogin,
			"is_blocked":            user.IsBlocked,
			"blocked_until":         user.BlockedUntil,
		}).Error; err != nil {
			log.Printf("Error recording failed login for user %d: %v", user.ID, err)
		}
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	// Successful login clears the failure counters and the IP rate limit
	if user.FailedLoginAttempts > 0 || user.IsBlocked {
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).UpdateColumns(map[string]interface{}{
			"failed_login_attempts": 0,
			"is_blocked":            false,
			"blocked_until":         nil,
		}).Error; err != nil {
			log.Printf("Error clearing login failures for user %d: %v", user.ID, err)
		}
	}
	middleware.ClearRateLimit(c)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log in!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile with level progress. The
// daily streak is refreshed here: this is the once-per-session identity
// check the streak tracker hangs off.
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	user, err := gamification.RefreshStreak(db, userID, time.Now())
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":     user,
		"progress": gamification.ProgressForXP(user.XP),
	})
}
