package adminValidator

import (
	"strconv"
	"strings"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// UserID validates the :user_id route param
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("user_id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", id)
		return c.Next()
	}
}

// SetXP validates the XP override body
func SetXP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			XP int `json:"xp"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.XP < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"xp": "XP must not be negative!",
			})
		}

		c.Locals("validatedXP", reqData)
		return c.Next()
	}
}

// SetStreak validates the streak override body
func SetStreak() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Streak int `json:"streak"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Streak < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"streak": "Streak must not be negative!",
			})
		}

		c.Locals("validatedStreak", reqData)
		return c.Next()
	}
}
