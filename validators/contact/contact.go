package contactValidator

import (
	"strconv"
	"strings"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// MessageID validates the :message_id route param
func MessageID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("message_id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Message ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Message ID!", nil)
		}

		c.Locals("messageID", id)
		return c.Next()
	}
}

// ContactMessage validates the public contact form body
func ContactMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Subject string `json:"subject"`
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		email := strings.TrimSpace(reqData.Email)
		if email == "" {
			errors["email"] = "Email is required!"
		} else if !strings.Contains(email, "@") {
			errors["email"] = "Email is not valid!"
		}

		message := strings.TrimSpace(reqData.Message)
		if message == "" {
			errors["message"] = "Message is required!"
		} else if len(message) < 10 {
			errors["message"] = "Message must be at least 10 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Email = email
		c.Locals("validatedContact", reqData)
		return c.Next()
	}
}
