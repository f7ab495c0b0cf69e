package requestValidator

import (
	"strconv"
	"strings"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/access"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// RequestID validates the :request_id route param
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("request_id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		c.Locals("requestID", id)
		return c.Next()
	}
}

// PaymentDetails validates the unlock request body
func PaymentDetails() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(access.PaymentDetails)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Sender Name
		if strings.TrimSpace(reqData.SenderName) == "" {
			errors["sender_name"] = "Sender name is required!"
		}

		// Validate Sender Phone
		phone := strings.TrimSpace(reqData.SenderPhone)
		if phone == "" {
			errors["sender_phone"] = "Sender phone is required!"
		} else if len(phone) < 7 {
			errors["sender_phone"] = "Sender phone is not valid!"
		}

		// Validate Amount
		if reqData.Amount == 0 {
			errors["amount"] = "Amount is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// Resolution validates the admin resolve body
func Resolution() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Decision   string `json:"decision"`
			AdminNotes string `json:"admin_notes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Decision = strings.ToUpper(strings.TrimSpace(reqData.Decision))
		if reqData.Decision != models.RequestApproved && reqData.Decision != models.RequestRejected {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"decision": "Decision must be APPROVED or REJECTED!",
			})
		}

		c.Locals("validatedResolution", reqData)
		return c.Next()
	}
}
