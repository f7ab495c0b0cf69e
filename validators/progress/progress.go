package progressValidator

import (
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitAnswer validates the quiz answer body
func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionIndex  int `json:"question_index"`
			SelectedOption int `json:"selected_option"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.QuestionIndex < 0 {
			errors["question_index"] = "Question index must not be negative!"
		}
		if reqData.SelectedOption < 0 {
			errors["selected_option"] = "Selected option must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}
