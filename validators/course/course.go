package courseValidator

import (
	"strconv"
	"strings"

	courseControllers "github.com/moecode-c/mohammedcourseswebsite-sub000/controllers/course"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id route param and stores it as courseID
func CourseID() fiber.Handler {
	return paramID("id", "courseID", "Course")
}

// SectionID validates the :section_id route param and stores it as sectionID
func SectionID() fiber.Handler {
	return paramID("section_id", "sectionID", "Section")
}

func paramID(param, local, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}

		c.Locals(local, id)
		return c.Next()
	}
}

// CreateCourse validates the course create/update body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseControllers.CourseInput)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// A paid course needs a price
		if !reqData.IsFree && reqData.Price == 0 {
			errors["price"] = "Price is required for paid courses!"
		}
		if reqData.DiscountActive && reqData.DiscountPrice >= reqData.Price {
			errors["discount_price"] = "Discount price must be below the regular price!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// AddSection validates the section create/update body, including the quiz
// question list for QUIZ sections
func AddSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseControllers.SectionInput)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		switch reqData.Type {
		case models.SectionTypeText:
			if strings.TrimSpace(reqData.Content) == "" {
				errors["content"] = "Content is required for text sections!"
			}
		case models.SectionTypeVideo:
			if strings.TrimSpace(reqData.VideoURL) == "" {
				errors["video_url"] = "Video URL is required for video sections!"
			}
		case models.SectionTypeLink:
			if strings.TrimSpace(reqData.LinkURL) == "" {
				errors["link_url"] = "Link URL is required for link sections!"
			}
		case models.SectionTypeQuiz:
			if len(reqData.Questions) == 0 {
				errors["questions"] = "Quiz sections need at least one question!"
			}
			for i, q := range reqData.Questions {
				key := "questions." + strconv.Itoa(i)
				if strings.TrimSpace(q.Text) == "" {
					errors[key] = "Question text is required!"
					continue
				}
				if len(q.Options) < 2 {
					errors[key] = "Questions need at least 2 options!"
					continue
				}
				if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
					errors[key] = "Correct option index is out of range!"
				}
			}
		default:
			errors["type"] = "Type must be one of TEXT, VIDEO, LINK, QUIZ!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}
