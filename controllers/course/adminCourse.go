package controllers

import (
	"time"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseInput is the validated body for course create/update
type CourseInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Price          uint       `json:"price"`
	IsFree         bool       `json:"is_free"`
	DiscountPrice  uint       `json:"discount_price"`
	DiscountActive bool       `json:"discount_active"`
	DiscountEndsAt *time.Time `json:"discount_ends_at"`
	IsFeatured     bool       `json:"is_featured"`
	IsPublished    bool       `json:"is_published"`
}

// QuestionInput is one validated quiz question within a section body
type QuestionInput struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

// SectionInput is the validated body for section create/update
type SectionInput struct {
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Content    string          `json:"content"`
	VideoURL   string          `json:"video_url"`
	LinkURL    string          `json:"link_url"`
	IsFree     bool            `json:"is_free"`
	OrderIndex int             `json:"order_index"`
	Questions  []QuestionInput `json:"questions"`
}

// CreateCourse creates a new course
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course := models.Course{
		Title:          reqData.Title,
		Description:    reqData.Description,
		Price:          reqData.Price,
		IsFree:         reqData.IsFree,
		DiscountPrice:  reqData.DiscountPrice,
		DiscountActive: reqData.DiscountActive,
		DiscountEndsAt: reqData.DiscountEndsAt,
		IsFeatured:     reqData.IsFeatured,
		IsPublished:    reqData.IsPublished,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates an existing course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedCourse").(*CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Price = reqData.Price
	course.IsFree = reqData.IsFree
	course.DiscountPrice = reqData.DiscountPrice
	course.DiscountActive = reqData.DiscountActive
	course.DiscountEndsAt = reqData.DiscountEndsAt
	course.IsFeatured = reqData.IsFeatured
	course.IsPublished = reqData.IsPublished

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes a course and its sections, and removes the
// related completion rows from every user's progress sets
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Course{}).Where("id = ?", courseID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Section{}).Where("course_id = ?", courseID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.SectionCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.CourseCompletion{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AddSection creates a section (and its quiz questions) within a course
func AddSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedSection").(*SectionInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	section := models.Section{
		CourseID:   uint(courseID),
		Title:      reqData.Title,
		Type:       reqData.Type,
		Content:    reqData.Content,
		VideoURL:   reqData.VideoURL,
		LinkURL:    reqData.LinkURL,
		IsFree:     reqData.IsFree,
		OrderIndex: reqData.OrderIndex,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&section).Error; err != nil {
			return err
		}
		for i, q := range reqData.Questions {
			question := models.Question{
				SectionID:     section.ID,
				QuestionIndex: i,
				Text:          q.Text,
				CorrectOption: q.CorrectOption,
			}
			if err := question.SetOptions(q.Options); err != nil {
				return err
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// UpdateSection replaces a section's fields and question list
func UpdateSection(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(int)
	reqData, ok := c.Locals("validatedSection").(*SectionInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	section.Title = reqData.Title
	section.Type = reqData.Type
	section.Content = reqData.Content
	section.VideoURL = reqData.VideoURL
	section.LinkURL = reqData.LinkURL
	section.IsFree = reqData.IsFree
	section.OrderIndex = reqData.OrderIndex

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&section).Error; err != nil {
			return err
		}
		// Replace the question list wholesale; answer history for removed
		// indexes stays behind but can no longer satisfy completion.
		if err := tx.Unscoped().Where("section_id = ?", sectionID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		for i, q := range reqData.Questions {
			question := models.Question{
				SectionID:     section.ID,
				QuestionIndex: i,
				Text:          q.Text,
				CorrectOption: q.CorrectOption,
			}
			if err := question.SetOptions(q.Options); err != nil {
				return err
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

// DeleteSection soft-deletes a section and removes it from every user's
// completed-sections set
func DeleteSection(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(int)
	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Section{}).Where("id = ?", sectionID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", sectionID).Delete(&models.SectionCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", sectionID).Delete(&models.QuizAnswer{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}
