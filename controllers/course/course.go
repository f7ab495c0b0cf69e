package controllers

import (
	"github.com/moecode-c/mohammedcourseswebsite-sub000/access"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with their effective prices
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("is_featured desc, created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Collect the user's unlocks once instead of per course
	var unlocks []models.CourseUnlock
	if err := db.Where("user_id = ?", userID).Find(&unlocks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	unlocked := make(map[uint]bool, len(unlocks))
	for _, u := range unlocks {
		unlocked[u.CourseID] = true
	}

	type CourseListing struct {
		models.Course
		EffectivePrice uint `json:"effective_price"`
		IsUnlocked     bool `json:"is_unlocked"`
	}

	listings := make([]CourseListing, len(courses))
	for i, course := range courses {
		listings[i] = CourseListing{
			Course:         course,
			EffectivePrice: course.EffectivePrice(),
			IsUnlocked:     course.IsFree || unlocked[course.ID],
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": listings,
		"total":   len(listings),
	})
}

// GetCourseDetails returns a course with its sections passed through the
// visibility resolver. Locked sections come back as redacted shells; free
// preview sections stay fully visible even without an unlock.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	isAdmin := user.Role == "ADMIN"
	if !course.IsPublished && !isAdmin {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	hasAccess, err := access.HasCourseAccess(db, userID, &course)
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}
	ctx := access.Context{IsAdmin: isAdmin, HasCourseAccess: hasAccess}

	var sections []models.Section
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	views := make([]access.SectionView, len(sections))
	for i, section := range sections {
		var questions []models.Question
		if section.Type == models.SectionTypeQuiz {
			if err := db.Where("section_id = ?", section.ID).
				Order("question_index asc").Find(&questions).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
			}
		}
		views[i] = access.ResolveSectionView(section, questions, ctx)
	}

	// Completed section markers for progress display
	var completions []models.SectionCompletion
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	completedIDs := make([]uint, len(completions))
	for i, sc := range completions {
		completedIDs[i] = sc.SectionID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":             course,
		"effective_price":    course.EffectivePrice(),
		"has_access":         hasAccess,
		"sections":           views,
		"completed_sections": completedIDs,
	})
}
