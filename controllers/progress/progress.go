package controllers

import (
	"github.com/moecode-c/mohammedcourseswebsite-sub000/access"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/apperr"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/gamification"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// requireSectionAccess checks that the user may interact with the section's
// course content before any progress mutation.
func requireSectionAccess(userID uint, sectionID int) (int, error) {
	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return 0, apperr.NotFound("section")
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", section.CourseID, false).First(&course).Error; err != nil {
		return 0, apperr.NotFound("course")
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return 0, apperr.NotFound("user")
	}

	if user.Role == "ADMIN" || section.IsFree {
		return int(course.ID), nil
	}

	hasAccess, err := access.HasCourseAccess(db, userID, &course)
	if err != nil {
		return 0, err
	}
	if !hasAccess {
		return 0, apperr.Conflict("course is locked")
	}
	return int(course.ID), nil
}

// SubmitQuizAnswer evaluates a quiz answer and applies the XP rules
func SubmitQuizAnswer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(int)
	reqData, ok := c.Locals("validatedAnswer").(*struct {
		QuestionIndex  int `json:"question_index"`
		SelectedOption int `json:"selected_option"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if _, err := requireSectionAccess(userID, sectionID); err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	result, err := gamification.SubmitAnswer(database.Database.Db, userID, uint(sectionID),
		reqData.QuestionIndex, reqData.SelectedOption)
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted!", result)
}

// CompleteSection marks a section as completed and awards the section XP
func CompleteSection(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(int)

	if _, err := requireSectionAccess(userID, sectionID); err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	result, err := gamification.CompleteSection(database.Database.Db, userID, uint(sectionID))
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	message := "Section completed!"
	if result.AlreadyCompleted {
		message = "Section was already completed."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}

// GetMyProgress returns the user's full gamification state
func GetMyProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var sectionCompletions []models.SectionCompletion
	if err := db.Where("user_id = ?", userID).Find(&sectionCompletions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	completedSections := make([]uint, len(sectionCompletions))
	for i, sc := range sectionCompletions {
		completedSections[i] = sc.SectionID
	}

	var courseCompletions []models.CourseCompletion
	if err := db.Where("user_id = ?", userID).Find(&courseCompletions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	completedCourses := make([]uint, len(courseCompletions))
	for i, cc := range courseCompletions {
		completedCourses[i] = cc.CourseID
	}

	var events []models.XPEvent
	if err := db.Where("user_id = ?", userID).Order("created_at desc").
		Limit(20).Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"user":               user,
		"level_progress":     gamification.ProgressForXP(user.XP),
		"completed_sections": completedSections,
		"completed_courses":  completedCourses,
		"recent_xp_events":   events,
	})
}

// GetLeaderboard returns the top users ranked by XP
func GetLeaderboard(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	type LeaderboardEntry struct {
		Rank        int    `json:"rank"`
		UserID      uint   `json:"user_id"`
		Name        string `json:"name"`
		XP          int    `json:"xp"`
		Level       int    `json:"level"`
		StreakCount int    `json:"streak_count"`
	}

	var users []models.User
	if err := database.Database.Db.
		Where("is_deleted = ? AND role = ?", false, "STUDENT").
		Order("xp desc, created_at asc").Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			UserID:      u.ID,
			Name:        u.Name,
			XP:          u.XP,
			Level:       u.Level,
			StreakCount: u.StreakCount,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", fiber.Map{
		"leaderboard": entries,
	})
}
