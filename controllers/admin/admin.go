package controllers

import (
	"time"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/access"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/gamification"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// ListUsers lists users for the admin console with pagination
func ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// DeleteUser soft-deletes a user account
func DeleteUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)

	adminID, _ := c.Locals("userId").(uint)
	if uint(targetID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	res := database.Database.Db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", targetID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// SetUserXP is the administrative XP override. It skips the gameplay
// guards and the XP ledger.
func SetUserXP(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)
	reqData, ok := c.Locals("validatedXP").(*struct {
		XP int `json:"xp"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	user, err := gamification.SetXP(database.Database.Db, uint(targetID), reqData.XP)
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "XP updated successfully!", user)
}

// SetUserStreak is the administrative streak override
func SetUserStreak(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)
	reqData, ok := c.Locals("validatedStreak").(*struct {
		Streak int `json:"streak"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	user, err := gamification.SetStreak(database.Database.Db, uint(targetID), reqData.Streak, time.Now())
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Streak updated successfully!", user)
}

// GrantCourseAccess unlocks a course for a user directly
func GrantCourseAccess(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)
	courseID := c.Locals("courseID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := access.GrantUnlock(database.Database.Db, uint(targetID), uint(courseID)); err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course access granted successfully!", nil)
}

// GetDashboard returns summary counts for the admin console
func GetDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)

	var totalCourses int64
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)

	var pendingAccess int64
	db.Model(&models.AccessRequest{}).
		Where("status = ? AND is_deleted = ?", models.RequestPending, false).Count(&pendingAccess)

	var pendingCertificates int64
	db.Model(&models.CertificateRequest{}).
		Where("status = ? AND is_deleted = ?", models.RequestPending, false).Count(&pendingCertificates)

	var unreadMessages int64
	db.Model(&models.ContactMessage{}).
		Where("is_read = ? AND is_deleted = ?", false, false).Count(&unreadMessages)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_users":          totalUsers,
		"total_courses":        totalCourses,
		"pending_requests":     pendingAccess,
		"pending_certificates": pendingCertificates,
		"unread_messages":      unreadMessages,
	})
}
