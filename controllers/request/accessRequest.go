package controllers

import (
	"log"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/access"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitAccessRequest files a course-unlock payment claim
func SubmitAccessRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	details, ok := c.Locals("validatedPayment").(*access.PaymentDetails)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	request, err := access.CreateAccessRequest(database.Database.Db, userID, uint(courseID), *details)
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	// Notify the admin out of band; the request is already stored
	go func(userName string, courseID uint, amount uint) {
		var course models.Course
		if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
			log.Printf("Error loading course for webhook: %v", err)
			return
		}
		utils.NotifyAdminNewRequest(userName, course.Title, amount)
	}(user.Name, request.CourseID, request.Amount)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Unlock request submitted successfully!", request)
}

// GetMyRequests lists the user's access requests
func GetMyRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var requests []models.AccessRequest
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// ListAccessRequests lists access requests for the admin console,
// optionally filtered by status
func ListAccessRequests(c *fiber.Ctx) error {
	status := c.Query("status")

	db := database.Database.Db.Model(&models.AccessRequest{}).Where("is_deleted = ?", false)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []models.AccessRequest
	if err := db.Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// ResolveAccessRequest approves or rejects a pending unlock request
func ResolveAccessRequest(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)
	reqData, ok := c.Locals("validatedResolution").(*struct {
		Decision   string `json:"decision"`
		AdminNotes string `json:"admin_notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	request, err := access.ResolveAccessRequest(database.Database.Db, uint(requestID), adminID,
		reqData.Decision, reqData.AdminNotes)
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	// Email the student on approval
	if request.Status == models.RequestApproved {
		go func(req models.AccessRequest) {
			db := database.Database.Db
			var student models.User
			var course models.Course
			if err := db.Where("id = ?", req.UserID).First(&student).Error; err != nil {
				return
			}
			if err := db.Where("id = ?", req.CourseID).First(&course).Error; err != nil {
				return
			}
			if err := utils.SendUnlockEmail(student.Email, student.Name, course.Title); err != nil {
				log.Printf("Error sending unlock email: %v", err)
			}
		}(*request)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request resolved successfully!", request)
}
