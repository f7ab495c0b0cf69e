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

// RequestCertificate files a certificate application for a completed course
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	request, err := access.CreateCertificateRequest(database.Database.Db, userID, uint(courseID))
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", request)
}

// GetMyCertificates lists the user's certificates and open applications
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	type CertificateWithCourse struct {
		models.Certificate
		CourseName string `json:"course_name"`
	}

	var certificates []models.Certificate
	if err := db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course models.Course
		if err := db.Where("id = ?", cert.CourseID).First(&course).Error; err != nil {
			log.Printf("Error loading course %d for certificate %d: %v", cert.CourseID, cert.ID, err)
		}
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseName:  course.Title,
		}
	}

	var pendingRequests []models.CertificateRequest
	if err := db.Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.RequestPending, false).
		Find(&pendingRequests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates":     result,
		"pending_requests": len(pendingRequests),
	})
}

// ListCertificateRequests lists certificate applications for the admin console
func ListCertificateRequests(c *fiber.Ctx) error {
	status := c.Query("status")

	db := database.Database.Db.Model(&models.CertificateRequest{}).Where("is_deleted = ?", false)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []models.CertificateRequest
	if err := db.Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// ResolveCertificateRequest approves or rejects a pending certificate
// application; approval issues the certificate
func ResolveCertificateRequest(c *fiber.Ctx) error {
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

	request, certificate, err := access.ResolveCertificateRequest(database.Database.Db, uint(requestID), adminID,
		reqData.Decision, reqData.AdminNotes)
	if err != nil {
		return middleware.CoreErrorResponse(c, err)
	}

	if certificate != nil {
		go func(req models.CertificateRequest, certNumber string) {
			db := database.Database.Db
			var student models.User
			var course models.Course
			if err := db.Where("id = ?", req.UserID).First(&student).Error; err != nil {
				return
			}
			if err := db.Where("id = ?", req.CourseID).First(&course).Error; err != nil {
				return
			}
			if err := utils.SendCertificateEmail(student.Email, student.Name, course.Title, certNumber); err != nil {
				log.Printf("Error sending certificate email: %v", err)
			}
		}(*request, certificate.CertificateNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request resolved successfully!", fiber.Map{
		"request":     request,
		"certificate": certificate,
	})
}
