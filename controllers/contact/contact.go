package controllers

import (
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/middleware"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitContactMessage stores a message from the public contact form
func SubmitContactMessage(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContact").(*struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	message := models.ContactMessage{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Subject: reqData.Subject,
		Message: reqData.Message,
	}

	if err := database.Database.Db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message submitted successfully!", nil)
}

// ListContactMessages lists contact messages for the admin console
func ListContactMessages(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.ContactMessage{}).Where("is_deleted = ?", false)
	if c.Query("unread") == "true" {
		db = db.Where("is_read = ?", false)
	}

	var messages []models.ContactMessage
	if err := db.Order("created_at desc").Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched successfully!", fiber.Map{
		"messages": messages,
		"total":    len(messages),
	})
}

// MarkMessageRead marks a contact message as read
func MarkMessageRead(c *fiber.Ctx) error {
	messageID := c.Locals("messageID").(int)

	res := database.Database.Db.Model(&models.ContactMessage{}).
		Where("id = ? AND is_deleted = ?", messageID, false).
		Update("is_read", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update message!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message marked as read!", nil)
}

// DeleteContactMessage soft-deletes a contact message
func DeleteContactMessage(c *fiber.Ctx) error {
	messageID := c.Locals("messageID").(int)

	res := database.Database.Db.Model(&models.ContactMessage{}).
		Where("id = ? AND is_deleted = ?", messageID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete message!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message deleted successfully!", nil)
}
