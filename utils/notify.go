package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/config"
)

// NotifyAdminNewRequest posts a short notification to the configured admin
// webhook when a new unlock request arrives. Failures are logged only; the
// request itself has already been stored.
func NotifyAdminNewRequest(userName, courseName string, amount uint) {
	webhookURL := config.AppConfig.AdminWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":  "access_request.created",
			"user":   userName,
			"course": courseName,
			"amount": amount,
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("Error calling admin webhook: %v", err)
		return
	}

	if resp.StatusCode() >= 400 {
		log.Printf("Admin webhook returned status %d", resp.StatusCode())
	}
}
