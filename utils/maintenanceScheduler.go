package utils

import (
	"log"
	"time"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/config"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/database"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/robfig/cron/v3"
)

// InitializeMaintenanceScheduler sets up the daily maintenance job
func InitializeMaintenanceScheduler() {
	log.Println("[MAINTENANCE] Initializing maintenance scheduler...")

	c := cron.New()

	// Run daily at 9 AM server time
	c.AddFunc("0 9 * * *", func() {
		log.Println("[MAINTENANCE] Running daily maintenance...")
		ExpireDiscounts()
		RemindPendingRequests()
	})

	c.Start()
	log.Println("[MAINTENANCE] Maintenance scheduler started - runs daily at 9 AM")
}

// ExpireDiscounts deactivates course discounts past their end date
func ExpireDiscounts() {
	db := database.Database.Db

	res := db.Model(&models.Course{}).
		Where("discount_active = ? AND discount_ends_at IS NOT NULL AND discount_ends_at < ?", true, time.Now()).
		Update("discount_active", false)
	if res.Error != nil {
		log.Printf("[MAINTENANCE] Error expiring discounts: %v", res.Error)
		return
	}

	if res.RowsAffected > 0 {
		log.Printf("[MAINTENANCE] Deactivated %d expired discount(s)", res.RowsAffected)
	}
}

// RemindPendingRequests emails the admin a summary of requests awaiting review
func RemindPendingRequests() {
	if config.AppConfig.AdminEmail == "" {
		return
	}

	db := database.Database.Db

	var accessPending int64
	if err := db.Model(&models.AccessRequest{}).
		Where("status = ? AND is_deleted = ?", models.RequestPending, false).
		Count(&accessPending).Error; err != nil {
		log.Printf("[MAINTENANCE] Error counting pending access requests: %v", err)
		return
	}

	var certificatePending int64
	if err := db.Model(&models.CertificateRequest{}).
		Where("status = ? AND is_deleted = ?", models.RequestPending, false).
		Count(&certificatePending).Error; err != nil {
		log.Printf("[MAINTENANCE] Error counting pending certificate requests: %v", err)
		return
	}

	if accessPending == 0 && certificatePending == 0 {
		return
	}

	if err := SendPendingReminderEmail(config.AppConfig.AdminEmail, accessPending, certificatePending); err != nil {
		log.Printf("[MAINTENANCE] Error sending reminder email: %v", err)
	}
}
