package access

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/apperr"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentDetails carries the manual payment claim attached to an access request
type PaymentDetails struct {
	SenderName  string `json:"sender_name"`
	SenderPhone string `json:"sender_phone"`
	Amount      uint   `json:"amount"`
	Notes       string `json:"notes"`
}

// CreateAccessRequest files a new course-unlock payment claim. At most one
// PENDING request may exist per (user, course); resolved requests do not
// block a new attempt.
func CreateAccessRequest(db *gorm.DB, userID, courseID uint, details PaymentDetails) (*models.AccessRequest, error) {
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course")
		}
		return nil, apperr.Storage(err)
	}
	if course.IsFree {
		return nil, apperr.Conflict("course is free, no unlock needed")
	}

	var unlocked int64
	if err := db.Model(&models.CourseUnlock{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&unlocked).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if unlocked > 0 {
		return nil, apperr.Conflict("course already unlocked")
	}

	var pending int64
	if err := db.Model(&models.AccessRequest{}).
		Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			userID, courseID, models.RequestPending, false).
		Count(&pending).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if pending > 0 {
		return nil, apperr.Conflict("a pending request already exists for this course")
	}

	request := models.AccessRequest{
		UserID:      userID,
		CourseID:    courseID,
		Status:      models.RequestPending,
		SenderName:  details.SenderName,
		SenderPhone: details.SenderPhone,
		Amount:      details.Amount,
		Notes:       details.Notes,
	}
	if err := db.Create(&request).Error; err != nil {
		// The partial unique index on (user_id, course_id) WHERE PENDING
		// catches two concurrent submissions slipping past the count above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a pending request already exists for this course")
		}
		return nil, apperr.Storage(err)
	}

	return &request, nil
}

// ResolveAccessRequest moves a pending request to APPROVED or REJECTED.
// The status flip is a guarded UPDATE ... WHERE status = PENDING, so two
// admins racing on the same request cannot both win; the loser gets a
// Conflict. Approval inserts the course unlock in the same transaction.
func ResolveAccessRequest(db *gorm.DB, requestID, adminID uint, decision, adminNotes string) (*models.AccessRequest, error) {
	if decision != models.RequestApproved && decision != models.RequestRejected {
		return nil, apperr.InvalidArgument("decision must be APPROVED or REJECTED")
	}

	var request models.AccessRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("access request")
			}
			return apperr.Storage(err)
		}

		resolvedAt := time.Now()
		res := tx.Model(&models.AccessRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestPending).
			Updates(map[string]interface{}{
				"status":      decision,
				"admin_notes": adminNotes,
				"resolved_at": resolvedAt,
				"resolved_by": adminID,
			})
		if res.Error != nil {
			return apperr.Storage(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("request is already resolved")
		}

		if decision == models.RequestApproved {
			unlock := models.CourseUnlock{
				UserID:   request.UserID,
				CourseID: request.CourseID,
				Source:   models.UnlockSourceRequest,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&unlock).Error; err != nil {
				return apperr.Storage(err)
			}
		}

		request.Status = decision
		request.AdminNotes = adminNotes
		request.ResolvedAt = &resolvedAt
		request.ResolvedBy = &adminID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// CreateCertificateRequest files a certificate application. The guard is
// stricter than for access requests: one application ever per
// (user, course), whatever its outcome, and the course must be completed.
func CreateCertificateRequest(db *gorm.DB, userID, courseID uint) (*models.CertificateRequest, error) {
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course")
		}
		return nil, apperr.Storage(err)
	}

	var completed int64
	if err := db.Model(&models.CourseCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&completed).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if completed == 0 {
		return nil, apperr.Conflict("course is not completed yet")
	}

	var existing int64
	if err := db.Model(&models.CertificateRequest{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&existing).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("a certificate request already exists for this course")
	}

	request := models.CertificateRequest{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.RequestPending,
	}
	if err := db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a certificate request already exists for this course")
		}
		return nil, apperr.Storage(err)
	}

	return &request, nil
}

// ResolveCertificateRequest resolves a pending certificate application.
// Approval issues the Certificate with a fresh serial number atomically
// with the status flip.
func ResolveCertificateRequest(db *gorm.DB, requestID, adminID uint, decision, reason string) (*models.CertificateRequest, *models.Certificate, error) {
	if decision != models.RequestApproved && decision != models.RequestRejected {
		return nil, nil, apperr.InvalidArgument("decision must be APPROVED or REJECTED")
	}

	var request models.CertificateRequest
	var certificate *models.Certificate
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("certificate request")
			}
			return apperr.Storage(err)
		}

		resolvedAt := time.Now()
		res := tx.Model(&models.CertificateRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestPending).
			Updates(map[string]interface{}{
				"status":           decision,
				"rejection_reason": reason,
				"resolved_at":      resolvedAt,
				"resolved_by":      adminID,
			})
		if res.Error != nil {
			return apperr.Storage(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("request is already resolved")
		}

		if decision == models.RequestApproved {
			cert := models.Certificate{
				UserID:            request.UserID,
				CourseID:          request.CourseID,
				CertificateNumber: uuid.NewString(),
				IssuedAt:          resolvedAt,
			}
			if err := tx.Create(&cert).Error; err != nil {
				return apperr.Storage(err)
			}
			certificate = &cert
		}

		request.Status = decision
		request.RejectionReason = reason
		request.ResolvedAt = &resolvedAt
		request.ResolvedBy = &adminID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &request, certificate, nil
}

// GrantUnlock is the admin override that unlocks a course for a user
// directly, without a payment request. Idempotent set-add.
func GrantUnlock(db *gorm.DB, userID, courseID uint) error {
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("course")
		}
		return apperr.Storage(err)
	}

	unlock := models.CourseUnlock{UserID: userID, CourseID: courseID, Source: models.UnlockSourceAdmin}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&unlock).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}
