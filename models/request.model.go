package models

import (
	"time"

	"gorm.io/gorm"
)

// Request lifecycle states
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// AccessRequest is a student's claim of having paid for a course, awaiting
// manual admin verification. PENDING is the only non-terminal state.
type AccessRequest struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index;uniqueIndex:idx_pending_access_request,where:status = 'PENDING';not null"`
	CourseID uint   `json:"course_id" gorm:"index;uniqueIndex:idx_pending_access_request;not null"`
	Status   string `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED

	SenderName  string `json:"sender_name"`
	SenderPhone string `json:"sender_phone"`
	Amount      uint   `json:"amount" gorm:"default:0"`
	Notes       string `json:"notes"`

	AdminNotes string     `json:"admin_notes"`
	ResolvedAt *time.Time `json:"resolved_at"`
	ResolvedBy *uint      `json:"resolved_by"`
	IsDeleted  bool       `gorm:"default:false" json:"-"`
}

// CertificateRequest is a student's application for a course completion
// certificate. Unlike access requests, only one application is allowed per
// (user, course) ever, regardless of outcome.
type CertificateRequest struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index;uniqueIndex:idx_user_certificate_request;not null"`
	CourseID uint   `json:"course_id" gorm:"index;uniqueIndex:idx_user_certificate_request;not null"`
	Status   string `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED

	RejectionReason string     `json:"rejection_reason"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ResolvedBy      *uint      `json:"resolved_by"`
	IsDeleted       bool       `gorm:"default:false" json:"-"`
}

// Certificate represents an issued certificate for course completion
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
}
