package models

import "gorm.io/gorm"

// ContactMessage is a message submitted through the public contact form
type ContactMessage struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message" gorm:"type:text"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
