package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Section content types
const (
	SectionTypeText  = "TEXT"
	SectionTypeVideo = "VIDEO"
	SectionTypeLink  = "LINK"
	SectionTypeQuiz  = "QUIZ"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       uint   `json:"price" gorm:"default:0"`
	IsFree      bool   `json:"is_free" gorm:"default:false"`

	DiscountPrice  uint       `json:"discount_price" gorm:"default:0"`
	DiscountActive bool       `json:"discount_active" gorm:"default:false"`
	DiscountEndsAt *time.Time `json:"discount_ends_at"`

	IsFeatured  bool `json:"is_featured" gorm:"default:false"`
	IsPublished bool `json:"is_published" gorm:"default:false"`
	IsDeleted   bool `gorm:"default:false" json:"-"`
}

// EffectivePrice returns the price after an active discount
func (c *Course) EffectivePrice() uint {
	if c.IsFree {
		return 0
	}
	if c.DiscountActive && c.DiscountPrice < c.Price {
		return c.DiscountPrice
	}
	return c.Price
}

// Section represents a stage within a course. The type-specific payload
// lives in Content/VideoURL/LinkURL; QUIZ sections own Question rows.
type Section struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Type       string `json:"type" gorm:"default:'TEXT'"` // TEXT, VIDEO, LINK, QUIZ
	Content    string `json:"content" gorm:"type:text"`
	VideoURL   string `json:"video_url"`
	LinkURL    string `json:"link_url"`
	IsFree     bool   `json:"is_free" gorm:"default:false"` // visible without a course unlock
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

// Question is one quiz question within a QUIZ section. QuestionIndex is
// the zero-based position used by answer submissions.
type Question struct {
	gorm.Model
	SectionID     uint   `json:"section_id" gorm:"uniqueIndex:idx_section_question;not null"`
	QuestionIndex int    `json:"question_index" gorm:"uniqueIndex:idx_section_question;not null"`
	Text          string `json:"text"`
	Options       string `json:"-" gorm:"type:text"` // JSON array of option strings
	CorrectOption int    `json:"-"`                  // never serialized to students
}

// OptionList decodes the stored JSON option array
func (q *Question) OptionList() ([]string, error) {
	var opts []string
	if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// SetOptions encodes the option array for storage
func (q *Question) SetOptions(opts []string) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = string(raw)
	return nil
}
