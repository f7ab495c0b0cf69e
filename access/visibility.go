package access

import (
	"github.com/moecode-c/mohammedcourseswebsite-sub000/apperr"
	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"gorm.io/gorm"
)

// Context is the per-request access state a visibility decision needs
type Context struct {
	IsAdmin         bool
	HasCourseAccess bool
}

// QuestionView is the projection of a quiz question. For students the
// correct option index is absent; it is revealed only in the response to
// an answer submission. Admins get it back so they can review content.
type QuestionView struct {
	Index         int      `json:"index"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option,omitempty"`
}

// SectionView is the projection of a section the API returns. For locked
// sections only the identifying fields survive and IsLocked is set.
type SectionView struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	OrderIndex int    `json:"order_index"`
	IsFree     bool   `json:"is_free"`
	IsLocked   bool   `json:"is_locked"`

	Content   string         `json:"content,omitempty"`
	VideoURL  string         `json:"video_url,omitempty"`
	LinkURL   string         `json:"link_url,omitempty"`
	Questions []QuestionView `json:"questions,omitempty"`
}

// ResolveSectionView decides what a user may see of a section. Admins see
// everything; users with course access, and anyone on a free-preview
// section, see the full content; everyone else gets the redacted shell.
// Applied per section: a locked course can still expose its free sections.
func ResolveSectionView(section models.Section, questions []models.Question, ctx Context) SectionView {
	view := SectionView{
		ID:         section.ID,
		Title:      section.Title,
		Type:       section.Type,
		OrderIndex: section.OrderIndex,
		IsFree:     section.IsFree,
	}

	if !ctx.IsAdmin && !ctx.HasCourseAccess && !section.IsFree {
		view.IsLocked = true
		return view
	}

	view.Content = section.Content
	view.VideoURL = section.VideoURL
	view.LinkURL = section.LinkURL

	for _, q := range questions {
		opts, err := q.OptionList()
		if err != nil {
			// A malformed options blob should not take the whole section
			// view down; the question is skipped.
			continue
		}
		qv := QuestionView{
			Index:   q.QuestionIndex,
			Text:    q.Text,
			Options: opts,
		}
		if ctx.IsAdmin {
			correct := q.CorrectOption
			qv.CorrectOption = &correct
		}
		view.Questions = append(view.Questions, qv)
	}

	return view
}

// HasCourseAccess reports whether the user may open the course's paid
// content: free courses always, otherwise an unlock row must exist.
func HasCourseAccess(db *gorm.DB, userID uint, course *models.Course) (bool, error) {
	if course.IsFree {
		return true, nil
	}

	var unlocked int64
	if err := db.Model(&models.CourseUnlock{}).
		Where("user_id = ? AND course_id = ?", userID, course.ID).
		Count(&unlocked).Error; err != nil {
		return false, apperr.Storage(err)
	}
	return unlocked > 0, nil
}
