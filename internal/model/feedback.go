package model

import "time"

const (
	FeedbackTypeBug        = "BUG"
	FeedbackTypeSuggestion = "SUGGESTION"
	FeedbackTypeOther      = "OTHER"
)

// Feedback is a message submitted through the site's feedback modal.
// Records are never edited, only deleted by staff with FEEDBACK_MANAGE.
type Feedback struct {
	ID          string    `gorm:"primaryKey;size:12" json:"id"`
	Type        string    `gorm:"not null;index" json:"type"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	ThemeAtTime string    `json:"theme_at_time"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func ValidFeedbackType(t string) bool {
	switch t {
	case FeedbackTypeBug, FeedbackTypeSuggestion, FeedbackTypeOther:
		return true
	}
	return false
}
