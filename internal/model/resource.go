package model

import "time"

const (
	ResourceTypeAPIKey      = "API_KEY"
	ResourceTypeCodeSnippet = "CODE_SNIPPET"
	ResourceTypeTool        = "TOOL"
)

// Resource is one entry of the developer vault: an API key, a code
// snippet or a tool link shared between staff members.
type Resource struct {
	ID          string    `gorm:"primaryKey;size:12" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Type        string    `gorm:"not null;index" json:"type"`
	Content     string    `gorm:"type:text" json:"content"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidResourceType(t string) bool {
	switch t {
	case ResourceTypeAPIKey, ResourceTypeCodeSnippet, ResourceTypeTool:
		return true
	}
	return false
}
