package model

import "time"

// Idea priority bounds.
const (
	PriorityMin     = 1
	PriorityMax     = 5
	DefaultPriority = 3
)

// NoneSentinel is the form value meaning "no selection" for an idea's
// recipient or category.
const NoneSentinel = "none"

// PriorityLabel returns the display label for an idea priority.
func PriorityLabel(p int) string {
	switch p {
	case 1:
		return "Very Low"
	case 2:
		return "Low"
	case 3:
		return "Medium"
	case 4:
		return "High"
	case 5:
		return "Very High"
	default:
		return "Unknown"
	}
}

// Idea is an unpurchased candidate gift. An idea without a recipient is a
// general idea.
type Idea struct {
	ID             string   `json:"id"`
	RecipientID    string   `json:"recipient_id,omitempty"`
	CategoryID     string   `json:"category_id,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	EstimatedPrice *float64 `json:"estimated_price,omitempty"`
	SourceURL      string   `json:"source_url,omitempty"`
	Priority       int      `json:"priority"`

	ConvertedToGiftID string `json:"converted_to_gift_id,omitempty"`
	ConvertedAt       string `json:"converted_at,omitempty"`

	Notes     string     `json:"notes,omitempty"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IsGeneral reports whether the idea has no recipient.
func (i Idea) IsGeneral() bool { return i.RecipientID == "" }
