package model

// Occasion is a reference value such as "Christmas" attachable to gifts.
type Occasion struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	Color        string `json:"color,omitempty"`
	IsRecurring  bool   `json:"is_recurring"`
	DefaultMonth int    `json:"default_month,omitempty"`
	SortOrder    int    `json:"sort_order"`
}

// Category is a reference value such as "Electronics" attachable to gifts
// and ideas.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sort_order"`
}
