package category

import "time"

// Category groups products on the menu.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	NameUz    string    `json:"nameUz,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	SortOrder int       `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
