package product

import "time"

// Product represents a sellable menu item. Price is in the smallest
// currency unit; orders snapshot it into their items at creation time.
type Product struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	NameUz      string    `json:"nameUz,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QueryProductsModel represents filter parameters for querying products.
type QueryProductsModel struct {
	Ids        []int64 `json:"ids,omitempty"`
	CategoryID int64   `json:"categoryId,omitempty"`
	OnlyActive bool    `json:"onlyActive,omitempty"`
}
