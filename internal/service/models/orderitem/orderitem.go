package orderitem

import "time"

// OrderItem represents a line item within an order. Price is a unit price
// snapshot taken at order time; it is never re-read from the product, which
// may change or deactivate independently.
type OrderItem struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
	Total     int64     `json:"total"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
