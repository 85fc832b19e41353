package order

import (
	"time"

	"github.com/fastfood-uz/pos/internal/service/models/orderitem"
)

// Order represents a customer's purchase transaction.
type Order struct {
	ID            int64                 `json:"id"`
	OrderNumber   int                   `json:"orderNumber"`
	BranchID      int64                 `json:"branchId"`
	UserID        int64                 `json:"userId"`
	Status        Status                `json:"status"`
	Type          Type                  `json:"type"`
	Subtotal      int64                 `json:"subtotal"`
	Discount      int64                 `json:"discount"`
	Total         int64                 `json:"total"`
	PaymentMethod PaymentMethod         `json:"paymentMethod"`
	PaymentStatus PaymentStatus         `json:"paymentStatus"`
	Note          string                `json:"note,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	CompletedAt   *time.Time            `json:"completedAt,omitempty"`
	OrderItems    []orderitem.OrderItem `json:"orderItems"`
}

// Elapsed returns how long the order has been open relative to now.
func (o *Order) Elapsed(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}
