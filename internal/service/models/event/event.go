package event

import (
	"time"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

// OrderStatusEvent is the payload published for every order status change,
// including creation (OldStatus empty, NewStatus NEW).
type OrderStatusEvent struct {
	OrderID     int64        `json:"orderId"`
	OrderNumber int          `json:"orderNumber"`
	BranchID    int64        `json:"branchId"`
	OldStatus   order.Status `json:"oldStatus,omitempty"`
	NewStatus   order.Status `json:"newStatus"`
	OccurredAt  time.Time    `json:"occurredAt"`
}
