package iorderitemrepo

import (
	"context"

	"github.com/fastfood-uz/pos/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item postgres repository.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	QueryByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error)
}
