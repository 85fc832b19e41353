package iorderrepo

import (
	"context"
	"time"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	// Insert persists a single order row and returns it with the
	// assigned id.
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// Query retrieves orders matching the filter, newest first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// GetByID fetches one order or order.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// NextOrderNumber computes max(order_number)+1 seeded from 1000.
	NextOrderNumber(ctx context.Context) (int, error)

	// UpdateStatus applies a compare-and-transition: the row is updated
	// only if its status still equals expected. Returns false when the
	// condition did not hold (another writer got there first).
	UpdateStatus(
		ctx context.Context,
		id int64,
		expected order.Status,
		next order.Status,
		updatedAt time.Time,
		completedAt *time.Time,
	) (bool, error)
}
