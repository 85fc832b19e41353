package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/ibranchrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iorderitemrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iorderrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/ioutboxrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iproductrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iuserrepo"
	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/dal/uow"
	"github.com/fastfood-uz/pos/internal/service/models/event"
	"github.com/fastfood-uz/pos/internal/service/models/order"
	"github.com/fastfood-uz/pos/internal/service/models/orderitem"
	"github.com/fastfood-uz/pos/internal/service/models/outbox"
	"github.com/fastfood-uz/pos/internal/service/models/product"
)

const defaultStatusQueue = "pos.order.status"

// OrderService is the sole writer of order and order item state.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
	now      func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
	ProductRepository() iproductrepo.IProductRepository
	BranchRepository() ibranchrepo.IBranchRepository
	UserRepository() iuserrepo.IUserRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil {
		panic("ordersvc: no unit of work source configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// withUnitOfWorkFactory replaces the unit of work source, used by tests.
func withUnitOfWorkFactory(f func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = f
	}
}

// withClock replaces the time source, used by tests.
func withClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// CreateOrder validates, numbers and persists a new order with its items
// and a status event, all in a single transaction.
func (s *OrderService) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	if len(o.OrderItems) == 0 {
		return order.Order{}, order.ErrEmptyOrder
	}
	for _, item := range o.OrderItems {
		if item.Quantity < 1 {
			return order.Order{}, fmt.Errorf("product %d: %w", item.ProductID, order.ErrInvalidQuantity)
		}
	}

	now := s.now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	prices, err := s.checkReferences(ctx, work, &o)
	if err != nil {
		return order.Order{}, err
	}

	// Unit prices are snapshotted from the current menu; the product may
	// change or deactivate later without touching past orders.
	var subtotal int64
	for i := range o.OrderItems {
		o.OrderItems[i].Price = prices[o.OrderItems[i].ProductID]
		o.OrderItems[i].Total = o.OrderItems[i].Price * int64(o.OrderItems[i].Quantity)
		o.OrderItems[i].CreatedAt = now
		o.OrderItems[i].UpdatedAt = now
		subtotal += o.OrderItems[i].Total
	}

	if o.Discount < 0 {
		o.Discount = 0
	}
	o.Subtotal = subtotal
	// Clamp rather than letting an oversized discount push the total
	// negative.
	o.Total = subtotal - o.Discount
	if o.Total < 0 {
		o.Total = 0
	}

	o.Status = order.StatusNew
	o.CreatedAt = now
	o.UpdatedAt = now
	o.CompletedAt = nil

	number, err := work.OrderRepository().NextOrderNumber(ctx)
	if err != nil {
		return order.Order{}, err
	}
	o.OrderNumber = number

	inserted, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]orderitem.OrderItem, len(o.OrderItems))
	copy(items, o.OrderItems)
	for i := range items {
		items[i].OrderID = inserted.ID
	}
	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, err
	}
	inserted.OrderItems = items

	statusEvent := event.OrderStatusEvent{
		OrderID:     inserted.ID,
		OrderNumber: inserted.OrderNumber,
		BranchID:    inserted.BranchID,
		NewStatus:   order.StatusNew,
		OccurredAt:  now,
	}
	if err := s.enqueueStatusEvent(ctx, work, statusEvent); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return inserted, nil
}

// checkReferences verifies the branch, user and every product id resolve,
// and returns the current unit price per product id.
func (s *OrderService) checkReferences(
	ctx context.Context,
	work unitOfWork,
	o *order.Order,
) (map[int64]int64, error) {
	exists, err := work.BranchRepository().Exists(ctx, o.BranchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("branch %d: %w", o.BranchID, order.ErrReferenceNotFound)
	}

	exists, err = work.UserRepository().Exists(ctx, o.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", o.UserID, order.ErrReferenceNotFound)
	}

	seen := make(map[int64]struct{}, len(o.OrderItems))
	productIDs := make([]int64, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := work.ProductRepository().Query(ctx, &product.QueryProductsModel{Ids: productIDs})
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return nil, fmt.Errorf("products: %w", order.ErrReferenceNotFound)
	}

	prices := make(map[int64]int64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	return prices, nil
}

// GetOrders retrieves orders with their items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}
	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// GetOrder retrieves one order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, []int64{o.ID})
	if err != nil {
		return order.Order{}, err
	}
	o.OrderItems = items

	return *o, nil
}

// UpdateOrderStatus applies a compare-and-transition status change.
//
// Requesting the order's current status is an idempotent no-op. A stale
// expected status, a transition the state machine forbids, or losing the
// conditional update to a concurrent writer all surface as
// order.ErrInvalidTransition with the row left unchanged.
func (s *OrderService) UpdateOrderStatus(
	ctx context.Context,
	id int64,
	expected *order.Status,
	next order.Status,
) (order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	current, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	if expected != nil && *expected != current.Status {
		return order.Order{}, fmt.Errorf(
			"order %d is %s, expected %s: %w",
			id, current.Status, *expected, order.ErrInvalidTransition,
		)
	}

	// Re-requesting the current status supports retries from flaky
	// polling clients; completedAt is not touched again.
	if current.Status == next {
		if err := work.Rollback(ctx); err != nil {
			return order.Order{}, err
		}

		return *current, nil
	}

	if !current.Status.CanTransitionTo(next) {
		return order.Order{}, fmt.Errorf(
			"%s -> %s: %w",
			current.Status, next, order.ErrInvalidTransition,
		)
	}

	now := s.now()
	var completedAt *time.Time
	if next == order.StatusCompleted {
		completedAt = &now
	}

	applied, err := work.OrderRepository().UpdateStatus(ctx, id, current.Status, next, now, completedAt)
	if err != nil {
		return order.Order{}, err
	}
	if !applied {
		return order.Order{}, fmt.Errorf(
			"order %d concurrently modified: %w",
			id, order.ErrInvalidTransition,
		)
	}

	statusEvent := event.OrderStatusEvent{
		OrderID:     current.ID,
		OrderNumber: current.OrderNumber,
		BranchID:    current.BranchID,
		OldStatus:   current.Status,
		NewStatus:   next,
		OccurredAt:  now,
	}
	if err := s.enqueueStatusEvent(ctx, work, statusEvent); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	current.Status = next
	current.UpdatedAt = now
	current.CompletedAt = completedAt

	return *current, nil
}

// enqueueStatusEvent writes the status change to the outbox inside the
// caller's transaction; the outbox worker publishes it to RabbitMQ.
func (s *OrderService) enqueueStatusEvent(
	ctx context.Context,
	work unitOfWork,
	e event.OrderStatusEvent,
) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	queue := viper.GetString("rabbitmq.order_status.queue")
	if queue == "" {
		queue = defaultStatusQueue
	}
	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	now := s.now()

	return work.OutboxRepository().Insert(ctx, outbox.OutboxMessage{
		QueueName:   queue,
		RoutingKey:  queue,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}
