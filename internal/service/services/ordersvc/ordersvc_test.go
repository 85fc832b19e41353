package ordersvc

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/ibranchrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iorderitemrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iorderrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/ioutboxrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iproductrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iuserrepo"
	"github.com/fastfood-uz/pos/internal/service/models/branch"
	"github.com/fastfood-uz/pos/internal/service/models/event"
	"github.com/fastfood-uz/pos/internal/service/models/order"
	"github.com/fastfood-uz/pos/internal/service/models/orderitem"
	"github.com/fastfood-uz/pos/internal/service/models/outbox"
	"github.com/fastfood-uz/pos/internal/service/models/product"
	"github.com/fastfood-uz/pos/internal/service/models/user"
)

// memStore is shared in-memory state behind the fake repositories.
type memStore struct {
	orders   map[int64]order.Order
	items    []orderitem.OrderItem
	outbox   []outbox.OutboxMessage
	branches map[int64]struct{}
	users    map[int64]struct{}

	// products maps product id to its current menu price.
	products map[int64]int64

	nextOrderID int64
	nextItemID  int64

	// forceUpdateStatusMiss makes UpdateStatus report that the
	// conditional update matched no row.
	forceUpdateStatusMiss bool
}

func newMemStore() *memStore {
	return &memStore{
		orders:   make(map[int64]order.Order),
		branches: map[int64]struct{}{1: {}},
		users:    map[int64]struct{}{1: {}},
		products: map[int64]int64{10: 25000, 11: 12000},
	}
}

type memUOW struct {
	store *memStore
}

func (u *memUOW) Begin(context.Context) error    { return nil }
func (u *memUOW) Commit(context.Context) error   { return nil }
func (u *memUOW) Rollback(context.Context) error { return nil }

func (u *memUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &memOrderRepo{store: u.store}
}

func (u *memUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return &memOrderItemRepo{store: u.store}
}

func (u *memUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &memOutboxRepo{store: u.store}
}

func (u *memUOW) ProductRepository() iproductrepo.IProductRepository {
	return &memProductRepo{store: u.store}
}

func (u *memUOW) BranchRepository() ibranchrepo.IBranchRepository {
	return &memBranchRepo{ids: u.store.branches}
}

func (u *memUOW) UserRepository() iuserrepo.IUserRepository {
	return &memUserRepo{ids: u.store.users}
}

type memOrderRepo struct {
	store *memStore
}

func (r *memOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	r.store.nextOrderID++
	o.ID = r.store.nextOrderID
	r.store.orders[o.ID] = o

	return o, nil
}

func (r *memOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	result := make([]order.Order, 0)
	for _, o := range r.store.orders {
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if o.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, o)
	}

	return result, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}

	return &o, nil
}

func (r *memOrderRepo) NextOrderNumber(context.Context) (int, error) {
	max := 1000
	for _, o := range r.store.orders {
		if o.OrderNumber > max {
			max = o.OrderNumber
		}
	}

	return max + 1, nil
}

func (r *memOrderRepo) UpdateStatus(
	_ context.Context,
	id int64,
	expected order.Status,
	next order.Status,
	updatedAt time.Time,
	completedAt *time.Time,
) (bool, error) {
	if r.store.forceUpdateStatusMiss {
		return false, nil
	}

	o, ok := r.store.orders[id]
	if !ok || o.Status != expected {
		return false, nil
	}

	o.Status = next
	o.UpdatedAt = updatedAt
	o.CompletedAt = completedAt
	r.store.orders[id] = o

	return true, nil
}

type memOrderItemRepo struct {
	store *memStore
}

func (r *memOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	inserted := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		r.store.nextItemID++
		item.ID = r.store.nextItemID
		r.store.items = append(r.store.items, item)
		inserted[i] = item
	}

	return inserted, nil
}

func (r *memOrderItemRepo) QueryByOrderIDs(_ context.Context, orderIDs []int64) ([]orderitem.OrderItem, error) {
	result := make([]orderitem.OrderItem, 0)
	for _, item := range r.store.items {
		for _, id := range orderIDs {
			if item.OrderID == id {
				result = append(result, item)
			}
		}
	}

	return result, nil
}

type memOutboxRepo struct {
	store *memStore
}

func (r *memOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	r.store.outbox = append(r.store.outbox, msg)

	return nil
}

func (r *memOutboxRepo) GetPendingMessages(context.Context, int) ([]outbox.OutboxMessage, error) {
	return r.store.outbox, nil
}

func (r *memOutboxRepo) Delete(context.Context, int64) error { return nil }

func (r *memOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Query(_ context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	result := make([]product.Product, 0, len(filter.Ids))
	for _, id := range filter.Ids {
		price, ok := r.store.products[id]
		if !ok {
			continue
		}
		result = append(result, product.Product{ID: id, Price: price})
	}

	return result, nil
}

func (r *memProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (r *memProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

type memBranchRepo struct {
	ids map[int64]struct{}
}

func (r *memBranchRepo) Query(context.Context) ([]branch.Branch, error) { return nil, nil }

func (r *memBranchRepo) Insert(_ context.Context, b branch.Branch) (branch.Branch, error) {
	return b, nil
}

func (r *memBranchRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.ids[id]

	return ok, nil
}

type memUserRepo struct {
	ids map[int64]struct{}
}

func (r *memUserRepo) Query(context.Context) ([]user.User, error) { return nil, nil }

func (r *memUserRepo) Insert(_ context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (r *memUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.ids[id]

	return ok, nil
}

func newTestService(store *memStore, now time.Time) *OrderService {
	return MustNewOrderService(
		withUnitOfWorkFactory(func() unitOfWork {
			return &memUOW{store: store}
		}),
		withClock(func() time.Time { return now }),
	)
}

func validOrder() order.Order {
	return order.Order{
		BranchID:      1,
		UserID:        1,
		Type:          order.TypeDineIn,
		PaymentMethod: order.PaymentCash,
		PaymentStatus: order.PaymentStatusPaid,
		OrderItems: []orderitem.OrderItem{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 1},
		},
	}
}

func TestCreateOrderComputesTotals(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	o := validOrder()
	o.Discount = 7000

	created, err := svc.CreateOrder(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, int64(62000), created.Subtotal)
	assert.Equal(t, int64(55000), created.Total)
	assert.Equal(t, int64(50000), created.OrderItems[0].Total)
	assert.Equal(t, int64(12000), created.OrderItems[1].Total)
	assert.Equal(t, order.StatusNew, created.Status)
	assert.Nil(t, created.CompletedAt)
}

func TestCreateOrderSnapshotsMenuPrices(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	o := validOrder()
	// A client-supplied price must not override the menu.
	o.OrderItems[0].Price = 1

	created, err := svc.CreateOrder(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, int64(25000), created.OrderItems[0].Price)
	assert.Equal(t, int64(62000), created.Subtotal)
}

func TestCreateOrderClampsOversizedDiscount(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	o := validOrder()
	o.Discount = 1000000

	created, err := svc.CreateOrder(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, int64(62000), created.Subtotal)
	assert.Equal(t, int64(0), created.Total)
}

func TestCreateOrderIgnoresNegativeDiscount(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	o := validOrder()
	o.Discount = -500

	created, err := svc.CreateOrder(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, int64(0), created.Discount)
	assert.Equal(t, int64(62000), created.Total)
}

func TestCreateOrderAssignsSequentialNumbers(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	first, err := svc.CreateOrder(context.Background(), validOrder())
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), validOrder())
	require.NoError(t, err)

	assert.Equal(t, 1001, first.OrderNumber)
	assert.Equal(t, 1002, second.OrderNumber)
}

func TestCreateOrderRejectsEmptyOrder(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	o := validOrder()
	o.OrderItems = nil

	_, err := svc.CreateOrder(context.Background(), o)
	assert.ErrorIs(t, err, order.ErrEmptyOrder)
}

func TestCreateOrderRejectsInvalidQuantity(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	o := validOrder()
	o.OrderItems[0].Quantity = 0

	_, err := svc.CreateOrder(context.Background(), o)
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)
}

func TestCreateOrderRejectsUnknownReferences(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*memStore, *order.Order)
	}{
		{"unknown branch", func(_ *memStore, o *order.Order) { o.BranchID = 99 }},
		{"unknown user", func(_ *memStore, o *order.Order) { o.UserID = 99 }},
		{"unknown product", func(_ *memStore, o *order.Order) { o.OrderItems[0].ProductID = 99 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			svc := newTestService(store, time.Now())

			o := validOrder()
			tc.mutate(store, &o)

			_, err := svc.CreateOrder(context.Background(), o)
			assert.ErrorIs(t, err, order.ErrReferenceNotFound)
			assert.Empty(t, store.orders)
		})
	}
}

func TestCreateOrderEnqueuesStatusEvent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	created, err := svc.CreateOrder(context.Background(), validOrder())
	require.NoError(t, err)

	require.Len(t, store.outbox, 1)

	var e event.OrderStatusEvent
	require.NoError(t, json.Unmarshal(store.outbox[0].Payload, &e))
	assert.Equal(t, created.ID, e.OrderID)
	assert.Equal(t, created.OrderNumber, e.OrderNumber)
	assert.Equal(t, order.StatusNew, e.NewStatus)
}

func seedOrder(store *memStore, status order.Status) int64 {
	store.nextOrderID++
	id := store.nextOrderID
	store.orders[id] = order.Order{
		ID:          id,
		OrderNumber: 1000 + int(id),
		BranchID:    1,
		UserID:      1,
		Status:      status,
	}

	return id
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	testCases := []struct {
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{order.StatusNew, order.StatusPreparing, true},
		{order.StatusNew, order.StatusCancelled, true},
		{order.StatusNew, order.StatusReady, false},
		{order.StatusPreparing, order.StatusReady, true},
		{order.StatusPreparing, order.StatusCancelled, true},
		{order.StatusReady, order.StatusCompleted, true},
		{order.StatusReady, order.StatusCancelled, false},
		{order.StatusCompleted, order.StatusPreparing, false},
		{order.StatusCancelled, order.StatusPreparing, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			store := newMemStore()
			svc := newTestService(store, time.Now())
			id := seedOrder(store, tc.from)

			updated, err := svc.UpdateOrderStatus(context.Background(), id, nil, tc.to)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
				assert.Equal(t, tc.to, store.orders[id].Status)
			} else {
				assert.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, tc.from, store.orders[id].Status)
			}
		})
	}
}

func TestUpdateOrderStatusIdempotentNoOp(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())
	id := seedOrder(store, order.StatusPreparing)

	updated, err := svc.UpdateOrderStatus(context.Background(), id, nil, order.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, updated.Status)
	assert.Empty(t, store.outbox, "no-op must not emit an event")
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	_, err := svc.UpdateOrderStatus(context.Background(), 404, nil, order.StatusPreparing)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestUpdateOrderStatusStaleExpected(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())
	id := seedOrder(store, order.StatusPreparing)

	expected := order.StatusNew
	_, err := svc.UpdateOrderStatus(context.Background(), id, &expected, order.StatusPreparing)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusPreparing, store.orders[id].Status)
}

func TestUpdateOrderStatusLosesConditionalUpdate(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())
	id := seedOrder(store, order.StatusNew)
	store.forceUpdateStatusMiss = true

	_, err := svc.UpdateOrderStatus(context.Background(), id, nil, order.StatusPreparing)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestUpdateOrderStatusSetsCompletedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMemStore()
	svc := newTestService(store, now)
	id := seedOrder(store, order.StatusReady)

	updated, err := svc.UpdateOrderStatus(context.Background(), id, nil, order.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, now, *updated.CompletedAt)
}

func TestUpdateOrderStatusCancelLeavesCompletedAtEmpty(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())
	id := seedOrder(store, order.StatusPreparing)

	updated, err := svc.UpdateOrderStatus(context.Background(), id, nil, order.StatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateOrderStatusEmitsTransitionEvent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())
	id := seedOrder(store, order.StatusNew)

	_, err := svc.UpdateOrderStatus(context.Background(), id, nil, order.StatusPreparing)
	require.NoError(t, err)

	require.Len(t, store.outbox, 1)
	var e event.OrderStatusEvent
	require.NoError(t, json.Unmarshal(store.outbox[0].Payload, &e))
	assert.Equal(t, order.StatusNew, e.OldStatus)
	assert.Equal(t, order.StatusPreparing, e.NewStatus)
}

// Two terminals advance the same order from the same observed state; the
// second request finds the order already moved on and is rejected.
func TestUpdateOrderStatusTwoTerminalsSameExpected(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())
	id := seedOrder(store, order.StatusNew)

	expected := order.StatusNew

	updated, err := svc.UpdateOrderStatus(context.Background(), id, &expected, order.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, updated.Status)

	_, err = svc.UpdateOrderStatus(context.Background(), id, &expected, order.StatusPreparing)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusPreparing, store.orders[id].Status)
}

// Full lifecycle: NEW -> PREPARING -> READY -> COMPLETED, one event per
// transition plus the creation event.
func TestOrderLifecycle(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	created, err := svc.CreateOrder(context.Background(), validOrder())
	require.NoError(t, err)

	for _, next := range []order.Status{order.StatusPreparing, order.StatusReady, order.StatusCompleted} {
		_, err = svc.UpdateOrderStatus(context.Background(), created.ID, nil, next)
		require.NoError(t, err)
	}

	final := store.orders[created.ID]
	assert.Equal(t, order.StatusCompleted, final.Status)
	assert.NotNil(t, final.CompletedAt)
	assert.Len(t, store.outbox, 4)

	_, err = svc.UpdateOrderStatus(context.Background(), created.ID, nil, order.StatusCancelled)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}
