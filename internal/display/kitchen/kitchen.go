package kitchen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/fastfood-uz/pos/internal/display/audio"
	"github.com/fastfood-uz/pos/internal/display/client"
	"github.com/fastfood-uz/pos/internal/service/models/order"
)

// Band classifies how long an order has been waiting on the board.
type Band string

const (
	BandFresh Band = "fresh"
	BandAging Band = "aging"
	BandStale Band = "stale"
)

const (
	agingAfter = 5 * time.Minute
	staleAfter = 10 * time.Minute
)

type apiClient interface {
	ListOrders(ctx context.Context, statuses []order.Status, branchID int64) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id int64, expected, next order.Status) (order.Order, error)
}

// Board is the kitchen display: it polls active orders, groups them by
// status and advances them one step at a time. Each poll replaces the
// whole snapshot, so two kitchen screens converge without coordination.
type Board struct {
	client       apiClient
	notifier     audio.Notifier
	branchID     int64
	pollInterval time.Duration
	soundEnabled bool
	now          func() time.Time

	orders []order.Order
	known  map[int64]struct{}
	seeded bool
}

type BoardOption func(*Board)

func WithClient(c apiClient) BoardOption {
	return func(b *Board) {
		b.client = c
	}
}

func WithNotifier(n audio.Notifier) BoardOption {
	return func(b *Board) {
		b.notifier = n
	}
}

func WithBranch(branchID int64) BoardOption {
	return func(b *Board) {
		b.branchID = branchID
	}
}

func WithPollInterval(interval time.Duration) BoardOption {
	return func(b *Board) {
		b.pollInterval = interval
	}
}

func WithSound(enabled bool) BoardOption {
	return func(b *Board) {
		b.soundEnabled = enabled
	}
}

func withClock(now func() time.Time) BoardOption {
	return func(b *Board) {
		b.now = now
	}
}

// NewBoard creates a kitchen board.
func NewBoard(opts ...BoardOption) *Board {
	board := &Board{
		notifier:     audio.NopNotifier{},
		pollInterval: 3 * time.Second,
		now:          time.Now,
		known:        make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(board)
	}

	return board
}

// Poll fetches active orders and replaces the snapshot. A new order id
// on an already seeded board triggers the chime. The first poll only
// seeds, so restarting a terminal does not replay sounds for orders
// already on the board.
func (b *Board) Poll(ctx context.Context) error {
	orders, err := b.client.ListOrders(ctx, order.ActiveStatuses(), b.branchID)
	if err != nil {
		return err
	}

	newArrival := false
	current := make(map[int64]struct{}, len(orders))
	for _, o := range orders {
		current[o.ID] = struct{}{}
		if _, ok := b.known[o.ID]; !ok && b.seeded {
			newArrival = true
		}
	}

	b.orders = orders
	b.known = current

	if newArrival && b.soundEnabled {
		if err := b.notifier.Chime(); err != nil {
			slog.Warn("Failed to play new order chime", "error", err)
		}
	}

	b.seeded = true

	return nil
}

// Run polls until the context is cancelled, rendering after each poll.
// Transient failures keep the previous snapshot on screen.
func (b *Board) Run(ctx context.Context, w io.Writer) error {
	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	slog.Info("Kitchen board started", "poll_interval", b.pollInterval, "branch_id", b.branchID)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Kitchen board shutting down")

			return nil
		case <-ticker.C:
			if err := b.Poll(ctx); err != nil {
				var transient *client.TransientError
				if errors.As(err, &transient) {
					slog.Warn("Poll failed, keeping last snapshot", "error", err)

					continue
				}

				return err
			}

			b.Render(w)
		}
	}
}

// Grouped returns the board columns: orders bucketed by status, oldest
// first within each column.
func (b *Board) Grouped() map[order.Status][]order.Order {
	grouped := make(map[order.Status][]order.Order)
	for _, o := range b.orders {
		grouped[o.Status] = append(grouped[o.Status], o)
	}
	for status := range grouped {
		column := grouped[status]
		sort.Slice(column, func(i, j int) bool {
			return column[i].CreatedAt.Before(column[j].CreatedAt)
		})
	}

	return grouped
}

// Advance moves an order one step forward, guarded by the status this
// board last saw. A conflict means another terminal got there first;
// the next poll shows the true state.
func (b *Board) Advance(ctx context.Context, id int64) error {
	var found *order.Order
	for i := range b.orders {
		if b.orders[i].ID == id {
			found = &b.orders[i]
			break
		}
	}
	if found == nil {
		return order.ErrNotFound
	}

	next, ok := found.Status.Next()
	if !ok {
		return fmt.Errorf("%w: order %d is already %s", order.ErrInvalidTransition, id, found.Status)
	}

	updated, err := b.client.UpdateStatus(ctx, id, found.Status, next)
	if err != nil {
		return err
	}

	*found = updated

	if next == order.StatusReady && b.soundEnabled {
		if err := b.notifier.Chime(); err != nil {
			slog.Warn("Failed to play ready chime", "error", err)
		}
	}

	return nil
}

// BandFor classifies an order's waiting time.
func (b *Board) BandFor(o order.Order) Band {
	elapsed := b.now().Sub(o.CreatedAt)
	switch {
	case elapsed < agingAfter:
		return BandFresh
	case elapsed < staleAfter:
		return BandAging
	default:
		return BandStale
	}
}

// Render writes the board columns as text.
func (b *Board) Render(w io.Writer) {
	grouped := b.Grouped()

	for _, status := range order.ActiveStatuses() {
		column := grouped[status]
		fmt.Fprintf(w, "%s (%d)\n", status, len(column))
		for _, o := range column {
			elapsed := b.now().Sub(o.CreatedAt).Round(time.Second)
			fmt.Fprintf(w, "  #%d  %s  %s\n", o.OrderNumber, elapsed, b.BandFor(o))
		}
	}
}
