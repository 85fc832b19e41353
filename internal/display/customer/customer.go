package customer

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

type apiClient interface {
	ListOrders(ctx context.Context, statuses []order.Status, branchID int64) ([]order.Order, error)
}

// Display is the customer-facing screen: preparing numbers on one side,
// ready numbers on the other. A number moving into the ready column is
// announced exactly once, keyed by order number across polls.
type Display struct {
	client       apiClient
	notifier     audio.Notifier
	branchID     int64
	pollInterval time.Duration
	soundEnabled bool

	preparing []order.Order
	ready     []order.Order
	prevReady map[int]struct{}
	seeded    bool
}

type DisplayOption func(*Display)

func WithClient(c apiClient) DisplayOption {
	return func(d *Display) {
		d.client = c
	}
}

func WithNotifier(n audio.Notifier) DisplayOption {
	return func(d *Display) {
		d.notifier = n
	}
}

func WithBranch(branchID int64) DisplayOption {
	return func(d *Display) {
		d.branchID = branchID
	}
}

func WithPollInterval(interval time.Duration) DisplayOption {
	return func(d *Display) {
		d.pollInterval = interval
	}
}

func WithSound(enabled bool) DisplayOption {
	return func(d *Display) {
		d.soundEnabled = enabled
	}
}

// NewDisplay creates a customer display.
func NewDisplay(opts ...DisplayOption) *Display {
	display := &Display{
		notifier:     audio.NopNotifier{},
		pollInterval: 3 * time.Second,
		prevReady:    make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(display)
	}

	return display
}

// Poll fetches preparing and ready orders and replaces both columns.
// Numbers that entered the ready set since the previous poll are
// announced, except on the first successful poll: a freshly started
// screen seeds silently so it does not re-announce orders that were
// already ready.
func (d *Display) Poll(ctx context.Context) error {
	orders, err := d.client.ListOrders(
		ctx,
		[]order.Status{order.StatusPreparing, order.StatusReady},
		d.branchID,
	)
	if err != nil {
		return err
	}

	preparing := make([]order.Order, 0, len(orders))
	ready := make([]order.Order, 0, len(orders))
	currentReady := make(map[int]struct{})
	newlyReady := make([]int, 0)

	for _, o := range orders {
		switch o.Status {
		case order.StatusReady:
			ready = append(ready, o)
			currentReady[o.OrderNumber] = struct{}{}
			if _, ok := d.prevReady[o.OrderNumber]; !ok && d.seeded {
				newlyReady = append(newlyReady, o.OrderNumber)
			}
		case order.StatusPreparing:
			preparing = append(preparing, o)
		}
	}

	sortByNumber(preparing)
	sortByNumber(ready)
	sort.Ints(newlyReady)

	d.preparing = preparing
	d.ready = ready
	d.prevReady = currentReady
	d.seeded = true

	if len(newlyReady) > 0 && d.soundEnabled {
		if err := d.notifier.Chime(); err != nil {
			slog.Warn("Failed to play ready chime", "error", err)
		}
		for _, number := range newlyReady {
			if err := d.notifier.AnnounceReady(number); err != nil {
				slog.Warn("Failed to announce ready order", "order_number", number, "error", err)
			}
		}
	}

	return nil
}

func sortByNumber(orders []order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderNumber < orders[j].OrderNumber
	})
}

// Run polls until the context is cancelled, rendering after each poll.
// Transient failures keep the previous columns on screen.
func (d *Display) Run(ctx context.Context, w io.Writer) error {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	slog.Info("Customer display started", "poll_interval", d.pollInterval, "branch_id", d.branchID)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Customer display shutting down")

			return nil
		case <-ticker.C:
			if err := d.Poll(ctx); err != nil {
				var transient *client.TransientError
				if errors.As(err, &transient) {
					slog.Warn("Poll failed, keeping last snapshot", "error", err)

					continue
				}

				return err
			}

			d.Render(w)
		}
	}
}

// Preparing returns the preparing column, lowest number first.
func (d *Display) Preparing() []order.Order {
	return d.preparing
}

// Ready returns the ready column, lowest number first.
func (d *Display) Ready() []order.Order {
	return d.ready
}

// Render writes the two columns as text.
func (d *Display) Render(w io.Writer) {
	fmt.Fprintf(w, "PREPARING (%d)\n", len(d.preparing))
	for _, o := range d.preparing {
		fmt.Fprintf(w, "  #%d\n", o.OrderNumber)
	}
	fmt.Fprintf(w, "READY (%d)\n", len(d.ready))
	for _, o := range d.ready {
		fmt.Fprintf(w, "  #%d\n", o.OrderNumber)
	}
}
