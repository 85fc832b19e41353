package kitchen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

type fakeClient struct {
	responses [][]order.Order
	calls     int

	updateErr error
	updated   []updateCall
}

type updateCall struct {
	id       int64
	expected order.Status
	next     order.Status
}

func (c *fakeClient) ListOrders(context.Context, []order.Status, int64) ([]order.Order, error) {
	i := c.calls
	c.calls++

	return c.responses[i], nil
}

func (c *fakeClient) UpdateStatus(_ context.Context, id int64, expected, next order.Status) (order.Order, error) {
	c.updated = append(c.updated, updateCall{id: id, expected: expected, next: next})
	if c.updateErr != nil {
		return order.Order{}, c.updateErr
	}

	return order.Order{ID: id, Status: next}, nil
}

type countingNotifier struct {
	chimes int
}

func (n *countingNotifier) Chime() error {
	n.chimes++

	return nil
}

func (n *countingNotifier) AnnounceReady(int) error { return nil }

func activeOrder(id int64, status order.Status, age time.Duration, now time.Time) order.Order {
	return order.Order{
		ID:          id,
		OrderNumber: 1000 + int(id),
		Status:      status,
		CreatedAt:   now.Add(-age),
	}
}

func TestGroupedBucketsAndSortsOldestFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fc := &fakeClient{responses: [][]order.Order{{
		activeOrder(1, order.StatusNew, 2*time.Minute, now),
		activeOrder(2, order.StatusNew, 8*time.Minute, now),
		activeOrder(3, order.StatusPreparing, time.Minute, now),
		activeOrder(4, order.StatusReady, 30*time.Second, now),
	}}}
	board := NewBoard(
		WithClient(fc),
		withClock(func() time.Time { return now }),
	)

	require.NoError(t, board.Poll(context.Background()))

	grouped := board.Grouped()
	require.Len(t, grouped[order.StatusNew], 2)
	assert.Equal(t, int64(2), grouped[order.StatusNew][0].ID, "oldest first")
	assert.Equal(t, int64(1), grouped[order.StatusNew][1].ID)
	assert.Len(t, grouped[order.StatusPreparing], 1)
	assert.Len(t, grouped[order.StatusReady], 1)
}

func TestBandFor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	board := NewBoard(
		WithClient(&fakeClient{}),
		withClock(func() time.Time { return now }),
	)

	testCases := []struct {
		age  time.Duration
		band Band
	}{
		{0, BandFresh},
		{4*time.Minute + 59*time.Second, BandFresh},
		{5 * time.Minute, BandAging},
		{9 * time.Minute, BandAging},
		{10 * time.Minute, BandStale},
		{time.Hour, BandStale},
	}

	for _, tc := range testCases {
		o := activeOrder(1, order.StatusNew, tc.age, now)
		assert.Equal(t, tc.band, board.BandFor(o), "age %s", tc.age)
	}
}

func TestAdvanceStepsOneForwardWithGuard(t *testing.T) {
	now := time.Now()
	fc := &fakeClient{responses: [][]order.Order{{
		activeOrder(7, order.StatusPreparing, time.Minute, now),
	}}}
	board := NewBoard(WithClient(fc))

	require.NoError(t, board.Poll(context.Background()))
	require.NoError(t, board.Advance(context.Background(), 7))

	require.Len(t, fc.updated, 1)
	assert.Equal(t, order.StatusPreparing, fc.updated[0].expected)
	assert.Equal(t, order.StatusReady, fc.updated[0].next)
}

func TestAdvanceToReadyChimes(t *testing.T) {
	now := time.Now()
	fc := &fakeClient{responses: [][]order.Order{{
		activeOrder(5, order.StatusNew, time.Minute, now),
		activeOrder(7, order.StatusPreparing, time.Minute, now),
	}}}
	notifier := &countingNotifier{}
	board := NewBoard(
		WithClient(fc),
		WithNotifier(notifier),
		WithSound(true),
	)

	require.NoError(t, board.Poll(context.Background()))

	require.NoError(t, board.Advance(context.Background(), 5))
	assert.Zero(t, notifier.chimes, "new to preparing is silent")

	require.NoError(t, board.Advance(context.Background(), 7))
	assert.Equal(t, 1, notifier.chimes, "preparing to ready plays the cue")
}

func TestAdvanceToReadyWithSoundDisabled(t *testing.T) {
	now := time.Now()
	fc := &fakeClient{responses: [][]order.Order{{
		activeOrder(7, order.StatusPreparing, time.Minute, now),
	}}}
	notifier := &countingNotifier{}
	board := NewBoard(WithClient(fc), WithNotifier(notifier))

	require.NoError(t, board.Poll(context.Background()))
	require.NoError(t, board.Advance(context.Background(), 7))

	assert.Zero(t, notifier.chimes)
}

func TestAdvanceUnknownOrder(t *testing.T) {
	fc := &fakeClient{responses: [][]order.Order{{}}}
	board := NewBoard(WithClient(fc))

	require.NoError(t, board.Poll(context.Background()))
	assert.ErrorIs(t, board.Advance(context.Background(), 42), order.ErrNotFound)
}

func TestAdvanceSurfacesConflict(t *testing.T) {
	now := time.Now()
	fc := &fakeClient{
		responses: [][]order.Order{{
			activeOrder(7, order.StatusNew, time.Minute, now),
		}},
		updateErr: order.ErrInvalidTransition,
	}
	board := NewBoard(WithClient(fc))

	require.NoError(t, board.Poll(context.Background()))
	assert.ErrorIs(t, board.Advance(context.Background(), 7), order.ErrInvalidTransition)
}

func TestChimeOnNewArrivalAfterSeeding(t *testing.T) {
	now := time.Now()
	fc := &fakeClient{responses: [][]order.Order{
		{activeOrder(1, order.StatusNew, time.Minute, now)},
		{activeOrder(1, order.StatusNew, time.Minute, now), activeOrder(2, order.StatusNew, 0, now)},
		{activeOrder(1, order.StatusNew, time.Minute, now), activeOrder(2, order.StatusNew, 0, now)},
	}}
	notifier := &countingNotifier{}
	board := NewBoard(
		WithClient(fc),
		WithNotifier(notifier),
		WithSound(true),
	)

	require.NoError(t, board.Poll(context.Background()))
	assert.Zero(t, notifier.chimes, "seeding poll is silent")

	require.NoError(t, board.Poll(context.Background()))
	assert.Equal(t, 1, notifier.chimes)

	require.NoError(t, board.Poll(context.Background()))
	assert.Equal(t, 1, notifier.chimes, "no repeat for known orders")
}

func TestPollReplacesSnapshot(t *testing.T) {
	now := time.Now()
	fc := &fakeClient{responses: [][]order.Order{
		{activeOrder(1, order.StatusNew, time.Minute, now), activeOrder(2, order.StatusPreparing, time.Minute, now)},
		{activeOrder(2, order.StatusReady, time.Minute, now)},
	}}
	board := NewBoard(WithClient(fc))

	require.NoError(t, board.Poll(context.Background()))
	require.NoError(t, board.Poll(context.Background()))

	grouped := board.Grouped()
	assert.Empty(t, grouped[order.StatusNew], "completed elsewhere, dropped from board")
	assert.Len(t, grouped[order.StatusReady], 1)
}
