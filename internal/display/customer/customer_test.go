package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfood-uz/pos/internal/display/client"
	"github.com/fastfood-uz/pos/internal/service/models/order"
)

type fakeClient struct {
	responses [][]order.Order
	errs      []error
	calls     int
}

func (c *fakeClient) ListOrders(context.Context, []order.Status, int64) ([]order.Order, error) {
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}

	return c.responses[i], nil
}

type recordingNotifier struct {
	chimes    int
	announced []int
}

func (n *recordingNotifier) Chime() error {
	n.chimes++

	return nil
}

func (n *recordingNotifier) AnnounceReady(orderNumber int) error {
	n.announced = append(n.announced, orderNumber)

	return nil
}

func preparing(number int) order.Order {
	return order.Order{ID: int64(number), OrderNumber: number, Status: order.StatusPreparing}
}

func ready(number int) order.Order {
	return order.Order{ID: int64(number), OrderNumber: number, Status: order.StatusReady}
}

func newTestDisplay(c *fakeClient, n *recordingNotifier) *Display {
	return NewDisplay(
		WithClient(c),
		WithNotifier(n),
		WithSound(true),
	)
}

func TestFirstPollSeedsWithoutAnnouncing(t *testing.T) {
	fc := &fakeClient{responses: [][]order.Order{
		{preparing(1001), ready(1002), ready(1003)},
	}}
	notifier := &recordingNotifier{}
	display := newTestDisplay(fc, notifier)

	require.NoError(t, display.Poll(context.Background()))

	assert.Zero(t, notifier.chimes)
	assert.Empty(t, notifier.announced)
	assert.Len(t, display.Ready(), 2)
	assert.Len(t, display.Preparing(), 1)
}

func TestAnnouncesNewlyReadyOnce(t *testing.T) {
	fc := &fakeClient{responses: [][]order.Order{
		{preparing(1001), preparing(1002)},
		{preparing(1001), ready(1002)},
		{preparing(1001), ready(1002)},
	}}
	notifier := &recordingNotifier{}
	display := newTestDisplay(fc, notifier)

	require.NoError(t, display.Poll(context.Background()))
	require.NoError(t, display.Poll(context.Background()))
	require.NoError(t, display.Poll(context.Background()))

	assert.Equal(t, 1, notifier.chimes)
	assert.Equal(t, []int{1002}, notifier.announced)
}

func TestAnnouncesEachNewReadyNumber(t *testing.T) {
	fc := &fakeClient{responses: [][]order.Order{
		{preparing(1001), preparing(1002), preparing(1003)},
		{ready(1001), ready(1003), preparing(1002)},
	}}
	notifier := &recordingNotifier{}
	display := newTestDisplay(fc, notifier)

	require.NoError(t, display.Poll(context.Background()))
	require.NoError(t, display.Poll(context.Background()))

	assert.Equal(t, 1, notifier.chimes)
	assert.Equal(t, []int{1001, 1003}, notifier.announced)
}

func TestReannouncesNumberThatLeftAndReturned(t *testing.T) {
	fc := &fakeClient{responses: [][]order.Order{
		{ready(1002)},
		{},
		{ready(1002)},
	}}
	notifier := &recordingNotifier{}
	display := newTestDisplay(fc, notifier)

	require.NoError(t, display.Poll(context.Background()))
	require.NoError(t, display.Poll(context.Background()))
	require.NoError(t, display.Poll(context.Background()))

	assert.Equal(t, []int{1002}, notifier.announced)
}

func TestPollErrorKeepsSnapshot(t *testing.T) {
	transient := &client.TransientError{Err: errors.New("connection refused")}
	fc := &fakeClient{
		responses: [][]order.Order{
			{preparing(1001), ready(1002)},
			nil,
		},
		errs: []error{nil, transient},
	}
	notifier := &recordingNotifier{}
	display := newTestDisplay(fc, notifier)

	require.NoError(t, display.Poll(context.Background()))
	err := display.Poll(context.Background())
	require.Error(t, err)

	var te *client.TransientError
	assert.ErrorAs(t, err, &te)
	assert.Len(t, display.Preparing(), 1)
	assert.Len(t, display.Ready(), 1)
}

func TestSoundDisabledStaysSilent(t *testing.T) {
	fc := &fakeClient{responses: [][]order.Order{
		{preparing(1001)},
		{ready(1001)},
	}}
	notifier := &recordingNotifier{}
	display := NewDisplay(
		WithClient(fc),
		WithNotifier(notifier),
		WithSound(false),
	)

	require.NoError(t, display.Poll(context.Background()))
	require.NoError(t, display.Poll(context.Background()))

	assert.Zero(t, notifier.chimes)
	assert.Empty(t, notifier.announced)
}

func TestColumnsSortedByNumber(t *testing.T) {
	fc := &fakeClient{responses: [][]order.Order{
		{ready(1005), preparing(1004), ready(1002), preparing(1001)},
	}}
	display := newTestDisplay(fc, &recordingNotifier{})

	require.NoError(t, display.Poll(context.Background()))

	prep := display.Preparing()
	require.Len(t, prep, 2)
	assert.Equal(t, 1001, prep[0].OrderNumber)
	assert.Equal(t, 1004, prep[1].OrderNumber)

	rdy := display.Ready()
	require.Len(t, rdy, 2)
	assert.Equal(t, 1002, rdy[0].OrderNumber)
	assert.Equal(t, 1005, rdy[1].OrderNumber)
}
