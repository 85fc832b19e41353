package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusNew, StatusPreparing, true},
		{StatusNew, StatusCancelled, true},
		{StatusNew, StatusReady, false},
		{StatusNew, StatusCompleted, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPreparing, StatusCompleted, false},
		{StatusPreparing, StatusNew, false},
		{StatusReady, StatusCompleted, true},
		{StatusReady, StatusCancelled, false},
		{StatusReady, StatusPreparing, false},
		{StatusCompleted, StatusNew, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusNew, false},
		{StatusCancelled, StatusPreparing, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestNext(t *testing.T) {
	next, ok := StatusNew.Next()
	require.True(t, ok)
	assert.Equal(t, StatusPreparing, next)

	next, ok = StatusPreparing.Next()
	require.True(t, ok)
	assert.Equal(t, StatusReady, next)

	next, ok = StatusReady.Next()
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, next)

	_, ok = StatusCompleted.Next()
	assert.False(t, ok)

	_, ok = StatusCancelled.Next()
	assert.False(t, ok)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusNew.IsTerminal())
	assert.False(t, StatusPreparing.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"NEW", "PREPARING", "READY", "COMPLETED", "CANCELLED"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	for _, invalid := range []string{"", "new", "DONE", "UNKNOWN"} {
		_, err := ParseStatus(invalid)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}
