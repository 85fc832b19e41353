package statssvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfood-uz/pos/internal/service/models/stats"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), periodStart(now, stats.PeriodToday))
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), periodStart(now, stats.PeriodWeek))
	assert.Equal(t, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), periodStart(now, stats.PeriodMonth))
}

func TestFillMissingDays(t *testing.T) {
	from := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	days := []stats.DayRevenue{
		{Date: "2025-06-10", Orders: 12, Revenue: 300000},
		{Date: "2025-06-14", Orders: 5, Revenue: 90000},
	}

	filled := fillMissingDays(days, from, to)

	require.Len(t, filled, 7)
	assert.Equal(t, "2025-06-09", filled[0].Date)
	assert.Zero(t, filled[0].Orders)
	assert.Equal(t, 12, filled[1].Orders)
	assert.Equal(t, int64(300000), filled[1].Revenue)
	assert.Zero(t, filled[2].Orders)
	assert.Equal(t, 5, filled[5].Orders)
	assert.Equal(t, "2025-06-15", filled[6].Date)
	assert.Zero(t, filled[6].Orders)
}

func TestFillMissingDaysEmptyInput(t *testing.T) {
	from := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	filled := fillMissingDays(nil, from, to)

	require.Len(t, filled, 7)
	for _, day := range filled {
		assert.Zero(t, day.Orders)
		assert.Zero(t, day.Revenue)
	}
}
