package statssvc

import (
	"context"
	"time"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/istatsrepo"
	"github.com/fastfood-uz/pos/internal/dal/postgres"
	statsrepo "github.com/fastfood-uz/pos/internal/dal/repositories/stats/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/stats"
)

const topProductsLimit = 10

// StatsService assembles the dashboard from SQL aggregates.
type StatsService struct {
	repo istatsrepo.IStatsRepository
	now  func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(pgClient *postgres.Client) *StatsService {
	return &StatsService{
		repo: statsrepo.NewStatsRepository(pgClient.Pool()),
		now:  time.Now,
	}
}

// periodStart maps a reporting period to its window start.
func periodStart(now time.Time, p stats.Period) time.Time {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case stats.PeriodWeek:
		return dayStart.AddDate(0, 0, -7)
	case stats.PeriodMonth:
		return dayStart.AddDate(0, -1, 0)
	default:
		return dayStart
	}
}

// GetDashboard returns the stats for the requested period. Day and hour
// breakdowns are always relative to now regardless of the period, matching
// the dashboard layout.
func (s *StatsService) GetDashboard(
	ctx context.Context,
	period stats.Period,
) (stats.Dashboard, error) {
	now := s.now()
	since := periodStart(now, period)
	dayStart := periodStart(now, stats.PeriodToday)
	weekStart := dayStart.AddDate(0, 0, -6)

	summary, err := s.repo.Summary(ctx, since)
	if err != nil {
		return stats.Dashboard{}, err
	}

	byPayment, err := s.repo.RevenueByPayment(ctx, since)
	if err != nil {
		return stats.Dashboard{}, err
	}

	byDay, err := s.repo.RevenueByDay(ctx, weekStart)
	if err != nil {
		return stats.Dashboard{}, err
	}

	topProducts, err := s.repo.TopProducts(ctx, since, topProductsLimit)
	if err != nil {
		return stats.Dashboard{}, err
	}

	byBranch, err := s.repo.OrdersByBranch(ctx, since)
	if err != nil {
		return stats.Dashboard{}, err
	}

	hourly, err := s.repo.HourlyToday(ctx, dayStart)
	if err != nil {
		return stats.Dashboard{}, err
	}

	return stats.Dashboard{
		Summary:          summary,
		RevenueByPayment: byPayment,
		Last7Days:        fillMissingDays(byDay, weekStart, dayStart),
		TopProducts:      topProducts,
		OrdersByBranch:   byBranch,
		HourlyToday:      hourly,
	}, nil
}

// fillMissingDays pads days without orders with zero rows so charts render
// a continuous week.
func fillMissingDays(days []stats.DayRevenue, from, to time.Time) []stats.DayRevenue {
	byDate := make(map[string]stats.DayRevenue, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	var result []stats.DayRevenue
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		if row, ok := byDate[date]; ok {
			result = append(result, row)
		} else {
			result = append(result, stats.DayRevenue{Date: date})
		}
	}

	return result
}
