package istatsrepo

import (
	"context"
	"time"

	"github.com/fastfood-uz/pos/internal/service/models/stats"
)

// IStatsRepository aggregates dashboard figures. All revenue queries
// exclude cancelled orders.
type IStatsRepository interface {
	Summary(ctx context.Context, since time.Time) (stats.Summary, error)
	RevenueByPayment(ctx context.Context, since time.Time) ([]stats.PaymentRevenue, error)
	RevenueByDay(ctx context.Context, since time.Time) ([]stats.DayRevenue, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]stats.TopProduct, error)
	OrdersByBranch(ctx context.Context, since time.Time) ([]stats.BranchRevenue, error)
	HourlyToday(ctx context.Context, dayStart time.Time) ([]stats.HourRevenue, error)
}
