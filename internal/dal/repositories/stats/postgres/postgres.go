package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/order"
	"github.com/fastfood-uz/pos/internal/service/models/stats"
)

// StatsRepository computes dashboard aggregates in SQL. Cancelled orders
// never count towards revenue.
type StatsRepository struct {
	conn postgres.Querier
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(conn postgres.Querier) *StatsRepository {
	return &StatsRepository{
		conn: conn,
	}
}

func notCancelled() sq.Sqlizer {
	return sq.NotEq{"status": order.StatusCancelled.String()}
}

// Summary returns the headline numbers for the period.
func (r *StatsRepository) Summary(ctx context.Context, since time.Time) (stats.Summary, error) {
	query, args, err := sq.Select("COUNT(*)", "COALESCE(SUM(total), 0)").
		From("orders").
		Where(sq.GtOrEq{"created_at": since}).
		Where(notCancelled()).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return stats.Summary{}, fmt.Errorf("failed to build summary query: %w", err)
	}

	var s stats.Summary
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&s.TotalOrders, &s.TotalRevenue); err != nil {
		return stats.Summary{}, fmt.Errorf("failed to query summary: %w", err)
	}

	if s.TotalOrders > 0 {
		s.AverageCheck = s.TotalRevenue / int64(s.TotalOrders)
	}

	active := make([]string, 0, 3)
	for _, st := range order.ActiveStatuses() {
		active = append(active, st.String())
	}

	query, args, err = sq.Select("COUNT(*)").
		From("orders").
		Where(sq.Eq{"status": active}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return stats.Summary{}, fmt.Errorf("failed to build active count query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&s.ActiveOrders); err != nil {
		return stats.Summary{}, fmt.Errorf("failed to query active orders: %w", err)
	}

	return s, nil
}

// RevenueByPayment groups revenue for the period by payment method.
func (r *StatsRepository) RevenueByPayment(
	ctx context.Context,
	since time.Time,
) ([]stats.PaymentRevenue, error) {
	query, args, err := sq.Select("payment_method", "COALESCE(SUM(total), 0)").
		From("orders").
		Where(sq.GtOrEq{"created_at": since}).
		Where(notCancelled()).
		GroupBy("payment_method").
		OrderBy("2 DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue by payment query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by payment: %w", err)
	}
	defer rows.Close()

	var result []stats.PaymentRevenue
	for rows.Next() {
		var pr stats.PaymentRevenue
		if err := rows.Scan(&pr.PaymentMethod, &pr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan payment revenue: %w", err)
		}
		result = append(result, pr)
	}

	return result, rows.Err()
}

// RevenueByDay groups orders and revenue per calendar day since the given
// time.
func (r *StatsRepository) RevenueByDay(
	ctx context.Context,
	since time.Time,
) ([]stats.DayRevenue, error) {
	query, args, err := sq.Select(
		"to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day",
		"COUNT(*)",
		"COALESCE(SUM(total), 0)",
	).
		From("orders").
		Where(sq.GtOrEq{"created_at": since}).
		Where(notCancelled()).
		GroupBy("day").
		OrderBy("day ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue by day query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by day: %w", err)
	}
	defer rows.Close()

	var result []stats.DayRevenue
	for rows.Next() {
		var dr stats.DayRevenue
		if err := rows.Scan(&dr.Date, &dr.Orders, &dr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan day revenue: %w", err)
		}
		result = append(result, dr)
	}

	return result, rows.Err()
}

// TopProducts returns the best-selling products by quantity for the period.
func (r *StatsRepository) TopProducts(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]stats.TopProduct, error) {
	query, args, err := sq.Select(
		"oi.product_id",
		"p.name",
		"SUM(oi.quantity)::int",
		"COALESCE(SUM(oi.total), 0)",
	).
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id").
		Join("products p ON p.id = oi.product_id").
		Where(sq.GtOrEq{"o.created_at": since}).
		Where(sq.NotEq{"o.status": order.StatusCancelled.String()}).
		GroupBy("oi.product_id", "p.name").
		OrderBy("3 DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top products query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var result []stats.TopProduct
	for rows.Next() {
		var tp stats.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.Quantity, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		result = append(result, tp)
	}

	return result, rows.Err()
}

// OrdersByBranch groups orders and revenue per branch for the period.
func (r *StatsRepository) OrdersByBranch(
	ctx context.Context,
	since time.Time,
) ([]stats.BranchRevenue, error) {
	query, args, err := sq.Select(
		"b.id",
		"b.name",
		"COUNT(o.id)",
		"COALESCE(SUM(o.total), 0)",
	).
		From("branches b").
		LeftJoin(
			"orders o ON o.branch_id = b.id AND o.created_at >= ? AND o.status <> ?",
			since,
			order.StatusCancelled.String(),
		).
		GroupBy("b.id", "b.name").
		OrderBy("b.id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders by branch query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by branch: %w", err)
	}
	defer rows.Close()

	var result []stats.BranchRevenue
	for rows.Next() {
		var br stats.BranchRevenue
		if err := rows.Scan(&br.BranchID, &br.Name, &br.Orders, &br.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan branch revenue: %w", err)
		}
		result = append(result, br)
	}

	return result, rows.Err()
}

// HourlyToday groups today's orders and revenue per hour.
func (r *StatsRepository) HourlyToday(
	ctx context.Context,
	dayStart time.Time,
) ([]stats.HourRevenue, error) {
	query, args, err := sq.Select(
		"EXTRACT(HOUR FROM created_at)::int AS hour",
		"COUNT(*)",
		"COALESCE(SUM(total), 0)",
	).
		From("orders").
		Where(sq.GtOrEq{"created_at": dayStart}).
		Where(notCancelled()).
		GroupBy("hour").
		OrderBy("hour ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build hourly query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly revenue: %w", err)
	}
	defer rows.Close()

	var result []stats.HourRevenue
	for rows.Next() {
		var hr stats.HourRevenue
		if err := rows.Scan(&hr.Hour, &hr.Orders, &hr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan hourly revenue: %w", err)
		}
		result = append(result, hr)
	}

	return result, rows.Err()
}
