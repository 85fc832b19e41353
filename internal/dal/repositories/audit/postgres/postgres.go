package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/auditlog"
)

// AuditRepository persists the order status audit trail.
type AuditRepository struct {
	conn postgres.Querier
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(conn postgres.Querier) *AuditRepository {
	return &AuditRepository{
		conn: conn,
	}
}

// Insert records one status change.
func (r *AuditRepository) Insert(ctx context.Context, log auditlog.AuditLogOrder) error {
	query, args, err := sq.Insert("order_audit_log").
		Columns(
			"order_id",
			"order_number",
			"branch_id",
			"old_status",
			"new_status",
			"occurred_at",
			"created_at",
		).
		Values(
			log.OrderID,
			log.OrderNumber,
			log.BranchID,
			log.OldStatus,
			log.NewStatus,
			log.OccurredAt,
			time.Now(),
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}
