package iauditrepo

import (
	"context"

	"github.com/fastfood-uz/pos/internal/service/models/auditlog"
)

// IAuditRepository defines the interface for the order audit trail.
type IAuditRepository interface {
	Insert(ctx context.Context, log auditlog.AuditLogOrder) error
}
