package auditsvc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/iauditrepo"
	"github.com/fastfood-uz/pos/internal/dal/postgres"
	auditrepo "github.com/fastfood-uz/pos/internal/dal/repositories/audit/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/auditlog"
	"github.com/fastfood-uz/pos/internal/service/models/event"
	"github.com/fastfood-uz/pos/internal/service/models/inbox"
)

// AuditService turns consumed order status events into audit trail rows.
type AuditService struct {
	auditRepo iauditrepo.IAuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(pgClient *postgres.Client) *AuditService {
	return &AuditService{
		auditRepo: auditrepo.NewAuditRepository(pgClient.Pool()),
	}
}

// ProcessInboxMessage decodes a parked status event and records it.
func (s *AuditService) ProcessInboxMessage(ctx context.Context, msg inbox.InboxMessage) error {
	var e event.OrderStatusEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return fmt.Errorf("failed to unmarshal status event: %w", err)
	}

	return s.auditRepo.Insert(ctx, auditlog.AuditLogOrder{
		OrderID:     e.OrderID,
		OrderNumber: e.OrderNumber,
		BranchID:    e.BranchID,
		OldStatus:   e.OldStatus.String(),
		NewStatus:   e.NewStatus.String(),
		OccurredAt:  e.OccurredAt,
	})
}
