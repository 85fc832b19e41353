package auditlog

import "time"

// AuditLogOrder records one order status change as seen by the audit
// consumer.
type AuditLogOrder struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"orderId"`
	OrderNumber int       `json:"orderNumber"`
	BranchID    int64     `json:"branchId"`
	OldStatus   string    `json:"oldStatus"`
	NewStatus   string    `json:"newStatus"`
	OccurredAt  time.Time `json:"occurredAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
