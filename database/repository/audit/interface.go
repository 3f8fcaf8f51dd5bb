package auditRepo

import (
	"context"

	"dpiportal/models"
)

// AuditRepository stores confirmed admin actions.
type AuditRepository interface {
	Create(ctx context.Context, entry models.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditEntry, error)
	ListByTarget(ctx context.Context, targetID int) ([]models.AuditEntry, error)
}
