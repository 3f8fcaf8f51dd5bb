package admin

import (
	"context"
	"time"

	"dpiportal/backend"
	auditRepo "dpiportal/database/repository/audit"
	"dpiportal/models"

	"go.uber.org/zap"
)

// AdminService drives the admin console screens.
type AdminService interface {
	ListUsers(ctx context.Context, token string, q ListQuery) (Page, error)
	Refresh(ctx context.Context, token string) ([]models.AdminUser, error)

	RequestAction(ctx context.Context, sess *models.Session, req ActionRequest) (*PendingAction, error)
	ConfirmAction(ctx context.Context, sess *models.Session, id string) (*ActionResult, error)
	CancelAction(ctx context.Context, sess *models.Session, id string) error

	AuditLog(ctx context.Context, targetID *int, limit int) ([]models.AuditEntry, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Backend       backend.Client
	Cache         ListCache
	Confirmations ConfirmationStore
	Audit         auditRepo.AuditRepository
	PageSize      int
	Logger        *zap.Logger
	Now           func() time.Time
}

var _ AdminService = (*DefaultAdminService)(nil)

func (s *DefaultAdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAdminService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultAdminService) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultPageSize
}
