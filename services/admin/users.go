package admin

import (
	"context"

	"dpiportal/models"

	"go.uber.org/zap"
)

// users returns the full list, from cache when fresh.
func (s *DefaultAdminService) users(ctx context.Context, token string) ([]models.AdminUser, error) {
	if s.Cache != nil {
		users, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.logger().Warn("admin: user list cache read failed", zap.Error(err))
		} else if ok {
			return users, nil
		}
	}
	return s.Refresh(ctx, token)
}

// Refresh fetches the list from the sandbox and replaces the cached copy.
func (s *DefaultAdminService) Refresh(ctx context.Context, token string) ([]models.AdminUser, error) {
	users, err := s.Backend.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.AdminUser{}
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, users); err != nil {
			s.logger().Warn("admin: user list cache write failed", zap.Error(err))
		}
	}
	return users, nil
}

// ListUsers filters the full list for a screen and returns one page.
func (s *DefaultAdminService) ListUsers(ctx context.Context, token string, q ListQuery) (Page, error) {
	if _, err := ParseScreen(string(q.Screen)); err != nil {
		return Page{}, err
	}
	users, err := s.users(ctx, token)
	if err != nil {
		return Page{}, err
	}
	return Paginate(Filter(users, Predicate(q)), q.Page, s.pageSize()), nil
}

// AuditLog lists recorded actions, optionally for one target account.
func (s *DefaultAdminService) AuditLog(ctx context.Context, targetID *int, limit int) ([]models.AuditEntry, error) {
	if s.Audit == nil {
		return []models.AuditEntry{}, nil
	}
	if targetID != nil {
		return s.Audit.ListByTarget(ctx, *targetID)
	}
	return s.Audit.ListRecent(ctx, limit)
}
