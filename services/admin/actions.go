package admin

import (
	"context"
	"fmt"
	"strings"

	"dpiportal/models"
	"dpiportal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActionResult is returned once a confirmed action has run.
type ActionResult struct {
	Action Action            `json:"action"`
	UserID int               `json:"userId,omitempty"`
	User   *models.AdminUser `json:"user,omitempty"`
}

func validate(req ActionRequest) error {
	switch req.Action {
	case ActionCreate:
		if req.Input == nil || strings.TrimSpace(req.Input.Email) == "" {
			return fmt.Errorf("%w: email is required", ErrInvalidAction)
		}
		if req.Input.Password == "" {
			return fmt.Errorf("%w: password is required", ErrInvalidAction)
		}
		return nil
	case ActionUpdate:
		if req.Input == nil {
			return fmt.Errorf("%w: input is required", ErrInvalidAction)
		}
	case ActionResetPassword:
		if req.Password == "" {
			return fmt.Errorf("%w: password is required", ErrInvalidAction)
		}
	case ActionDelete, ActionActivate, ActionDeactivate:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidAction)
	}
	return nil
}

func summarize(req ActionRequest) string {
	switch req.Action {
	case ActionCreate:
		return fmt.Sprintf("Create user %s", req.Input.Email)
	case ActionUpdate:
		return fmt.Sprintf("Update user #%d", req.UserID)
	case ActionDelete:
		return fmt.Sprintf("Delete user #%d", req.UserID)
	case ActionActivate:
		return fmt.Sprintf("Activate user #%d", req.UserID)
	case ActionDeactivate:
		return fmt.Sprintf("Deactivate user #%d", req.UserID)
	case ActionResetPassword:
		return fmt.Sprintf("Reset password for user #%d", req.UserID)
	}
	return string(req.Action)
}

// RequestAction validates req and parks it until ConfirmAction is called. The
// returned PendingAction carries no passwords.
func (s *DefaultAdminService) RequestAction(ctx context.Context, sess *models.Session, req ActionRequest) (*PendingAction, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	now := s.now()
	p := PendingAction{
		ID:        uuid.NewString(),
		Request:   req,
		SessionID: sess.ID,
		Summary:   summarize(req),
		CreatedAt: now,
		ExpiresAt: now.Add(utils.ConfirmationTTL),
	}
	if err := s.Confirmations.Put(ctx, p, utils.ConfirmationTTL); err != nil {
		return nil, fmt.Errorf("failed to store pending action: %w", err)
	}
	p.Request = req.Redacted()
	return &p, nil
}

func (s *DefaultAdminService) take(ctx context.Context, sess *models.Session, id string) (*PendingAction, error) {
	p, err := s.Confirmations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SessionID != sess.ID {
		return nil, ErrConfirmationNotFound
	}
	// only the caller whose Take wins may run the action
	return s.Confirmations.Take(ctx, id)
}

// CancelAction drops a pending action.
func (s *DefaultAdminService) CancelAction(ctx context.Context, sess *models.Session, id string) error {
	_, err := s.take(ctx, sess, id)
	return err
}

// ConfirmAction runs a pending action. The pending entry is consumed whether
// or not the backend call succeeds; the list cache is invalidated on success.
func (s *DefaultAdminService) ConfirmAction(ctx context.Context, sess *models.Session, id string) (*ActionResult, error) {
	p, err := s.take(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	result, err := s.execute(ctx, sess.Token, p.Request)
	s.record(ctx, sess, p.Request, err)
	if err != nil {
		s.logger().Warn("admin: action failed",
			zap.String("action", string(p.Request.Action)), zap.Int("userID", p.Request.UserID), zap.Error(err))
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			s.logger().Warn("admin: user list cache invalidation failed", zap.Error(err))
		}
	}
	s.logger().Info("admin: action confirmed",
		zap.String("action", string(p.Request.Action)), zap.Int("userID", p.Request.UserID))
	return result, nil
}

func (s *DefaultAdminService) execute(ctx context.Context, token string, req ActionRequest) (*ActionResult, error) {
	res := &ActionResult{Action: req.Action, UserID: req.UserID}
	var err error
	switch req.Action {
	case ActionCreate:
		res.User, err = s.Backend.CreateUser(ctx, token, *req.Input)
		if res.User != nil {
			res.UserID = res.User.ID
		}
	case ActionUpdate:
		res.User, err = s.Backend.UpdateUser(ctx, token, req.UserID, *req.Input)
	case ActionDelete:
		err = s.Backend.DeleteUser(ctx, token, req.UserID)
	case ActionActivate:
		err = s.Backend.ActivateUser(ctx, token, req.UserID)
	case ActionDeactivate:
		err = s.Backend.DeactivateUser(ctx, token, req.UserID)
	case ActionResetPassword:
		err = s.Backend.ResetPassword(ctx, token, req.UserID, req.Password)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DefaultAdminService) record(ctx context.Context, sess *models.Session, req ActionRequest, actionErr error) {
	if s.Audit == nil {
		return
	}
	entry := models.AuditEntry{
		ID:        uuid.NewString(),
		Action:    string(req.Action),
		TargetID:  req.UserID,
		Success:   actionErr == nil,
		CreatedAt: s.now(),
	}
	if sess.Profile != nil {
		entry.ActorID = sess.Profile.ID
		entry.ActorEmail = sess.Profile.Email
	}
	if actionErr != nil {
		entry.Error = ExtractErrorMessage(actionErr)
	}
	if err := s.Audit.Create(ctx, entry); err != nil {
		s.logger().Error("admin: failed to write audit entry", zap.Error(err))
	}
}
