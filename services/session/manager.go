// Package session owns the portal session lifecycle: created on sign-in,
// refreshed on profile fetch, destroyed on sign-out or expiry.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dpiportal/backend"
	"dpiportal/models"
	"dpiportal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrExpired is returned for a session found past its expiry; it has been cleared.
var ErrExpired = errors.New("session expired")

// SignInResponse is handed back to the shell after sign-in.
type SignInResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	Profile   *models.UserProfile `json:"profile,omitempty"`
}

// Manager ties the session store to the sandbox API.
type Manager struct {
	Store   Store
	Backend backend.Client
	TTL     time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Manager) logger() *zap.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return zap.NewNop()
}

// SignIn authenticates against the sandbox, stores the session and returns a
// signed portal token referencing it.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	res, err := m.Backend.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile := res.Profile
	if profile == nil {
		profile, err = m.Backend.GetProfile(ctx, res.Token)
		if err != nil {
			// The session is still usable; the profile is fetched again on /me.
			m.logger().Warn("session: profile fetch after sign-in failed", zap.String("email", email), zap.Error(err))
		}
	}

	now := m.now()
	sess := models.Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		Profile:   profile,
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}
	if err := m.Store.Save(ctx, sess, m.TTL); err != nil {
		return nil, err
	}

	userID := ""
	if profile != nil {
		userID = fmt.Sprint(profile.ID)
	}
	token, err := utils.GenerateToken(userID, sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	m.logger().Info("session: signed in", zap.String("sessionID", sess.ID), zap.String("email", email))
	return &SignInResponse{Token: token, ExpiresAt: sess.ExpiresAt, Profile: profile}, nil
}

// Get loads a session. Expired sessions are deleted and reported as ErrExpired.
func (m *Manager) Get(ctx context.Context, id string) (*models.Session, error) {
	sess, err := m.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(m.now()) {
		if err := m.Store.Delete(ctx, id); err != nil {
			m.logger().Warn("session: failed to clear expired session", zap.String("sessionID", id), zap.Error(err))
		}
		return nil, ErrExpired
	}
	return sess, nil
}

// RefreshProfile re-fetches the profile for sess and stores it.
func (m *Manager) RefreshProfile(ctx context.Context, sess *models.Session) (*models.Session, error) {
	profile, err := m.Backend.GetProfile(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	updated := *sess
	updated.Profile = profile

	ttl := updated.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		_ = m.Store.Delete(ctx, sess.ID)
		return nil, ErrExpired
	}
	if err := m.Store.Save(ctx, updated, ttl); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Destroy removes the session.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if err := m.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.logger().Info("session: signed out", zap.String("sessionID", id))
	return nil
}
