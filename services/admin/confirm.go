package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dpiportal/models"
	"dpiportal/services/session"
	"dpiportal/utils"

	"github.com/go-redis/redis/v8"
)

// Action names a state-changing admin operation.
type Action string

const (
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionActivate      Action = "activate"
	ActionDeactivate    Action = "deactivate"
	ActionResetPassword Action = "reset-password"
)

// ActionRequest is what the console asks to do.
type ActionRequest struct {
	Action   Action                 `json:"action" binding:"required"`
	UserID   int                    `json:"userId,omitempty"`
	Input    *models.AdminUserInput `json:"input,omitempty"`
	Password string                 `json:"password,omitempty"`
}

// Redacted returns a copy of r without any password.
func (r ActionRequest) Redacted() ActionRequest {
	r.Password = ""
	if r.Input != nil {
		in := *r.Input
		in.Password = ""
		r.Input = &in
	}
	return r
}

// mapSecrets returns a copy of r with every non-empty password passed through f.
func (r ActionRequest) mapSecrets(f func(string) (string, error)) (ActionRequest, error) {
	var err error
	if r.Password != "" {
		if r.Password, err = f(r.Password); err != nil {
			return r, err
		}
	}
	if r.Input != nil && r.Input.Password != "" {
		in := *r.Input
		if in.Password, err = f(in.Password); err != nil {
			return r, err
		}
		r.Input = &in
	}
	return r, nil
}

// PendingAction waits for explicit confirmation from the same session.
type PendingAction struct {
	ID        string        `json:"id"`
	Request   ActionRequest `json:"request"`
	SessionID string        `json:"-"`
	Summary   string        `json:"summary"`
	CreatedAt time.Time     `json:"createdAt"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// pendingRecord is the stored form; SessionID is hidden from the API but must persist.
type pendingRecord struct {
	PendingAction
	SessionID string `json:"sessionId"`
	Sealed    bool   `json:"sealed,omitempty"`
}

// ConfirmationStore holds pending actions until confirmed, cancelled or expired.
// Take removes and returns an entry atomically; of concurrent Takes of one id
// exactly one succeeds.
type ConfirmationStore interface {
	Put(ctx context.Context, p PendingAction, ttl time.Duration) error
	Get(ctx context.Context, id string) (*PendingAction, error)
	Take(ctx context.Context, id string) (*PendingAction, error)
}

// RedisConfirmationStore keeps pending actions under admin:confirm:<id>. With
// a sealer, passwords in the request are stored encrypted.
type RedisConfirmationStore struct {
	client *redis.Client
	sealer *session.Sealer
}

func NewRedisConfirmationStore(client *redis.Client, sealer *session.Sealer) *RedisConfirmationStore {
	return &RedisConfirmationStore{client: client, sealer: sealer}
}

func (s *RedisConfirmationStore) Put(ctx context.Context, p PendingAction, ttl time.Duration) error {
	rec := pendingRecord{PendingAction: p, SessionID: p.SessionID}
	if s.sealer != nil {
		req, err := p.Request.mapSecrets(s.sealer.Seal)
		if err != nil {
			return fmt.Errorf("failed to seal pending action: %w", err)
		}
		rec.Request = req
		rec.Sealed = true
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode pending action: %w", err)
	}
	return s.client.Set(ctx, utils.ConfirmationPrefix+p.ID, data, ttl).Err()
}

func (s *RedisConfirmationStore) Get(ctx context.Context, id string) (*PendingAction, error) {
	return s.decode(s.client.Get(ctx, utils.ConfirmationPrefix+id).Bytes())
}

func (s *RedisConfirmationStore) Take(ctx context.Context, id string) (*PendingAction, error) {
	return s.decode(s.client.GetDel(ctx, utils.ConfirmationPrefix+id).Bytes())
}

func (s *RedisConfirmationStore) decode(data []byte, err error) (*PendingAction, error) {
	if err == redis.Nil {
		return nil, ErrConfirmationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending action: %w", err)
	}
	var rec pendingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode pending action: %w", err)
	}
	p := rec.PendingAction
	p.SessionID = rec.SessionID
	if rec.Sealed {
		if s.sealer == nil {
			return nil, fmt.Errorf("pending action %s is sealed but no sealer is configured", p.ID)
		}
		if p.Request, err = p.Request.mapSecrets(s.sealer.Open); err != nil {
			return nil, fmt.Errorf("failed to open pending action: %w", err)
		}
	}
	return &p, nil
}

// MemoryConfirmationStore is a process-local ConfirmationStore.
type MemoryConfirmationStore struct {
	mu      sync.Mutex
	pending map[string]PendingAction
	now     func() time.Time
}

func NewMemoryConfirmationStore(now func() time.Time) *MemoryConfirmationStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryConfirmationStore{pending: make(map[string]PendingAction), now: now}
}

func (s *MemoryConfirmationStore) Put(_ context.Context, p PendingAction, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.ID] = p
	return nil
}

func (s *MemoryConfirmationStore) Get(_ context.Context, id string) (*PendingAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

func (s *MemoryConfirmationStore) Take(_ context.Context, id string) (*PendingAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(s.pending, id)
	return p, nil
}

// lookup must be called with mu held.
func (s *MemoryConfirmationStore) lookup(id string) (*PendingAction, error) {
	p, ok := s.pending[id]
	if !ok || !s.now().Before(p.ExpiresAt) {
		delete(s.pending, id)
		return nil, ErrConfirmationNotFound
	}
	return &p, nil
}
