package auditRepo

import (
	"context"
	"sort"
	"sync"

	"dpiportal/models"
)

// MemoryAuditRepo keeps entries in process. Tests use it in place of mongo.
type MemoryAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func NewMemoryAuditRepo() *MemoryAuditRepo {
	return &MemoryAuditRepo{}
}

func (r *MemoryAuditRepo) Create(_ context.Context, entry models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *MemoryAuditRepo) ListRecent(_ context.Context, limit int) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := newestFirst(r.entries)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryAuditRepo) ListByTarget(_ context.Context, targetID int) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.AuditEntry
	for _, e := range r.entries {
		if e.TargetID == targetID {
			matched = append(matched, e)
		}
	}
	return newestFirst(matched), nil
}

func newestFirst(in []models.AuditEntry) []models.AuditEntry {
	out := make([]models.AuditEntry, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
