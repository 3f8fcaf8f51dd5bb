package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dpiportal/models"
)

var now = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func session(profile *models.UserProfile) *models.Session {
	return &models.Session{ID: "s", Token: "tok", Profile: profile, ExpiresAt: now.Add(time.Hour)}
}

func TestProtect(t *testing.T) {
	assert.Equal(t, Decision{State: Denied, Reason: ReasonUnauthenticated}, Protect(nil, now))
	assert.Equal(t, Decision{State: Denied, Reason: ReasonUnauthenticated}, Protect(&models.Session{}, now))

	expired := session(nil)
	expired.ExpiresAt = now.Add(-time.Second)
	assert.Equal(t, Decision{State: Denied, Reason: ReasonExpired}, Protect(expired, now))

	assert.True(t, Protect(session(nil), now).Allowed())
}

func TestAdmin(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.UserProfile
		want    Decision
	}{
		{"profile not loaded", nil, Decision{State: Pending}},
		{"plain user", &models.UserProfile{ID: 1, Role: models.RoleUser}, Decision{State: Denied, Reason: ReasonNotAdmin}},
		{"admin", &models.UserProfile{ID: 1, Role: models.RoleAdmin}, Decision{State: Allowed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admin(session(tt.profile), now))
		})
	}
}

func TestUser(t *testing.T) {
	assert.Equal(t, Decision{State: Denied, Reason: ReasonAdminOnly},
		User(session(&models.UserProfile{Role: models.RoleAdmin}), now))
	assert.True(t, User(session(&models.UserProfile{Role: models.RoleUser}), now).Allowed())
}

func TestService(t *testing.T) {
	paystackle := &models.UserProfile{ID: 102, Email: "tech@paystackle.com", Role: models.RoleUser}
	assert.True(t, Service(session(paystackle), "bvn", nil, now).Allowed())
	assert.Equal(t, Decision{State: Denied, Reason: ReasonNoServiceAccess}, Service(session(paystackle), "maps", nil, now))
	assert.Equal(t, Decision{State: Pending}, Service(session(nil), "maps", nil, now))
	assert.Equal(t, Decision{State: Denied, Reason: ReasonUnauthenticated}, Service(nil, "maps", nil, now))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "allowed", Allowed.String())
	assert.Equal(t, "denied", Denied.String())
}

func TestProfile(t *testing.T) {
	assert.Equal(t, Decision{State: Denied, Reason: ReasonUnauthenticated}, Profile(nil, now))
	assert.Equal(t, Decision{State: Pending}, Profile(session(nil), now))
	assert.True(t, Profile(session(&models.UserProfile{ID: 1, Role: models.RoleAdmin}), now).Allowed())
}
