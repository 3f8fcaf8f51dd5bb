package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpiportal/backend"
	"dpiportal/backend/backendtest"
	"dpiportal/config"
	auditRepo "dpiportal/database/repository/audit"
	"dpiportal/handlers"
	"dpiportal/models"
	"dpiportal/services/access"
	"dpiportal/services/admin"
	"dpiportal/services/composer"
	"dpiportal/services/navigation"
	"dpiportal/services/session"
)

type upstreamCall struct {
	Path          string
	Authorization string
}

type portal struct {
	router *gin.Engine
	fake   *backendtest.Fake

	mu    sync.Mutex
	calls []upstreamCall
}

func (p *portal) lastCall() upstreamCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return upstreamCall{}
	}
	return p.calls[len(p.calls)-1]
}

var profiles = map[string]*models.UserProfile{
	"tech@paystackle.com": {ID: 102, Email: "tech@paystackle.com", Role: models.RoleUser},
	"root@dpi.gov.ng":     {ID: 1, Email: "root@dpi.gov.ng", Role: models.RoleAdmin},
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = config.Config{APIProxyPrefix: "/api/v1", CORSOrigins: "*"}

	p := &portal{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.calls = append(p.calls, upstreamCall{Path: r.URL.Path, Authorization: r.Header.Get("Authorization")})
		p.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(upstream.Close)

	p.fake = &backendtest.Fake{
		SignInFn: func(ctx context.Context, email, password string) (*backend.SignInResult, error) {
			prof, ok := profiles[email]
			if !ok || password != "pw" {
				return nil, &backend.APIError{Status: 401, Message: "Invalid credentials"}
			}
			return &backend.SignInResult{Token: "sandbox-" + email, Profile: prof}, nil
		},
		GetProfileFn: func(ctx context.Context, token string) (*models.UserProfile, error) {
			return profiles[token[len("sandbox-"):]], nil
		},
		ListUsersFn: func(ctx context.Context, token string) ([]models.AdminUser, error) {
			return []models.AdminUser{
				{ID: 5, Email: "a@x.ng", IsActive: true, Role: models.RoleUser},
				{ID: 6, Email: "b@x.ng", IsActive: false, Role: models.RoleUser},
			}, nil
		},
	}

	sessions := &session.Manager{Store: session.NewMemoryStore(), Backend: p.fake, TTL: time.Hour}
	adminSvc := &admin.DefaultAdminService{
		Backend:       p.fake,
		Cache:         admin.NewMemoryListCache(0, nil),
		Confirmations: admin.NewMemoryConfirmationStore(nil),
		Audit:         auditRepo.NewMemoryAuditRepo(),
	}
	proxy, err := handlers.NewProxyHandler(upstream.URL)
	require.NoError(t, err)

	hb := &handlers.HandlerBundle{
		Sessions:   sessions,
		Access:     access.Default,
		Auth:       handlers.NewAuthHandler(sessions),
		Catalog:    handlers.NewCatalogHandler(access.Default, navigation.Default),
		Playground: handlers.NewPlaygroundHandler(composer.New(upstream.URL, nil), sessions, access.Default, "/api/v1"),
		Admin:      handlers.NewAdminHandler(adminSvc),
		Proxy:      proxy,
	}
	p.router = gin.New()
	RegisterRoutes(p.router, hb)
	return p
}

func (p *portal) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	p.router.ServeHTTP(w, req)
	return w
}

func (p *portal) signIn(t *testing.T, email string) string {
	t.Helper()
	w := p.do(t, http.MethodPost, "/portal/auth/signin", "", gin.H{"email": email, "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res session.SignInResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSignInAndProfile(t *testing.T) {
	p := newPortal(t)

	w := p.do(t, http.MethodPost, "/portal/auth/signin", "", gin.H{"email": "tech@paystackle.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	token := p.signIn(t, "tech@paystackle.com")
	w = p.do(t, http.MethodGet, "/portal/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 102, decode[models.UserProfile](t, w).ID)

	w = p.do(t, http.MethodPost, "/portal/auth/signout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = p.do(t, http.MethodGet, "/portal/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartupAndAccess(t *testing.T) {
	p := newPortal(t)
	token := p.signIn(t, "tech@paystackle.com")

	w := p.do(t, http.MethodGet, "/portal/startups/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Paystackle")

	w = p.do(t, http.MethodGet, "/portal/access", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[struct {
		AllowedServices []string `json:"allowedServices"`
	}](t, w)
	assert.Equal(t, []string{"bvn", "nin"}, res.AllowedServices)

	w = p.do(t, http.MethodGet, "/portal/access/SMS", token, nil)
	assert.JSONEq(t, `{"service":"sms","allowed":false}`, w.Body.String())
}

func TestAccessRefreshesMissingProfile(t *testing.T) {
	p := newPortal(t)
	p.fake.SignInFn = func(ctx context.Context, email, password string) (*backend.SignInResult, error) {
		return &backend.SignInResult{Token: "sandbox-" + email}, nil
	}
	fetches := 0
	p.fake.GetProfileFn = func(ctx context.Context, token string) (*models.UserProfile, error) {
		fetches++
		if fetches == 1 {
			return nil, errors.New("profile service down")
		}
		return profiles["tech@paystackle.com"], nil
	}
	token := p.signIn(t, "tech@paystackle.com")
	require.Equal(t, 1, fetches)

	w := p.do(t, http.MethodGet, "/portal/access/bvn", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"service":"bvn","allowed":true}`, w.Body.String())
	assert.Equal(t, 2, fetches)

	w = p.do(t, http.MethodGet, "/portal/access", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, fetches, "the refreshed profile was stored")
}

func TestAdminAccountKeptOutOfDashboard(t *testing.T) {
	p := newPortal(t)
	token := p.signIn(t, "root@dpi.gov.ng")

	w := p.do(t, http.MethodGet, "/portal/startups/me", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/admin"`)
}

func TestNavigation(t *testing.T) {
	p := newPortal(t)

	w := p.do(t, http.MethodGet, "/portal/navigation?path=/docs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	nav := decode[navigation.Navigation](t, w)
	assert.Nil(t, nav.Previous)
	require.NotNil(t, nav.Next)
	assert.Equal(t, "/docs/authentication", nav.Next.Path)

	token := p.signIn(t, "tech@paystackle.com")
	w = p.do(t, http.MethodGet, "/portal/navigation/accessible?path=/docs/nin/face-match", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	nav = decode[navigation.Navigation](t, w)
	require.NotNil(t, nav.Previous)
	require.NotNil(t, nav.Next)
	assert.Equal(t, "/docs/nin/lookup", nav.Previous.Path)
	assert.Equal(t, "/docs/changelog", nav.Next.Path, "services outside the rule are skipped")
}

func TestPlaygroundSend(t *testing.T) {
	p := newPortal(t)

	w := p.do(t, http.MethodPost, "/portal/playground/params", "", gin.H{"path": "/api/v1/bvn/status/{bvn}"})
	assert.JSONEq(t, `{"params":["bvn"]}`, w.Body.String())

	draft := models.RequestDraft{
		Method:     http.MethodGet,
		Path:       "/api/v1/bvn/status/{bvn}",
		PathParams: map[string]string{"bvn": "22212345678"},
	}
	w = p.do(t, http.MethodPost, "/portal/playground/send", "", draft)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := p.signIn(t, "tech@paystackle.com")
	w = p.do(t, http.MethodPost, "/portal/playground/send", token, draft)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec := decode[models.ResponseRecord](t, w)
	assert.Equal(t, 200, rec.Status)

	call := p.lastCall()
	assert.Equal(t, "/api/v1/bvn/status/22212345678", call.Path)
	assert.Equal(t, "Bearer sandbox-tech@paystackle.com", call.Authorization)

	w = p.do(t, http.MethodPost, "/portal/playground/download", "", rec)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "response-200-")
}

func TestPlaygroundSendRespectsServiceAccess(t *testing.T) {
	p := newPortal(t)
	// 102 may use bvn and nin only.
	token := p.signIn(t, "tech@paystackle.com")

	drafts := []models.RequestDraft{
		{Method: http.MethodPost, Path: "/api/v1/sms/send", Body: `{"to":"+234"}`},
		{Method: http.MethodPost, Path: "/api/v1/{service}/send", PathParams: map[string]string{"service": "sms"}},
		{Method: http.MethodPost, Path: "/api/v1/bvn/../sms/send"},
		{Method: http.MethodGet, Path: "/maps/geocode"},
	}
	for _, draft := range drafts {
		w := p.do(t, http.MethodPost, "/portal/playground/send", token, draft)
		assert.Equal(t, http.StatusNotFound, w.Code, draft.Path)
	}
	assert.Empty(t, p.lastCall().Path, "denied drafts never reach the sandbox")

	w := p.do(t, http.MethodPost, "/portal/playground/send", token, models.RequestDraft{Method: http.MethodGet, Path: "/api/v1/auth/me"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "/api/v1/auth/me", p.lastCall().Path)
}

func TestProxyInjectsSandboxToken(t *testing.T) {
	p := newPortal(t)
	token := p.signIn(t, "tech@paystackle.com")

	w := p.do(t, http.MethodGet, "/api/v1/nin/lookup?nin=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	call := p.lastCall()
	assert.Equal(t, "/api/v1/nin/lookup", call.Path)
	assert.Equal(t, "Bearer sandbox-tech@paystackle.com", call.Authorization)

	w = p.do(t, http.MethodPost, "/api/v1/sms/send", token, gin.H{"to": "+234"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminConsoleFlow(t *testing.T) {
	p := newPortal(t)

	userToken := p.signIn(t, "tech@paystackle.com")
	w := p.do(t, http.MethodGet, "/portal/admin/users/active-users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	token := p.signIn(t, "root@dpi.gov.ng")
	w = p.do(t, http.MethodGet, "/portal/admin/users/deactivated-users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[admin.Page](t, w)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 6, page.Items[0].ID)

	w = p.do(t, http.MethodGet, "/portal/admin/users/active-users?page=4611686018427387904", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode[admin.Page](t, w).Items)

	w = p.do(t, http.MethodGet, "/portal/admin/users/everyone", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	activated := 0
	p.fake.ActivateUserFn = func(ctx context.Context, token string, id int) error {
		activated = id
		return nil
	}
	w = p.do(t, http.MethodPost, "/portal/admin/actions", token, admin.ActionRequest{Action: admin.ActionActivate, UserID: 6})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	pending := decode[admin.PendingAction](t, w)
	assert.Zero(t, activated)

	w = p.do(t, http.MethodPost, "/portal/admin/actions/"+pending.ID+"/confirm", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 6, activated)

	w = p.do(t, http.MethodPost, "/portal/admin/actions", token, admin.ActionRequest{Action: admin.ActionResetPassword, UserID: 5, Password: "S3cret!"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "S3cret!")
	assert.NotContains(t, w.Body.String(), "password")

	w = p.do(t, http.MethodPost, "/portal/admin/actions/"+pending.ID+"/confirm", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = p.do(t, http.MethodGet, "/portal/admin/audit?target=6", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"activate"`)
}

func TestHealth(t *testing.T) {
	p := newPortal(t)
	w := p.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status"`)
}

func TestCORSOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, corsOrigins(""))
	assert.Equal(t, []string{"https://a.ng", "https://b.ng"}, corsOrigins(" https://a.ng, https://b.ng ,"))
}
