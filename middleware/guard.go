package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"dpiportal/models"
	"dpiportal/services/access"
	"dpiportal/services/guard"
	"dpiportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type gate func(sess *models.Session, now time.Time) guard.Decision

// enforce runs the rest of the chain when g allows the context session.
func enforce(c *gin.Context, sessions SessionProvider, g gate) {
	if authorize(c, sessions, g) {
		c.Next()
	}
}

// authorize evaluates g against the context session and aborts with the
// mapped response unless it is Allowed. A Pending decision gets one profile
// refresh before the client is told to wait.
func authorize(c *gin.Context, sessions SessionProvider, g gate) bool {
	sess := CurrentSession(c)
	d := g(sess, time.Now())

	if d.State == guard.Pending && sessions != nil {
		refreshed, err := sessions.RefreshProfile(c.Request.Context(), sess)
		if err != nil {
			loggerFrom(c).Warn("guard: profile refresh failed", zap.Error(err))
		} else {
			sess = refreshed
			c.Set(SessionKey, sess)
			d = g(sess, time.Now())
		}
	}

	switch d.State {
	case guard.Allowed:
		return true
	case guard.Pending:
		c.AbortWithStatusJSON(http.StatusAccepted, gin.H{"state": d.State.String()})
	default:
		deny(c, d.Reason)
	}
	return false
}

func deny(c *gin.Context, reason guard.Reason) {
	switch reason {
	case guard.ReasonUnauthenticated:
		utils.JSONRedirect(c, http.StatusUnauthorized, "Authentication required", SignInPath)
	case guard.ReasonExpired:
		utils.JSONRedirect(c, http.StatusUnauthorized, "Session expired", SignInPath)
	case guard.ReasonNotAdmin:
		utils.JSONRedirect(c, http.StatusForbidden, "Admin access required", DashboardPath)
	case guard.ReasonAdminOnly:
		utils.JSONRedirect(c, http.StatusForbidden, "Admin accounts use the admin console", AdminPath)
	case guard.ReasonNoServiceAccess:
		utils.JSONError(c, http.StatusNotFound, "Not found", "")
	default:
		utils.JSONError(c, http.StatusForbidden, "Forbidden", string(reason))
	}
}

// ProtectRoute requires a live session.
func ProtectRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		enforce(c, nil, guard.Protect)
	}
}

// AdminProtectRoute requires an admin profile.
func AdminProtectRoute(sessions SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		enforce(c, sessions, guard.Admin)
	}
}

// ProfileProtectRoute requires a live session whose profile has been fetched.
func ProfileProtectRoute(sessions SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		enforce(c, sessions, guard.Profile)
	}
}

// UserProtectRoute requires a non-admin profile.
func UserProtectRoute(sessions SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		enforce(c, sessions, guard.User)
	}
}

// ServiceFunc picks the service a request touches; "" means no service gate.
type ServiceFunc func(c *gin.Context) string

// StaticService gates every request on one service.
func StaticService(name string) ServiceFunc {
	return func(*gin.Context) string { return name }
}

// ServiceForPath returns the service named by the first segment of p after
// prefix, or "" when that segment is not a known service. p is unescaped and
// cleaned first, so "/bvn/../sms" and "/%73ms" both name sms.
func ServiceForPath(p, prefix string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	p = path.Clean("/" + p)
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		if rest := strings.TrimPrefix(p, "/"+prefix); rest == "" || strings.HasPrefix(rest, "/") {
			p = rest
		}
	}
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	p = strings.ToLower(p)
	for _, s := range access.AllServices {
		if s == p {
			return s
		}
	}
	return ""
}

// ServiceFromPath gates on the service named by the named wildcard param.
func ServiceFromPath(param string) ServiceFunc {
	return func(c *gin.Context) string {
		return ServiceForPath(c.Param(param), "")
	}
}

// RequireService reports whether the context session may use service and
// aborts with the mapped response when it may not. An empty service only
// requires a live session.
func RequireService(c *gin.Context, sessions SessionProvider, resolver *access.Resolver, service string) bool {
	if service == "" {
		return authorize(c, nil, guard.Protect)
	}
	return authorize(c, sessions, func(sess *models.Session, now time.Time) guard.Decision {
		return guard.Service(sess, service, resolver, now)
	})
}

// ServiceProtectRoute requires access to the service chosen by pick.
func ServiceProtectRoute(sessions SessionProvider, resolver *access.Resolver, pick ServiceFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if RequireService(c, sessions, resolver, pick(c)) {
			c.Next()
		}
	}
}
