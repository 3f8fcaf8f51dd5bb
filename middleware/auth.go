package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"dpiportal/models"
	"dpiportal/services/session"
	"dpiportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionKey   = "session"
	SessionIDKey = "sessionID"

	SignInPath    = "/signin"
	DashboardPath = "/dashboard"
	AdminPath     = "/admin"
)

// SessionProvider loads and refreshes portal sessions.
type SessionProvider interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	RefreshProfile(ctx context.Context, sess *models.Session) (*models.Session, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// JWTAuthSessionMiddleware resolves the portal token to its stored session and
// places it in the context under SessionKey.
func JWTAuthSessionMiddleware(sessions SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.JSONRedirect(c, http.StatusUnauthorized, "Missing or invalid Authorization header", SignInPath)
			return
		}

		sid, err := utils.ExtractSessionID(tokenString)
		if err != nil {
			utils.JSONRedirect(c, http.StatusUnauthorized, "Invalid token", SignInPath)
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sid)
		switch {
		case errors.Is(err, session.ErrExpired):
			utils.JSONRedirect(c, http.StatusUnauthorized, "Session expired", SignInPath)
			return
		case errors.Is(err, session.ErrNotFound):
			utils.JSONRedirect(c, http.StatusUnauthorized, "Session not found", SignInPath)
			return
		case err != nil:
			loggerFrom(c).Error("auth: session lookup failed", zap.String("sessionID", sid), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
			return
		}

		c.Set(SessionKey, sess)
		c.Set(SessionIDKey, sess.ID)
		c.Next()
	}
}

// CurrentSession returns the session placed by JWTAuthSessionMiddleware.
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}
