package handlers

import (
	"context"
	"errors"
	"net/http"

	"dpiportal/backend"
	"dpiportal/middleware"
	"dpiportal/models"
	"dpiportal/services/session"
	"dpiportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionService is the part of session.Manager the auth endpoints use.
type SessionService interface {
	SignIn(ctx context.Context, email, password string) (*session.SignInResponse, error)
	RefreshProfile(ctx context.Context, sess *models.Session) (*models.Session, error)
	Destroy(ctx context.Context, id string) error
}

// AuthHandler serves sign-in, sign-out and the current profile.
type AuthHandler struct {
	Sessions SessionService
}

func NewAuthHandler(sessions SessionService) *AuthHandler {
	return &AuthHandler{Sessions: sessions}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInHandler exchanges sandbox credentials for a portal token.
func (h *AuthHandler) SignInHandler(c *gin.Context) {
	logger := getLogger(c)

	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	res, err := h.Sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			msg := apiErr.Message
			if msg == "" {
				msg = "Invalid email or password"
			}
			utils.JSONError(c, http.StatusUnauthorized, msg, "")
			return
		}
		logger.Error("Sign-in failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Sign-in is unavailable. Please try again.", "")
		return
	}
	c.JSON(http.StatusOK, res)
}

// SignOutHandler destroys the current session.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.Sessions.Destroy(c.Request.Context(), sess.ID); err != nil {
		getLogger(c).Error("Sign-out failed", zap.String("sessionID", sess.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to sign out", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out", "redirect": middleware.SignInPath})
}

// MeHandler re-fetches the profile. When the sandbox is unreachable the
// profile stored with the session is returned instead.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	refreshed, err := h.Sessions.RefreshProfile(c.Request.Context(), sess)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, refreshed.Profile)
	case errors.Is(err, session.ErrExpired):
		utils.JSONRedirect(c, http.StatusUnauthorized, "Session expired", middleware.SignInPath)
	case sess.Profile != nil:
		getLogger(c).Warn("Profile refresh failed, serving stored profile", zap.Error(err))
		c.JSON(http.StatusOK, sess.Profile)
	default:
		getLogger(c).Error("Profile fetch failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to load profile", "")
	}
}
