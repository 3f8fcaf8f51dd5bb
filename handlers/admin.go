package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"dpiportal/middleware"
	"dpiportal/services/admin"
	"dpiportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates the admin console endpoints.
type AdminHandler struct {
	Service admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (ah *AdminHandler) fail(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, admin.ErrUnknownScreen), errors.Is(err, admin.ErrConfirmationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, admin.ErrUnknownAction), errors.Is(err, admin.ErrInvalidAction):
		status = http.StatusBadRequest
	default:
		if s := admin.StatusOf(err); s >= 400 && s < 500 {
			status = s
		}
	}
	if status >= 500 {
		getLogger(c).Error("Admin request failed", zap.Error(err))
	}
	msg := admin.ExtractErrorMessage(err)
	if errors.Is(err, admin.ErrInvalidAction) {
		msg = err.Error()
	}
	utils.JSONError(c, status, msg, "")
}

// ListUsersHandler returns one page of a console screen.
func (ah *AdminHandler) ListUsersHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	res, err := ah.Service.ListUsers(c.Request.Context(), sess.Token, admin.ListQuery{
		Screen: admin.Screen(c.Param("screen")),
		Role:   c.Query("role"),
		Search: c.Query("q"),
		Page:   page,
	})
	if err != nil {
		ah.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RequestActionHandler parks a mutation until it is confirmed.
func (ah *AdminHandler) RequestActionHandler(c *gin.Context) {
	var req admin.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	pending, err := ah.Service.RequestAction(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		ah.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, pending)
}

// ConfirmActionHandler runs a pending mutation.
func (ah *AdminHandler) ConfirmActionHandler(c *gin.Context) {
	res, err := ah.Service.ConfirmAction(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		ah.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelActionHandler drops a pending mutation.
func (ah *AdminHandler) CancelActionHandler(c *gin.Context) {
	if err := ah.Service.CancelAction(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		ah.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Action cancelled"})
}

// AuditLogHandler lists recorded admin actions, optionally for ?target=<user id>.
func (ah *AdminHandler) AuditLogHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var target *int
	if raw := c.Query("target"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid target", err.Error())
			return
		}
		target = &id
	}

	entries, err := ah.Service.AuditLog(c.Request.Context(), target, limit)
	if err != nil {
		getLogger(c).Error("Failed to fetch audit log", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch audit log", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
