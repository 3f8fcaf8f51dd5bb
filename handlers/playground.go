package handlers

import (
	"errors"
	"net/http"
	"time"

	"dpiportal/middleware"
	"dpiportal/models"
	"dpiportal/services/access"
	"dpiportal/services/composer"
	"dpiportal/services/viewer"
	"dpiportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlaygroundHandler backs the interactive API console. Sends are gated on the
// service named by the draft path, the same way the proxy gates its paths.
type PlaygroundHandler struct {
	Composer *composer.Composer
	Sessions middleware.SessionProvider
	Access   *access.Resolver
	// Prefix is the sandbox API prefix draft paths may start with.
	Prefix string
	Now    func() time.Time
}

func NewPlaygroundHandler(c *composer.Composer, sessions middleware.SessionProvider, resolver *access.Resolver, prefix string) *PlaygroundHandler {
	return &PlaygroundHandler{Composer: c, Sessions: sessions, Access: resolver, Prefix: prefix, Now: time.Now}
}

// ParamsHandler lists the {placeholders} of a path template.
func (h *PlaygroundHandler) ParamsHandler(c *gin.Context) {
	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"params": composer.ExtractPathParams(req.Path)})
}

// SendHandler dispatches a draft with the session's sandbox token. The
// upstream outcome, network errors included, is always a 200 carrying the
// record.
func (h *PlaygroundHandler) SendHandler(c *gin.Context) {
	logger := getLogger(c)

	var draft models.RequestDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	target := composer.SubstitutePath(draft.Path, draft.PathParams)
	if !middleware.RequireService(c, h.Sessions, h.Access, middleware.ServiceForPath(target, h.Prefix)) {
		return
	}

	token := ""
	if sess := middleware.CurrentSession(c); sess != nil {
		token = sess.Token
	}

	rec, err := h.Composer.Send(c.Request.Context(), draft, token)
	if err != nil {
		if errors.Is(err, composer.ErrInvalidDraft) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request draft", err.Error())
			return
		}
		logger.Error("Playground send failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to send request", "")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// RenderHandler formats a response record for display.
func (h *PlaygroundHandler) RenderHandler(c *gin.Context) {
	var rec models.ResponseRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	c.JSON(http.StatusOK, viewer.Render(rec))
}

// DownloadHandler returns a response record as a file attachment.
func (h *PlaygroundHandler) DownloadHandler(c *gin.Context) {
	var rec models.ResponseRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	name, contentType, data := viewer.Attachment(rec, now())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}
