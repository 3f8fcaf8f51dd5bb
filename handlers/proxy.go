package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"

	"dpiportal/middleware"
	"dpiportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProxyHandler forwards {prefix}/* to the sandbox API with the session's
// sandbox token in place of the portal token.
type ProxyHandler struct {
	proxy *httputil.ReverseProxy
}

func NewProxyHandler(apiURL string) (*ProxyHandler, error) {
	target, err := url.Parse(apiURL)
	if err != nil {
		return nil, err
	}
	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.Host = target.Host
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			utils.GetLogger().Warn("proxy: upstream request failed", zap.String("path", r.URL.Path), zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(utils.ErrorResponse{Message: "The sandbox API is unavailable"})
		},
	}
	return &ProxyHandler{proxy: proxy}, nil
}

// Handle serves one proxied request.
func (h *ProxyHandler) Handle(c *gin.Context) {
	c.Request.Header.Del("Authorization")
	if sess := middleware.CurrentSession(c); sess != nil && sess.Token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	h.proxy.ServeHTTP(c.Writer, c.Request)
}
