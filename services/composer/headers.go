package composer

import (
	"net/http"
	"strings"

	"dpiportal/models"
)

// BuildHeaders puts the session bearer token first, then the enabled user
// headers. A user header replaces an earlier header with the same name.
func BuildHeaders(token string, headers []models.Header) []models.Header {
	out := make([]models.Header, 0, len(headers)+1)
	if token != "" {
		out = append(out, models.Header{Key: "Authorization", Value: "Bearer " + token, Enabled: true})
	}
	for _, h := range headers {
		key := strings.TrimSpace(h.Key)
		if !h.Enabled || key == "" {
			continue
		}
		replaced := false
		for i := range out {
			if strings.EqualFold(out[i].Key, key) {
				out[i] = models.Header{Key: key, Value: h.Value, Enabled: true}
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, models.Header{Key: key, Value: h.Value, Enabled: true})
		}
	}
	return out
}

func applyHeaders(req *http.Request, headers []models.Header) {
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}
}
