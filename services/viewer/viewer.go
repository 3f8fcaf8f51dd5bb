// Package viewer turns a ResponseRecord into what the response panel shows.
package viewer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"mime"
	"strconv"
	"strings"
	"time"

	"dpiportal/models"
)

// Status classes.
const (
	ClassSuccess      = "success"
	ClassRedirect     = "redirect"
	ClassClientError  = "client-error"
	ClassServerError  = "server-error"
	ClassNetworkError = "network-error"
)

var units = []string{"B", "KB", "MB", "GB"}

// View is the rendered response panel.
type View struct {
	Status      int               `json:"status"`
	StatusText  string            `json:"statusText"`
	StatusClass string            `json:"statusClass"`
	Headers     map[string]string `json:"headers"`
	Size        string            `json:"size"`
	Duration    string            `json:"duration"`
	Body        string            `json:"body"`
	IsJSON      bool              `json:"isJson"`
}

// StatusClass maps a status code to its colour class.
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ClassSuccess
	case status >= 300 && status < 400:
		return ClassRedirect
	case status >= 400 && status < 500:
		return ClassClientError
	case status >= 500 && status < 600:
		return ClassServerError
	}
	return ClassNetworkError
}

// FormatBytes renders n in base-1024 units with at most two decimals.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	v, i := float64(n), 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}

// FormatDuration renders milliseconds the way the panel shows them.
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}
	return fmt.Sprintf("%.2f s", (time.Duration(ms) * time.Millisecond).Seconds())
}

// Render builds the panel for rec. Body is the copy-to-clipboard text:
// indented JSON when the payload is JSON, the raw text otherwise.
func Render(rec models.ResponseRecord) View {
	body, isJSON := prettyBody(rec)
	headers := rec.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	return View{
		Status:      rec.Status,
		StatusText:  rec.StatusText,
		StatusClass: StatusClass(rec.Status),
		Headers:     headers,
		Size:        FormatBytes(rec.Size),
		Duration:    FormatDuration(rec.DurationMs),
		Body:        body,
		IsJSON:      isJSON,
	}
}

func prettyBody(rec models.ResponseRecord) (string, bool) {
	switch b := rec.Body.(type) {
	case nil:
		return rec.RawBody, false
	case string:
		if rec.RawBody != "" {
			var out bytes.Buffer
			if json.Indent(&out, []byte(rec.RawBody), "", "  ") == nil {
				return out.String(), true
			}
			return rec.RawBody, false
		}
		return b, false
	default:
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return rec.RawBody, false
		}
		return string(data), true
	}
}

// Attachment is the download payload for rec: file name, MIME type and bytes.
func Attachment(rec models.ResponseRecord, now time.Time) (string, string, []byte) {
	body, isJSON := prettyBody(rec)
	ext, ct := ".txt", "text/plain; charset=utf-8"
	if isJSON {
		ext, ct = ".json", "application/json"
	} else if declared := rec.Headers["content-type"]; declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			ct = declared
			if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
				ext = exts[0]
			}
			if strings.HasPrefix(mt, "text/plain") {
				ext = ".txt"
			}
		}
	}
	name := fmt.Sprintf("response-%d-%s%s", rec.Status, now.UTC().Format("20060102-150405"), ext)
	return name, ct, []byte(body)
}
