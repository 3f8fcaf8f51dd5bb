// Package composer turns a user-edited request draft into one outbound call
// against the sandbox API and records what came back.
package composer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dpiportal/models"

	"go.uber.org/zap"
)

// ErrInvalidDraft marks drafts that cannot be turned into a request.
var ErrInvalidDraft = errors.New("invalid request draft")

const networkErrorText = "Network Error"

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Composer dispatches drafts against BaseURL. There is no retry and no client
// timeout; only the caller's context can cancel a call.
type Composer struct {
	BaseURL string
	Client  Doer
	Logger  *zap.Logger
	Now     func() time.Time
}

// New returns a Composer using a plain http.Client.
func New(baseURL string, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{BaseURL: baseURL, Client: &http.Client{}, Logger: logger, Now: time.Now}
}

// Build assembles the outbound request without sending it.
func (c *Composer) Build(ctx context.Context, draft models.RequestDraft, token string) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(draft.Method))
	if method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrInvalidDraft)
	}
	draft.Method = method

	target := BuildURL(c.BaseURL, SubstitutePath(draft.Path, draft.PathParams), draft.QueryParams)

	body, contentType, err := BuildBody(draft)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	applyHeaders(req, BuildHeaders(token, draft.Headers))
	if contentType != "" {
		// multipart needs its boundary, so a user Content-Type never wins there
		if req.Header.Get("Content-Type") == "" || mediaType(contentType) == models.ContentTypeMultipart {
			req.Header.Set("Content-Type", contentType)
		}
	}
	return req, nil
}

// Send builds and dispatches draft. Transport failures are returned as a
// status-0 "Network Error" record; the error is non-nil only for drafts that
// cannot be built.
func (c *Composer) Send(ctx context.Context, draft models.RequestDraft, token string) (models.ResponseRecord, error) {
	req, err := c.Build(ctx, draft, token)
	if err != nil {
		return models.ResponseRecord{}, err
	}

	now := c.now
	start := now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger().Warn("composer: request failed",
			zap.String("method", req.Method), zap.String("url", req.URL.String()), zap.Error(err))
		return NetworkErrorRecord(err, now().Sub(start)), nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := now().Sub(start)
	if err != nil {
		c.logger().Warn("composer: reading response failed", zap.String("url", req.URL.String()), zap.Error(err))
		return NetworkErrorRecord(err, elapsed), nil
	}

	c.logger().Debug("composer: request completed",
		zap.String("method", req.Method), zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode), zap.Duration("elapsed", elapsed))
	return record(resp, raw, elapsed), nil
}

func (c *Composer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Composer) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// NetworkErrorRecord is the synthetic response for a call that never got an
// HTTP reply.
func NetworkErrorRecord(err error, elapsed time.Duration) models.ResponseRecord {
	msg := networkErrorText
	if err != nil {
		msg = err.Error()
	}
	body := map[string]any{"error": networkErrorText, "message": msg}
	raw, _ := json.Marshal(body)
	return models.ResponseRecord{
		Status:     0,
		StatusText: networkErrorText,
		Headers:    map[string]string{},
		Body:       body,
		RawBody:    string(raw),
		DurationMs: elapsed.Milliseconds(),
		Size:       int64(len(raw)),
	}
}

func record(resp *http.Response, raw []byte, elapsed time.Duration) models.ResponseRecord {
	headers := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		headers[strings.ToLower(k)] = strings.Join(v, ", ")
	}

	var body any = string(raw)
	if len(raw) > 0 {
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err == nil {
			body = parsed
		}
	}

	return models.ResponseRecord{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Headers:    headers,
		Body:       body,
		RawBody:    string(raw),
		DurationMs: elapsed.Milliseconds(),
		Size:       int64(len(raw)),
	}
}

func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
