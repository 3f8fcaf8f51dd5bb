package composer

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpiportal/models"
)

type captured struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
	form   map[string][]string
	files  map[string]string
}

func newServer(t *testing.T, status int, reply string, contentType string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.header = r.Header.Clone()
		if strings.HasPrefix(r.Header.Get("Content-Type"), models.ContentTypeMultipart) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			got.form = r.MultipartForm.Value
			got.files = map[string]string{}
			for key, fhs := range r.MultipartForm.File {
				f, err := fhs[0].Open()
				require.NoError(t, err)
				data, _ := io.ReadAll(f)
				got.files[key] = fhs[0].Filename + ":" + string(data)
			}
		} else {
			data, _ := io.ReadAll(r.Body)
			got.body = string(data)
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestExtractPathParams(t *testing.T) {
	assert.Equal(t, []string{"bvn"}, ExtractPathParams("/api/v1/bvn/status/{bvn}"))
	assert.Equal(t, []string{"id", "kind"}, ExtractPathParams("/a/{id}/b/{kind}/c/{id}"))
	assert.Empty(t, ExtractPathParams("/api/v1/sms/send"))
}

func TestSubstitutePath(t *testing.T) {
	assert.Equal(t, "/api/v1/bvn/status/12345678901",
		SubstitutePath("/api/v1/bvn/status/{bvn}", map[string]string{"bvn": "12345678901"}))
	// literal, no encoding
	assert.Equal(t, "/x/a b", SubstitutePath("/x/{v}", map[string]string{"v": "a b"}))
	// unsupplied placeholders stay
	assert.Equal(t, "/x/{v}", SubstitutePath("/x/{v}", nil))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "http://h/api/v1/x", BuildURL("http://h/", "/api/v1/x", nil))
	assert.Equal(t, "http://h/x?a=1&b=two+words", BuildURL("http://h", "x", []models.KeyValue{
		{Key: "a", Value: "1", Enabled: true},
		{Key: "b", Value: "two words", Enabled: true},
		{Key: "c", Value: "off", Enabled: false},
	}))
	assert.Equal(t, "http://h/x?z=1&a=1", BuildURL("http://h", "/x?z=1", []models.KeyValue{{Key: "a", Value: "1", Enabled: true}}))
}

func TestBuildHeaders(t *testing.T) {
	got := BuildHeaders("tok", []models.Header{
		{Key: "X-Trace", Value: "1", Enabled: true},
		{Key: "X-Off", Value: "1", Enabled: false},
		{Key: " ", Value: "blank", Enabled: true},
	})
	require.Len(t, got, 2)
	assert.Equal(t, models.Header{Key: "Authorization", Value: "Bearer tok", Enabled: true}, got[0])
	assert.Equal(t, "X-Trace", got[1].Key)

	assert.Empty(t, BuildHeaders("", nil))

	override := BuildHeaders("tok", []models.Header{{Key: "authorization", Value: "Basic abc", Enabled: true}})
	require.Len(t, override, 1)
	assert.Equal(t, "Basic abc", override[0].Value)
}

func TestSendSubstitutesPathAndInjectsToken(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"status":"verified"}`, "application/json")
	c := New(srv.URL, nil)

	rec, err := c.Send(context.Background(), models.RequestDraft{
		Method:     "get",
		Path:       "/api/v1/bvn/status/{bvn}",
		PathParams: map[string]string{"bvn": "12345678901"},
		Body:       `{"ignored":true}`,
		Headers:    []models.Header{{Key: "X-Client", Value: "portal", Enabled: true}},
	}, "session-token")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.True(t, strings.HasSuffix(got.path, "/api/v1/bvn/status/12345678901"))
	assert.Equal(t, "Bearer session-token", got.header.Get("Authorization"))
	assert.Equal(t, "portal", got.header.Get("X-Client"))
	assert.Empty(t, got.body, "GET never carries a body")

	assert.Equal(t, 200, rec.Status)
	assert.Equal(t, "OK", rec.StatusText)
	assert.Equal(t, map[string]any{"status": "verified"}, rec.Body)
	assert.Equal(t, int64(len(`{"status":"verified"}`)), rec.Size)
	assert.Equal(t, "application/json", rec.Headers["content-type"])
}

func TestSendWithoutTokenOmitsAuthorization(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "ok", "")
	_, err := New(srv.URL, nil).Send(context.Background(), models.RequestDraft{Method: "GET", Path: "/ping"}, "")
	require.NoError(t, err)
	assert.Empty(t, got.header.Get("Authorization"))
}

func TestSendJSONPassthrough(t *testing.T) {
	srv, got := newServer(t, http.StatusCreated, "created", "text/plain")
	raw := `{"to":"+2348012345678", "message":"hi"}`

	rec, err := New(srv.URL, nil).Send(context.Background(), models.RequestDraft{
		Method:      "POST",
		Path:        "/api/v1/sms/send",
		ContentType: models.ContentTypeJSON,
		Body:        raw,
	}, "t")
	require.NoError(t, err)

	assert.Equal(t, raw, got.body)
	assert.Equal(t, models.ContentTypeJSON, got.header.Get("Content-Type"))
	assert.Equal(t, "created", rec.Body)
	assert.Equal(t, "Created", rec.StatusText)
}

func TestSendURLEncoded(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "{}", "")
	_, err := New(srv.URL, nil).Send(context.Background(), models.RequestDraft{
		Method:      "POST",
		Path:        "/form",
		ContentType: models.ContentTypeURLEncoded,
		FormFields: []models.FormField{
			{Key: "a", Value: "1", Type: models.FieldTypeText, Enabled: true},
			{Key: "b", Value: "x y", Type: models.FieldTypeText, Enabled: true},
			{Key: "c", Value: "skip", Type: models.FieldTypeText, Enabled: false},
		},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=x+y", got.body)
	assert.Equal(t, models.ContentTypeURLEncoded, got.header.Get("Content-Type"))
}

func TestSendMultipart(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "{}", "")
	_, err := New(srv.URL, nil).Send(context.Background(), models.RequestDraft{
		Method:      "POST",
		Path:        "/api/v1/nin/face-match",
		ContentType: models.ContentTypeMultipart,
		Headers:     []models.Header{{Key: "Content-Type", Value: "multipart/form-data", Enabled: true}},
		FormFields: []models.FormField{
			{Key: "nin", Value: "11111111111", Type: models.FieldTypeText, Enabled: true},
			{Key: "photo", Value: base64.StdEncoding.EncodeToString([]byte("JPEG")), Type: models.FieldTypeFile, FileName: "face.jpg", Enabled: true},
		},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"11111111111"}, got.form["nin"])
	assert.Equal(t, "face.jpg:JPEG", got.files["photo"])
}

func TestSendRejectsBadFileField(t *testing.T) {
	_, err := New("http://127.0.0.1:1", nil).Send(context.Background(), models.RequestDraft{
		Method:      "POST",
		Path:        "/x",
		ContentType: models.ContentTypeMultipart,
		FormFields:  []models.FormField{{Key: "f", Value: "%%%", Type: models.FieldTypeFile, Enabled: true}},
	}, "")
	assert.True(t, errors.Is(err, ErrInvalidDraft))
}

func TestSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rec, err := New(base, nil).Send(context.Background(), models.RequestDraft{Method: "GET", Path: "/x"}, "t")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Status)
	assert.Equal(t, "Network Error", rec.StatusText)
	assert.NotEmpty(t, rec.RawBody)
}

func TestSendPassesBackendErrorsThrough(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnprocessableEntity, `{"message":"bvn must be 11 digits"}`, "application/json")
	rec, err := New(srv.URL, nil).Send(context.Background(), models.RequestDraft{Method: "POST", Path: "/x", Body: "{}"}, "")
	require.NoError(t, err)
	assert.Equal(t, 422, rec.Status)
	assert.Equal(t, map[string]any{"message": "bvn must be 11 digits"}, rec.Body)
}

func TestSendRequiresMethod(t *testing.T) {
	_, err := New("http://h", nil).Send(context.Background(), models.RequestDraft{Path: "/x"}, "")
	assert.ErrorIs(t, err, ErrInvalidDraft)
}
