package composer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"dpiportal/models"
)

func carriesBody(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead:
		return false
	}
	return true
}

// BuildBody encodes the draft body for its declared content type. It returns
// a nil reader for GET and HEAD, and for drafts with nothing to send.
func BuildBody(draft models.RequestDraft) (io.Reader, string, error) {
	if !carriesBody(draft.Method) {
		return nil, "", nil
	}

	switch mediaType(draft.ContentType) {
	case models.ContentTypeURLEncoded:
		form := url.Values{}
		for _, f := range draft.FormFields {
			if f.Enabled && f.Key != "" && f.Type != models.FieldTypeFile {
				form.Add(f.Key, f.Value)
			}
		}
		return strings.NewReader(form.Encode()), models.ContentTypeURLEncoded, nil

	case models.ContentTypeMultipart:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, f := range draft.FormFields {
			if !f.Enabled || f.Key == "" {
				continue
			}
			if f.Type == models.FieldTypeFile {
				data, err := base64.StdEncoding.DecodeString(f.Value)
				if err != nil {
					return nil, "", fmt.Errorf("%w: file field %q is not base64", ErrInvalidDraft, f.Key)
				}
				name := f.FileName
				if name == "" {
					name = f.Key
				}
				part, err := w.CreateFormFile(f.Key, name)
				if err != nil {
					return nil, "", fmt.Errorf("create form file: %w", err)
				}
				if _, err := part.Write(data); err != nil {
					return nil, "", fmt.Errorf("write form file: %w", err)
				}
				continue
			}
			if err := w.WriteField(f.Key, f.Value); err != nil {
				return nil, "", fmt.Errorf("write form field: %w", err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("close multipart body: %w", err)
		}
		return &buf, w.FormDataContentType(), nil

	default:
		if draft.Body == "" {
			return nil, "", nil
		}
		ct := draft.ContentType
		if ct == "" {
			ct = models.ContentTypeJSON
		}
		return strings.NewReader(draft.Body), ct, nil
	}
}

func mediaType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
