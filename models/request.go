package models

const (
	ContentTypeJSON       = "application/json"
	ContentTypeURLEncoded = "application/x-www-form-urlencoded"
	ContentTypeMultipart  = "multipart/form-data"

	FieldTypeText = "text"
	FieldTypeFile = "file"
)

// Header is one user-edited request header row.
type Header struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// KeyValue is a query parameter row.
type KeyValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// FormField is a structured body field. File fields carry base64 content in Value.
type FormField struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Type     string `json:"type"`
	FileName string `json:"fileName,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// RequestDraft is the "try it" request as edited by the user.
type RequestDraft struct {
	Method      string            `json:"method" binding:"required"`
	Path        string            `json:"path" binding:"required"`
	PathParams  map[string]string `json:"pathParams"`
	QueryParams []KeyValue        `json:"queryParams"`
	Headers     []Header          `json:"headers"`
	ContentType string            `json:"contentType"`
	Body        string            `json:"body"`
	FormFields  []FormField       `json:"formFields"`
}
