package models

// ResponseRecord is the outcome of one dispatched request.
type ResponseRecord struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	// Body is the decoded JSON payload when the response parsed, otherwise the raw text.
	Body       any    `json:"body"`
	RawBody    string `json:"rawBody"`
	DurationMs int64  `json:"duration"`
	Size       int64  `json:"size"`
}
