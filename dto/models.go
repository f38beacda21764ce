package dto

import (
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

type RequestStatus string

const (
	PENDING  RequestStatus = "pending"
	COMPLETE RequestStatus = "complete"
	ERROR    RequestStatus = "error"
)

type RequestNotification struct {
	RequestID string `json:"request_id" yaml:"request_id"`
	URL       string `json:"url" yaml:"url"`
	Method    string `json:"method" yaml:"method"`
	// Message caller annotation attached with Descr, rendered as text
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Status  RequestStatus `json:"status" yaml:"status"`
	// StatusCode zero until the transport returned a response
	StatusCode int       `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}

type NetState struct {
	ExtraHeaders     ExtraHeaders  `json:"net_extra_headers,omitempty" yaml:"net_extra_headers,omitempty"`
	RequestTimeout   time.Duration `json:"net_request_timeout,omitempty" yaml:"net_request_timeout,omitempty"`
	UserAgent        string        `json:"net_user_agent,omitempty" yaml:"net_user_agent,omitempty"`
	BlacklistDomains []string      `json:"net_blacklist_domains,omitempty" yaml:"net_blacklist_domains,omitempty"`
	WhitelistDomains []string      `json:"net_whitelist_domains,omitempty" yaml:"net_whitelist_domains,omitempty"`
	// Schemes URL schemes with a registered transport
	Schemes        []string                       `json:"net_schemes,omitempty" yaml:"net_schemes,omitempty"`
	Templates      []string                       `json:"net_templates,omitempty" yaml:"net_templates,omitempty"`
	RequestsStatus map[string]RequestNotification `json:"net_requests_status,omitempty" yaml:"net_requests_status,omitempty"`
}

type Response struct {
	RequestID  string
	StatusCode int
	Headers    http.Header
	// Body raw bytes as returned by the transport
	Body []byte
	// Data parsed JSON document when the content type is JSON and the body
	// parses, otherwise the raw body as a string
	Data any
}

// Header returns the first value for key, case-insensitively.
func (r Response) Header(key string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// IsJSON reports whether the response declares a JSON media type.
func (r Response) IsJSON() bool {
	ct := r.Header("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.Contains(strings.ToLower(ct), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// JSON reads a value from the raw body using a gjson path.
func (r Response) JSON(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}
