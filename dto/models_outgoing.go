package dto

import "net/http"

// Format describes how the body of a send was serialized.
type Format string

const (
	FormatRaw  Format = ""
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatForm Format = "form"
)

const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// Outgoing is the finalized request handed to a Transport.
type Outgoing struct {
	RequestID string
	URL       string
	Method    string
	// Body nil, string, []byte or io.Reader
	Body    any
	Headers http.Header
	Format  Format
}
