package httpclient

import (
	"net/http"

	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/utils"
)

// HTTPRequest is per-attempt mutable state handed to middleware.
type HTTPRequest struct {
	RequestID string
	Method    string
	URL       string
	Format    dto.Format
	Headers   http.Header
	// Finalized wire body (deterministic for tests and retries)
	BodyBytes []byte
}

func newHTTPRequest(out *dto.Outgoing) (*HTTPRequest, error) {
	body, err := utils.PrepareBody(out.Body)
	if err != nil {
		return nil, err
	}
	method := out.Method
	if method == "" {
		method = http.MethodGet
	}
	headers := out.Headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	return &HTTPRequest{
		RequestID: out.RequestID,
		Method:    method,
		URL:       out.URL,
		Format:    out.Format,
		Headers:   headers,
		BodyBytes: body,
	}, nil
}

// clone copies headers so middleware on one attempt cannot leak into the next.
func (r *HTTPRequest) clone() *HTTPRequest {
	cpy := *r
	cpy.Headers = r.Headers.Clone()
	return &cpy
}

func (r *HTTPRequest) SetHeader(k, v string) {
	if r.Headers == nil {
		r.Headers = http.Header{}
	}
	r.Headers.Set(k, v)
}

func (r *HTTPRequest) Header(k string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers.Get(k)
}
