package httpclient

import (
	"context"
	"fmt"
	"net/url"
)

// StaticHeaderMiddleware injects static headers into every request.
func StaticHeaderMiddleware(headers map[string]string) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		for k, v := range headers {
			r.SetHeader(k, v)
		}
		return nil
	}
}

func LoggingMiddleware(logger func(msg string)) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		logger(fmt.Sprintf("[HTTP] %s %s", r.Method, r.URL))
		return nil
	}
}

// QueryParamMiddleware sets a query parameter on every request URL, e.g. an API key.
func QueryParamMiddleware(key, value string) Middleware {
	return func(ctx context.Context, r *HTTPRequest) error {
		u, err := url.Parse(r.URL)
		if err != nil {
			return fmt.Errorf("parse url: %w", err)
		}
		q := u.Query()
		q.Set(key, value)
		u.RawQuery = q.Encode()
		r.URL = u.String()
		return nil
	}
}
