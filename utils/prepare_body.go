package utils

import (
	"fmt"
	"io"
)

// PrepareBody turns an outgoing body into wire bytes. Serialization into a
// string or bytes happens earlier, so only already-encoded shapes are accepted.
func PrepareBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case io.Reader:
		buf, err := io.ReadAll(b)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("unsupported body type: %T", body)
	}
}
