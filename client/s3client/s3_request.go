package s3client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/utils"
)

const (
	OpGet    = "get"
	OpPut    = "put"
	OpDelete = "delete"
	OpList   = "list"
)

const metaHeaderPrefix = "X-Amz-Meta-"

var ErrInvalidS3URL = errors.New("invalid s3 url")

// S3Request is the per-call state handed to middleware before Finalize.
type S3Request struct {
	Operation string
	Bucket    string
	Key       string

	Body        []byte
	Prefix      string
	ContentType string

	ExtraOpts map[string]any
	Headers   map[string]string

	// Deterministic prepared AWS inputs (built after middleware)
	PutInput    *s3.PutObjectInput
	GetInput    *s3.GetObjectInput
	DeleteInput *s3.DeleteObjectInput
	ListInput   *s3.ListObjectsV2Input
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidS3URL, err)
	}
	if !strings.EqualFold(u.Scheme, "s3") || u.Host == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URL, raw)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// operationFor maps an HTTP verb onto an S3 operation. A GET on an empty key
// or a key ending in "/" lists that prefix.
func operationFor(method, key string) (string, error) {
	switch strings.ToUpper(method) {
	case "", http.MethodGet, http.MethodHead:
		if key == "" || strings.HasSuffix(key, "/") {
			return OpList, nil
		}
		return OpGet, nil
	case http.MethodPut, http.MethodPost, http.MethodPatch:
		return OpPut, nil
	case http.MethodDelete:
		return OpDelete, nil
	default:
		return "", fmt.Errorf("unsupported method for s3: %s", method)
	}
}

func newS3Request(out *dto.Outgoing) (*S3Request, error) {
	bucket, key, err := ParseS3URL(out.URL)
	if err != nil {
		return nil, err
	}
	op, err := operationFor(out.Method, key)
	if err != nil {
		return nil, err
	}
	body, err := utils.PrepareBody(out.Body)
	if err != nil {
		return nil, err
	}

	r := &S3Request{
		Operation: op,
		Bucket:    bucket,
		Key:       key,
		Body:      body,
		ExtraOpts: map[string]any{},
		Headers:   utils.HeaderToMap(out.Headers),
	}
	if op == OpList {
		r.Prefix = key
		r.Key = ""
	}
	if (op == OpPut || op == OpDelete) && key == "" {
		return nil, fmt.Errorf("%w: %s needs an object key", ErrInvalidS3URL, op)
	}

	r.ContentType = out.Headers.Get("Content-Type")
	if v := out.Headers.Get("Cache-Control"); v != "" {
		r.ExtraOpts["cache_control"] = v
	}
	md := map[string]string{}
	for k, vals := range out.Headers {
		ck := http.CanonicalHeaderKey(k)
		if !strings.HasPrefix(ck, metaHeaderPrefix) || len(vals) == 0 {
			continue
		}
		md[strings.ToLower(strings.TrimPrefix(ck, metaHeaderPrefix))] = vals[0]
	}
	if len(md) > 0 {
		r.ExtraOpts["metadata"] = md
	}
	return r, nil
}
