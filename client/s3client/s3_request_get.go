package s3client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joy-dx/presetreq/dto"
)

func (c *S3Client) doGet(ctx context.Context, r *S3Request) (dto.Response, error) {
	out, err := c.client.GetObject(ctx, r.GetInput)
	if err != nil {
		return dto.Response{}, fmt.Errorf("s3 get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return dto.Response{}, fmt.Errorf("read s3 object: %w", err)
	}

	headers := http.Header{}
	for k, v := range out.Metadata {
		headers.Set(metaHeaderPrefix+k, v)
	}
	if ct := aws.ToString(out.ContentType); ct != "" {
		headers.Set("Content-Type", ct)
	}
	if etag := aws.ToString(out.ETag); etag != "" {
		headers.Set("ETag", etag)
	}

	return dto.Response{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers:    headers,
	}, nil
}
