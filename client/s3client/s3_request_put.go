package s3client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joy-dx/presetreq/dto"
)

func (c *S3Client) doPut(ctx context.Context, r *S3Request) (dto.Response, error) {
	out, err := c.client.PutObject(ctx, r.PutInput)
	if err != nil {
		return dto.Response{}, fmt.Errorf("s3 put object: %w", err)
	}
	headers := http.Header{}
	if out != nil && out.ETag != nil {
		headers.Set("ETag", aws.ToString(out.ETag))
	}
	return dto.Response{StatusCode: http.StatusOK, Headers: headers}, nil
}
