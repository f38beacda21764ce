package s3client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joy-dx/presetreq/dto"
)

type listedObject struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

type listing struct {
	Bucket  string         `json:"bucket"`
	Prefix  string         `json:"prefix"`
	Objects []listedObject `json:"objects"`
}

// doList renders the listing as JSON so the dispatcher decodes it into Data.
func (c *S3Client) doList(ctx context.Context, r *S3Request) (dto.Response, error) {
	out, err := c.client.ListObjectsV2(ctx, r.ListInput)
	if err != nil {
		return dto.Response{}, fmt.Errorf("s3 list objects: %w", err)
	}

	l := listing{Bucket: r.Bucket, Prefix: r.Prefix, Objects: make([]listedObject, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		l.Objects = append(l.Objects, listedObject{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		})
	}
	body, err := json.Marshal(l)
	if err != nil {
		return dto.Response{}, fmt.Errorf("encode listing: %w", err)
	}

	return dto.Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{dto.ContentTypeJSON}},
		Body:       body,
	}, nil
}
