package s3client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/joy-dx/presetreq/dto"
)

// s3API This internal interface abstracts the s3 client for easier testing
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Client is a dto.Transport for s3://bucket/key URLs.
type S3Client struct {
	ref    string
	cfg    *S3ClientConfig
	client s3API
}

func NewS3Client(ref string, cfg *S3ClientConfig) (*S3Client, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(cfg.Credentials),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	if ref == "" {
		ref = TransportS3Ref
	}
	return &S3Client{
		ref:    ref,
		cfg:    cfg,
		client: client,
	}, nil
}

func (c *S3Client) Ref() string {
	return c.ref
}

// Send maps the outgoing request onto one S3 operation. Service errors that
// carry an HTTP status come back as plain responses so status callbacks see
// them; only connectivity and client-side failures are returned as errors.
func (c *S3Client) Send(ctx context.Context, out *dto.Outgoing) (dto.Response, error) {
	if out == nil {
		return dto.Response{}, errors.New("nil outgoing request")
	}

	r, err := newS3Request(out)
	if err != nil {
		return dto.Response{}, fmt.Errorf("build request: %w", err)
	}

	for _, mw := range c.cfg.Middlewares {
		if err := mw(ctx, r); err != nil {
			return dto.Response{}, fmt.Errorf("middleware aborted: %w", err)
		}
	}

	if err := r.Finalize(); err != nil {
		return dto.Response{}, err
	}

	var resp dto.Response
	switch r.Operation {
	case OpGet:
		resp, err = c.doGet(ctx, r)
	case OpPut:
		resp, err = c.doPut(ctx, r)
	case OpDelete:
		resp, err = c.doDelete(ctx, r)
	case OpList:
		resp, err = c.doList(ctx, r)
	default:
		return dto.Response{}, fmt.Errorf("unsupported s3 operation: %s", r.Operation)
	}
	if err != nil {
		if status, ok := statusFromError(err); ok {
			return dto.Response{
				RequestID:  out.RequestID,
				StatusCode: status,
				Headers:    http.Header{},
				Body:       []byte(err.Error()),
			}, nil
		}
		return dto.Response{}, err
	}
	resp.RequestID = out.RequestID
	return resp, nil
}

func statusFromError(err error) (int, bool) {
	var noKey *s3types.NoSuchKey
	if errors.As(err, &noKey) {
		return http.StatusNotFound, true
	}
	var noBucket *s3types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return http.StatusNotFound, true
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() > 0 {
		return respErr.HTTPStatusCode(), true
	}
	return 0, false
}
