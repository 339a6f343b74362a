package storage

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	awshttp "github.com/aws/smithy-go/transport/http"
	"github.com/pkg/errors"

	"github.com/ryanshappa/GamePlay-sub000/content"
)

// ErrNotFound is returned by S3.Head when the object does not exist.
var ErrNotFound = errors.New("object not found")

// S3 implements ObjectSource and ObjectSink against AWS S3 or any
// S3-compatible endpoint.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3 creates a client from the default credential chain. endpoint
// overrides the AWS endpoint when non-empty (local stacks, minio).
func NewS3(ctx context.Context, region, endpoint string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, uploader: manager.NewUploader(client)}, nil
}

func (s *S3) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not get 's3://%s/%s'", bucket, key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read 's3://%s/%s'", bucket, key)
	}
	return data, nil
}

func (s *S3) Head(ctx context.Context, bucket, key string) (map[string]string, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var re *awshttp.ResponseError
		if errors.As(err, &re) && re.HTTPStatusCode() == 404 {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "could not head 's3://%s/%s'", bucket, key)
	}

	// S3 user metadata keys are case-insensitive; clients disagree on
	// the casing they send. Normalize once, here.
	meta := make(map[string]string, len(out.Metadata))
	for k, v := range out.Metadata {
		meta[strings.ToLower(k)] = v
	}
	return meta, nil
}

func (s *S3) Put(ctx context.Context, bucket, key string, data []byte, h content.Headers) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(h.ContentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}
	if h.ContentEncoding != "" {
		input.ContentEncoding = aws.String(h.ContentEncoding)
	}

	_, err := s.uploader.Upload(ctx, input)
	return errors.Wrapf(err, "could not put 's3://%s/%s'", bucket, key)
}
