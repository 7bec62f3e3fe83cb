package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignTTL bounds how long an archived log link stays fetchable. Links are
// surfaced through the broadcast hub right after a run, so they only need to
// outlive an observer clicking through.
const presignTTL = 15 * time.Minute

// S3Archive ships run logs to an S3 bucket using the default AWS credential
// chain. Only the archive role is offered over S3; rendered tests always stay
// on the local filesystem.
type S3Archive struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// NewS3Archive creates an S3-backed archive.
func NewS3Archive(bucket, region string) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket name cannot be empty")
	}
	if region == "" {
		return nil, fmt.Errorf("s3 region cannot be empty")
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Archive{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        bucket,
	}, nil
}

// Put uploads the content under key.
func (a *S3Archive) Put(ctx context.Context, key string, content io.Reader) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(cleaned),
		Body:   content,
	})
	if err != nil {
		return fmt.Errorf("failed to upload run log: %w", err)
	}
	return nil
}

// Location returns a presigned GET URL for the archived object. The object is
// not checked for existence; callers only ask for locations of keys they just
// wrote.
func (a *S3Archive) Location(ctx context.Context, key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	presigned, err := a.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(cleaned),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign run log url: %w", err)
	}
	return presigned.URL, nil
}
