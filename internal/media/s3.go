package media

import (
	"context"
	"fmt"
	"time"

	"chai-app-go/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3URLs hands out presigned GET URLs for objects in a bucket. Works with
// S3 compatible stores such as R2 or MinIO when an endpoint is set.
type S3URLs struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

func NewS3(ctx context.Context, cfg config.S3Config) (*S3URLs, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("media: s3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &S3URLs{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		ttl:     ttl,
	}, nil
}

func (s *S3URLs) ImageURL(ctx context.Context, ref string) (string, error) {
	ref = cleanRef(ref)
	if ref == "" {
		return "", nil
	}
	if isAbsoluteURL(ref) {
		return ref, nil
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("media: presign %s: %w", ref, err)
	}
	return req.URL, nil
}
