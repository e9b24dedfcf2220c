package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Aashish23092/paystub-extraction/config"
)

const s3Scheme = "s3://"

// S3Source downloads statements addressed as s3://bucket/key.
type S3Source struct {
	downloader *manager.Downloader
}

func NewS3Source(ctx context.Context, cfg config.S3Config) (*S3Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &S3Source{downloader: manager.NewDownloader(client)}, nil
}

func (s *S3Source) Fetch(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return nil, err
	}

	buf := manager.NewWriteAtBuffer(nil)
	if _, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("s3 download %s: %w", ref, err)
	}
	return buf.Bytes(), nil
}

func IsS3Ref(ref string) bool {
	return strings.HasPrefix(ref, s3Scheme)
}

// ParseS3Ref splits s3://bucket/key into its bucket and key.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	if !IsS3Ref(ref) {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedSource, ref)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 reference %q: want s3://bucket/key", ref)
	}
	return bucket, key, nil
}
