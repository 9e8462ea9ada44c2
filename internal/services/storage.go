package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dating-app-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadURLExpiry = 5 * time.Minute

// PhotoStorage holds the image bytes of photos. Clients upload directly to
// a presigned URL; the API only tracks keys.
type PhotoStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (url string, expires time.Duration, err error)
	URL(key string) string
	Remove(ctx context.Context, key string) error
}

// S3Storage stores photos in an S3 bucket
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

// NewS3Storage creates S3-backed photo storage. Static credentials and a
// custom endpoint are optional.
func NewS3Storage(ctx context.Context, cfg config.AWSConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.PublicBaseURL
	switch {
	case baseURL != "":
	case cfg.Endpoint != "":
		baseURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.S3Bucket)
	default:
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.Region)
	}

	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// PresignUpload returns a URL the client can PUT the image to
func (s *S3Storage) PresignUpload(ctx context.Context, key, contentType string) (string, time.Duration, error) {
	request, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}
	return request.URL, uploadURLExpiry, nil
}

// URL returns the public URL of key
func (s *S3Storage) URL(key string) string {
	return s.baseURL + "/" + key
}

// Remove deletes the object stored under key
func (s *S3Storage) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
