package storage

import (
	"context"
	"io"
	"strings"

	"alcyxob/wellness-app/internal/config" // Import your config package

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// s3Storage implements the FileStorage interface using an S3-compatible backend.
type s3Storage struct {
	client     *s3.Client
	bucketName string
	log        logrus.FieldLogger
}

// NewS3Storage creates a new S3 storage service instance.
func NewS3Storage(ctx context.Context, cfg config.S3Config, log logrus.FieldLogger) (FileStorage, error) {
	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		log.WithError(err).Error("failed to load AWS SDK config for S3")
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		// Custom endpoint for S3-compatible services (MinIO, Spaces)
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true
		}
	})

	log.WithFields(logrus.Fields{"endpoint": cfg.Endpoint, "bucket": cfg.BucketName}).Info("S3 storage initialized")

	return &s3Storage{
		client:     s3Client,
		bucketName: cfg.BucketName,
		log:        log,
	}, nil
}

// PutObject uploads an object with its content type.
func (s *s3Storage) PutObject(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.log.WithError(err).WithField("key", objectKey).Error("failed to upload object")
		return err
	}
	return nil
}

// DeleteObject removes an object from the S3 bucket.
func (s *s3Storage) DeleteObject(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"key": objectKey, "bucket": s.bucketName}).Error("failed to delete object")
		return err
	}

	s.log.WithFields(logrus.Fields{"key": objectKey, "bucket": s.bucketName}).Info("deleted object")
	return nil
}

// endpointURL adds a scheme to a bare host:port endpoint.
func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// PublicBaseURL returns the prefix of public photo URLs. An explicit
// public_base_url wins; otherwise it is derived from the endpoint and bucket.
func PublicBaseURL(cfg config.S3Config) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	if cfg.BucketName == "" {
		return "http://localhost/photos"
	}
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(endpointURL(cfg.Endpoint, cfg.UseSSL), "/") + "/" + cfg.BucketName
	}
	return "https://" + cfg.BucketName + ".s3." + cfg.Region + ".amazonaws.com"
}
