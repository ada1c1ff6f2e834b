package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/yigit/hostelsphere/internal/pkg/logger"
)

// S3Config holds the bucket settings for S3Storage
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for MinIO and other S3-compatible stores
	Prefix    string // key prefix, e.g. "photos"
	BaseURL   string // public URL of the bucket; derived from endpoint or AWS when empty
	PathStyle bool
	MaxBytes  int64
}

// objectAPI is the subset of the S3 client used by S3Storage
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage stores photos in an S3 bucket
type S3Storage struct {
	client objectAPI
	cfg    S3Config
}

// NewS3Storage builds an S3 client from the default credential chain
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3Storage(client, cfg), nil
}

func newS3Storage(client objectAPI, cfg S3Config) *S3Storage {
	if cfg.BaseURL == "" {
		switch {
		case cfg.Endpoint != "":
			cfg.BaseURL = joinURL(cfg.Endpoint, cfg.Bucket)
		default:
			cfg.BaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &S3Storage{client: client, cfg: cfg}
}

// SaveFileWithPath uploads the file under prefix/subPath
func (s *S3Storage) SaveFileWithPath(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	contentType, err := checkUpload(fileHeader, s.cfg.MaxBytes)
	if err != nil {
		return "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	key := joinURL(s.cfg.Prefix, subPath, uuid.New().String()+strings.ToLower(filepath.Ext(fileHeader.Filename)))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error().Err(err).Str("bucket", s.cfg.Bucket).Str("key", key).Msg("Failed to upload object")
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	logger.Info().Str("bucket", s.cfg.Bucket).Str("key", key).Msg("Object uploaded")
	return joinURL(s.cfg.BaseURL, key), nil
}

// DeleteFile removes the object behind fileURL; URLs outside the bucket are ignored
func (s *S3Storage) DeleteFile(ctx context.Context, fileURL string) error {
	key, ok := s.keyOf(fileURL)
	if !ok {
		return nil
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) keyOf(fileURL string) (string, bool) {
	prefix := strings.TrimRight(s.cfg.BaseURL, "/") + "/"
	if fileURL == "" || !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, prefix)
	return key, key != ""
}
