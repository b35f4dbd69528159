package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignTTL = 15 * time.Minute

// PresignedUpload is the triplet handed to clients for a direct-to-bucket
// upload.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	FileKey   string `json:"file_key"`
}

// S3Storage issues presigned upload URLs and handles small direct uploads.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

type Config struct {
	Bucket  string
	Region  string
	BaseURL string
}

func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("storage: bucket and region are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// ObjectKey builds the tenant-scoped key for an upload. The random segment
// keeps concurrent uploads of the same filename from clobbering each other.
func ObjectKey(organizationID, folder, fileName string) string {
	return fmt.Sprintf("%s/%s/%s-%s", organizationID, folder, uuid.New().String(), fileName)
}

// PresignUpload returns a short-lived PUT URL for the given key.
func (s *S3Storage) PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return nil, fmt.Errorf("storage: presign: %w", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   s.FileURL(key),
		FileKey:   key,
	}, nil
}

// Upload writes a small payload straight through the server. Used for
// profile photos and logos that arrive base64-encoded in the API request.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put object: %w", err)
	}
	return s.FileURL(key), nil
}

func (s *S3Storage) FileURL(key string) string {
	return s.baseURL + "/" + key
}
