// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mittirang/mittirang-backend/internal/config"
	"github.com/mittirang/mittirang-backend/internal/metrics"
)

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	IsPublic     bool
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

func (s *StorageService) backend() string {
	if s.s3Client != nil {
		return "s3"
	}
	return "local"
}

// UploadImage stores a product image with the default product options.
func (s *StorageService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	return s.UploadFile(ctx, file, header, s.GetDefaultUploadOptions())
}

func (s *StorageService) UploadFile(ctx context.Context, file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	result, err := s.uploadFile(ctx, file, header, options)
	switch {
	case err == nil:
		metrics.Uploads.WithLabelValues(s.backend(), "ok").Inc()
	case isRejection(err):
		metrics.Uploads.WithLabelValues(s.backend(), "rejected").Inc()
	default:
		metrics.Uploads.WithLabelValues(s.backend(), "error").Inc()
	}
	return result, err
}

func (s *StorageService) uploadFile(ctx context.Context, file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	// Validate file size
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, header.Size, options.MaxSize)
	}

	// Validate file type
	fileExt := strings.ToLower(filepath.Ext(header.Filename))
	if len(options.AllowedTypes) > 0 && !slices.Contains(options.AllowedTypes, fileExt) {
		return nil, fmt.Errorf("%w: %q", ErrFileTypeNotAllowed, fileExt)
	}

	// Read file content, one byte past the limit to catch lying headers
	reader := io.Reader(file)
	if options.MaxSize > 0 {
		reader = io.LimitReader(file, options.MaxSize+1)
	}
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if options.MaxSize > 0 && int64(len(fileBytes)) > options.MaxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, options.MaxSize)
	}

	if !isValidImageType(fileBytes) {
		return nil, ErrInvalidImage
	}
	contentType := http.DetectContentType(fileBytes)

	// Generate unique filename
	key := s.generateFileName(fileExt, options.Folder)

	// Upload to S3 or local storage
	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	}

	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	// Prepare S3 upload parameters
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	// Upload to S3
	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path, err := s.localPath(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      strings.TrimRight(s.config.Upload.PublicURL, "/") + "/" + key,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("%w %q", ErrInvalidFileKey, key)
	}

	if s.s3Client == nil {
		path, err := s.localPath(key)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		logrus.WithField("key", key).Info("Local file deleted")
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// localPath resolves key inside the upload directory and refuses keys that
// would escape it.
func (s *StorageService) localPath(key string) (string, error) {
	root, err := filepath.Abs(s.config.Upload.Dir)
	if err != nil {
		return "", fmt.Errorf("invalid upload directory: %w", err)
	}
	path := filepath.Join(root, filepath.FromSlash(key))
	if path == root || !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w %q", ErrInvalidFileKey, key)
	}
	return path, nil
}

func (s *StorageService) GetDefaultUploadOptions() UploadOptions {
	maxSize := s.config.Upload.MaxFileSize
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024 // 10MB
	}
	return UploadOptions{
		Folder:       "products",
		MaxSize:      maxSize,
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		IsPublic:     true,
	}
}

func (s *StorageService) generateFileName(ext, folder string) string {
	// Create filename with timestamp and UUID
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}

	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func isValidImageType(buffer []byte) bool {
	// Check for JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// Check for PNG
	if bytes.HasPrefix(buffer, []byte("\x89PNG\r\n\x1a\n")) {
		return true
	}

	// Check for GIF
	if bytes.HasPrefix(buffer, []byte("GIF87a")) || bytes.HasPrefix(buffer, []byte("GIF89a")) {
		return true
	}

	// Check for WEBP
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}

func isRejection(err error) bool {
	return errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrFileTypeNotAllowed) || errors.Is(err, ErrInvalidImage)
}
