package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"masomo_backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage abstracts where uploaded files (avatars, lesson videos, resources)
// land. Two providers exist: local disk for development and MinIO for
// anything shared.
type Storage interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, path string) error
	// LocalPath maps a stored path back to a file on disk, when there is
	// one. Remote providers report false and callers skip disk-only work
	// such as video probing.
	LocalPath(path string) (string, bool)
}

func NewStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "minio":
		return newMinioStorage(cfg)
	default:
		return &localStorage{baseDir: cfg.Storage.LocalPath}, nil
	}
}

// uploadName builds a collision-free object name preserving the original
// extension.
func uploadName(folder, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
}

type localStorage struct {
	baseDir string
}

func (s *localStorage) Save(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	name := uploadName(folder, file.Filename)
	fullPath := filepath.Join(s.baseDir, name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Join("uploads", name)), nil
}

func (s *localStorage) Delete(_ context.Context, path string) error {
	rel := strings.TrimPrefix(path, "/uploads/")
	if rel == path || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid storage path: %s", path)
	}
	return os.Remove(filepath.Join(s.baseDir, rel))
}

func (s *localStorage) LocalPath(path string) (string, bool) {
	rel := strings.TrimPrefix(path, "/uploads/")
	if rel == path || strings.Contains(rel, "..") {
		return "", false
	}
	return filepath.Join(s.baseDir, rel), true
}

type minioStorage struct {
	client *minio.Client
	bucket string
}

func newMinioStorage(cfg *config.Config) (*minioStorage, error) {
	client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
		Secure: cfg.Storage.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Storage.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Storage.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio bucket create: %w", err)
		}
	}

	return &minioStorage{client: client, bucket: cfg.Storage.MinioBucket}, nil
}

func (s *minioStorage) Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	name := uploadName(folder, file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio upload: %w", err)
	}
	return fmt.Sprintf("/%s/%s", s.bucket, name), nil
}

func (s *minioStorage) Delete(ctx context.Context, path string) error {
	object := strings.TrimPrefix(path, "/"+s.bucket+"/")
	return s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{})
}

func (s *minioStorage) LocalPath(string) (string, bool) {
	return "", false
}
