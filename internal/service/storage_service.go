package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"learnhub_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider 文件存储后端抽象，本地磁盘与 MinIO 两种实现
type StorageProvider interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// LocalStorage 写入本地磁盘，适合单机部署
type LocalStorage struct {
	BasePath string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{BasePath: basePath}
}

func (s *LocalStorage) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(s.BasePath, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", err
	}
	return "/uploads/" + objectName, nil
}

// MinioStorage 对象存储实现
type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucket string) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}

	s := &MinioStorage{client: client, bucket: bucket}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MinioStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/%s/%s", s.bucket, objectName), nil
}

// NewStorageService 按配置选择存储后端
func NewStorageService(cfg *config.Config) (StorageProvider, error) {
	switch cfg.Storage.Type {
	case "minio":
		return NewMinioStorage(
			cfg.Storage.MinioEndpoint,
			cfg.Storage.MinioAccessID,
			cfg.Storage.MinioSecret,
			cfg.Storage.MinioBucket,
		)
	default:
		return NewLocalStorage(cfg.Storage.LocalPath), nil
	}
}
