// Package storage 封装练习录音的对象存储
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Min-owo17/Mysic/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ErrDisabled 未配置对象存储
var ErrDisabled = errors.New("object storage is disabled")

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// PresignedURL 生成临时下载地址
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// MinioStorage MinIO / S3 兼容存储
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// New 根据配置创建对象存储，未启用时返回 DisabledStorage
func New(conf *config.StorageConfig) (ObjectStorage, error) {
	if conf == nil || !conf.Enabled {
		return DisabledStorage{}, nil
	}

	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
		Region: conf.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, conf.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{Region: conf.Region}); err != nil {
			return nil, fmt.Errorf("创建存储桶失败: %w", err)
		}
		zap.L().Info("created bucket", zap.String("bucket", conf.Bucket))
	}

	return &MinioStorage{client: client, bucket: conf.Bucket}, nil
}

func (s *MinioStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("上传对象 %s: %w", key, err)
	}
	return nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除对象 %s: %w", key, err)
	}
	return nil
}

func (s *MinioStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成下载地址 %s: %w", key, err)
	}
	return u.String(), nil
}

// DisabledStorage 未启用对象存储时的占位实现
type DisabledStorage struct{}

func (DisabledStorage) Put(context.Context, string, io.Reader, int64, string) error {
	return ErrDisabled
}

func (DisabledStorage) Delete(context.Context, string) error { return nil }

func (DisabledStorage) PresignedURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrDisabled
}
