package minio

import (
	"context"
	"fmt"

	"github.com/YuriiSoroka26/forum-api/internal/api/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// ReportBucket 报表产物存储桶
	ReportBucket string

	endpoint string
	useSSL   bool
)

// Init 初始化 MinIO 客户端并确认报表桶可用
func Init(cfg config.MinIOConfig) error {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.ReportBucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.ReportBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create report bucket: %w", err)
		}
	}

	Client = client
	ReportBucket = cfg.ReportBucket
	endpoint = cfg.Endpoint
	useSSL = cfg.UseSSL
	return nil
}
