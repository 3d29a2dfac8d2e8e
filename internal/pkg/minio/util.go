package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到报表桶，同名对象直接覆盖
func UploadFile(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.PutObject(ctx, ReportBucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return objectName, nil
}

// ListObjectNames 列出报表桶里所有指定前缀的对象名，供对账任务使用
func ListObjectNames(ctx context.Context, prefix string) ([]string, error) {
	if Client == nil {
		return nil, fmt.Errorf("minio client is not initialized")
	}

	names := make([]string, 0)
	for object := range Client.ListObjects(ctx, ReportBucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		names = append(names, object.Key)
	}
	return names, nil
}

// GetPublicURL 获取对象的公共访问URL
func GetPublicURL(objectName string) string {
	protocol := "http"
	if useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, strings.TrimSuffix(endpoint, "/"), ReportBucket, objectName)
}
