package minio

import (
	"context"
	log "log/slog"
	"time"
)

// uploadRetryWait 上传重试前的等待时间。
// 桶内同名对象是覆盖语义，单次重试是安全的。
const uploadRetryWait = 500 * time.Millisecond

// ReportStore 报表产物存储，实现 service.ArtifactStore
type ReportStore struct{}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// UploadReport 上传报表 PDF 并返回可分享的公共 URL，失败时重试一次
func (s *ReportStore) UploadReport(ctx context.Context, filename string, data []byte) (string, error) {
	objectName, err := UploadFile(ctx, filename, data, "application/pdf")
	if err != nil {
		log.WarnContext(ctx, "报表上传失败，准备重试", "filename", filename, "err", err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(uploadRetryWait):
		}
		objectName, err = UploadFile(ctx, filename, data, "application/pdf")
		if err != nil {
			return "", err
		}
	}
	return GetPublicURL(objectName), nil
}
