package job

import (
	"context"
	log "log/slog"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/pkg/minio"
	"github.com/YuriiSoroka26/forum-api/internal/repository"
)

// reconcileTimeout 单次巡检的时间上限，存储端挂起时不占死 cron 槽位
const reconcileTimeout = 5 * time.Minute

// ReportReconcileJob 巡检对象存储中已上传但未登记的报表产物。
// 上传与登记不在同一事务内，登记失败会留下孤儿产物，这里只告警不删除。
type ReportReconcileJob struct {
	reportRepo  repository.ReportRepo
	listObjects func(ctx context.Context, prefix string) ([]string, error)
	publicURL   func(objectName string) string
}

func NewReportReconcileJob(reportRepo repository.ReportRepo) *ReportReconcileJob {
	return &ReportReconcileJob{
		reportRepo:  reportRepo,
		listObjects: minio.ListObjectNames,
		publicURL:   minio.GetPublicURL,
	}
}

func (s *ReportReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()
	log.Info("start report reconcile job")

	objectNames, err := s.listObjects(ctx, "")
	if err != nil {
		log.Error("failed to list report objects", "err", err)
		return
	}

	orphans := 0
	for _, name := range objectNames {
		url := s.publicURL(name)

		exists, err := s.reportRepo.ExistsByURL(ctx, url)
		if err != nil {
			log.Error("failed to check report record", "object", name, "err", err)
			continue
		}
		if !exists {
			orphans++
			log.Warn("orphan report artifact without registry record", "object", name, "url", url)
		}
	}

	log.Info("report reconcile job finished", "total", len(objectNames), "orphans", orphans)
}
