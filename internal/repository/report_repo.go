package repository

import (
	"context"
	"errors"

	"github.com/YuriiSoroka26/forum-api/internal/model"

	"gorm.io/gorm"
)

// ReportRepo 报表记录登记处，只追加写入，历史全量保留
type ReportRepo interface {
	CreateReport(ctx context.Context, report *model.GeneratedReport) error
	GetLatestReport(ctx context.Context, subjectType string, subjectID uint64) (*model.GeneratedReport, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
}

type reportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &reportRepoImpl{db: db}
}

// CreateReport 追加一条报表记录
func (r *reportRepoImpl) CreateReport(ctx context.Context, report *model.GeneratedReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetLatestReport 按 generated_at 倒序取主体最近的一条记录，没有时返回 nil
func (r *reportRepoImpl) GetLatestReport(ctx context.Context, subjectType string, subjectID uint64) (*model.GeneratedReport, error) {
	var report model.GeneratedReport
	result := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
		Order("generated_at DESC").
		First(&report)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &report, nil
}

// ExistsByURL 判断某个产物 URL 是否已有登记，供对账任务使用
func (r *reportRepoImpl) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.GeneratedReport{}).
		Where("url = ?", url).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
