package service

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/api/dto"
	"github.com/YuriiSoroka26/forum-api/internal/model"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/interval"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/render"
	"github.com/YuriiSoroka26/forum-api/internal/repository"
)

// 报表文件名里的生成时间格式，可按字典序排序
const reportTimestampLayout = "2006-01-02_15-04-05"

// Rasterizer 将报表 HTML 光栅化为 PDF 字节
type Rasterizer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ArtifactStore 持久化报表产物并返回可分享的 URL
type ArtifactStore interface {
	UploadReport(ctx context.Context, filename string, data []byte) (string, error)
}

// ReportRenderer 将统计结果代入模板产出报表文档
type ReportRenderer interface {
	RenderUserReport(stats *dto.UserStatisticsDTO, period string) (string, error)
	RenderPostReport(stats *dto.PostStatisticsDTO, period string) (string, error)
}

// ReportService 统计报表管线：聚合 → 渲染 → 光栅化 → 上传 → 登记。
// 管线整体快速失败，各外部阶段不做内部重试（上传的单次重试在存储层内）。
type ReportService interface {
	GenerateUserReport(ctx context.Context, userID uint64, startDate, endDate, intervalStr string) (string, error)
	GeneratePostReport(ctx context.Context, postID uint64, startDate, endDate, intervalStr string) (string, error)
	GetLatestUserReportURL(ctx context.Context, userID uint64) (string, error)
	GetLatestPostReportURL(ctx context.Context, postID uint64) (string, error)
}

type reportServiceImpl struct {
	statisticsSvc StatisticsService
	renderer      ReportRenderer
	rasterizer    Rasterizer
	store         ArtifactStore
	reportRepo    repository.ReportRepo
	now           func() time.Time
}

func NewReportService(
	statisticsSvc StatisticsService,
	renderer ReportRenderer,
	rasterizer Rasterizer,
	store ArtifactStore,
	reportRepo repository.ReportRepo,
) ReportService {
	return &reportServiceImpl{
		statisticsSvc: statisticsSvc,
		renderer:      renderer,
		rasterizer:    rasterizer,
		store:         store,
		reportRepo:    reportRepo,
		now:           time.Now,
	}
}

func (s *reportServiceImpl) GenerateUserReport(ctx context.Context, userID uint64, startDate, endDate, intervalStr string) (string, error) {
	start, end, iv, err := validateReportInputs(startDate, endDate, intervalStr)
	if err != nil {
		return "", err
	}

	stats, err := s.statisticsSvc.GetUserActivityStatistics(ctx, userID, start, end, iv)
	if err != nil {
		return "", err
	}
	if len(stats.Statistics) == 0 {
		return "", ErrNoStatisticsData
	}

	period := fmt.Sprintf("%s to %s", startDate, endDate)
	html, err := s.renderer.RenderUserReport(stats, period)
	if err != nil {
		return "", s.mapRenderError(ctx, err)
	}

	return s.finishPipeline(ctx, model.SubjectUser, userID, html)
}

func (s *reportServiceImpl) GeneratePostReport(ctx context.Context, postID uint64, startDate, endDate, intervalStr string) (string, error) {
	start, end, iv, err := validateReportInputs(startDate, endDate, intervalStr)
	if err != nil {
		return "", err
	}

	stats, err := s.statisticsSvc.GetPostActivityStatistics(ctx, postID, start, end, iv)
	if err != nil {
		return "", err
	}
	if len(stats.Statistics) == 0 {
		return "", ErrNoStatisticsData
	}

	period := fmt.Sprintf("%s to %s", startDate, endDate)
	html, err := s.renderer.RenderPostReport(stats, period)
	if err != nil {
		return "", s.mapRenderError(ctx, err)
	}

	return s.finishPipeline(ctx, model.SubjectPost, postID, html)
}

// finishPipeline 光栅化、上传并登记报表记录，返回产物 URL
func (s *reportServiceImpl) finishPipeline(ctx context.Context, subjectType string, subjectID uint64, html string) (string, error) {
	pdfBytes, err := s.rasterizer.RenderPDF(ctx, html)
	if err != nil {
		log.ErrorContext(ctx, "报表光栅化失败", "subject_type", subjectType, "subject_id", subjectID, "err", err)
		return "", ErrRasterizeFailed
	}

	generatedAt := s.now()
	filename := fmt.Sprintf("%s_%d_statistics_%s.pdf",
		subjectType, subjectID, generatedAt.UTC().Format(reportTimestampLayout))

	url, err := s.store.UploadReport(ctx, filename, pdfBytes)
	if err != nil {
		log.ErrorContext(ctx, "报表产物上传失败", "filename", filename, "err", err)
		return "", ErrArtifactUpload
	}

	record := &model.GeneratedReport{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		URL:         url,
		GeneratedAt: generatedAt,
	}
	if err = s.reportRepo.CreateReport(ctx, record); err != nil {
		// 产物已经上传成功但登记失败，latest 查询会找不到这份报表，
		// 必须作为可告警事件单独记录，等对账任务兜底
		log.ErrorContext(ctx, "报表登记失败，产物已上传无登记",
			"subject_type", subjectType, "subject_id", subjectID, "url", url, "err", err)
		return "", ErrReportPersistence
	}

	return url, nil
}

func (s *reportServiceImpl) GetLatestUserReportURL(ctx context.Context, userID uint64) (string, error) {
	return s.latestURL(ctx, model.SubjectUser, userID)
}

func (s *reportServiceImpl) GetLatestPostReportURL(ctx context.Context, postID uint64) (string, error) {
	return s.latestURL(ctx, model.SubjectPost, postID)
}

// latestURL 纯读路径，不触发任何重新生成
func (s *reportServiceImpl) latestURL(ctx context.Context, subjectType string, subjectID uint64) (string, error) {
	report, err := s.reportRepo.GetLatestReport(ctx, subjectType, subjectID)
	if err != nil {
		return "", err
	}
	if report == nil {
		return "", ErrReportNotFound
	}
	return report.URL, nil
}

// validateReportInputs 在任何外部调用之前完成范围与粒度校验
func validateReportInputs(startDate, endDate, intervalStr string) (time.Time, time.Time, interval.Interval, error) {
	start, end, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	iv, err := interval.Parse(intervalStr)
	if err != nil {
		return time.Time{}, time.Time{}, "", ErrInvalidInterval
	}
	return start, end, iv, nil
}

// mapRenderError 把渲染层的哨兵错误翻译成业务错误
func (s *reportServiceImpl) mapRenderError(ctx context.Context, err error) error {
	if errors.Is(err, render.ErrCorruptSeries) {
		// 聚合与渲染对标签格式的约定被打破，属于缺陷而不是脏输入
		log.ErrorContext(ctx, "统计序列标签损坏，聚合与渲染格式不一致", "err", err)
		return ErrCorruptSeries
	}
	if errors.Is(err, render.ErrTemplateNotFound) {
		return ErrTemplateNotFound
	}
	log.ErrorContext(ctx, "报表模板渲染失败", "err", err)
	return UnExpectedError
}
