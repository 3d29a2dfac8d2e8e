package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/api/dto"
	"github.com/YuriiSoroka26/forum-api/internal/model"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/interval"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatisticsService struct {
	userStats *dto.UserStatisticsDTO
	postStats *dto.PostStatisticsDTO
	err       error
}

func (f *fakeStatisticsService) GetUserActivityStatistics(ctx context.Context, userID uint64, start, end time.Time, iv interval.Interval) (*dto.UserStatisticsDTO, error) {
	return f.userStats, f.err
}

func (f *fakeStatisticsService) GetPostActivityStatistics(ctx context.Context, postID uint64, start, end time.Time, iv interval.Interval) (*dto.PostStatisticsDTO, error) {
	return f.postStats, f.err
}

type fakeRenderer struct {
	html string
	err  error
}

func (f *fakeRenderer) RenderUserReport(stats *dto.UserStatisticsDTO, period string) (string, error) {
	return f.html, f.err
}

func (f *fakeRenderer) RenderPostReport(stats *dto.PostStatisticsDTO, period string) (string, error) {
	return f.html, f.err
}

type fakeRasterizer struct {
	pdf   []byte
	err   error
	calls int
	html  string
}

func (f *fakeRasterizer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	f.calls++
	f.html = html
	return f.pdf, f.err
}

type fakeArtifactStore struct {
	err       error
	filenames []string
}

func (f *fakeArtifactStore) UploadReport(ctx context.Context, filename string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.filenames = append(f.filenames, filename)
	return "https://storage.example.com/reports/" + filename, nil
}

type fakeReportRepo struct {
	createErr error
	records   []*model.GeneratedReport
}

func (f *fakeReportRepo) CreateReport(ctx context.Context, report *model.GeneratedReport) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, report)
	return nil
}

func (f *fakeReportRepo) GetLatestReport(ctx context.Context, subjectType string, subjectID uint64) (*model.GeneratedReport, error) {
	var latest *model.GeneratedReport
	for _, r := range f.records {
		if r.SubjectType != subjectType || r.SubjectID != subjectID {
			continue
		}
		if latest == nil || r.GeneratedAt.After(latest.GeneratedAt) {
			latest = r
		}
	}
	return latest, nil
}

func (f *fakeReportRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	for _, r := range f.records {
		if r.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func sampleUserStats() *dto.UserStatisticsDTO {
	return &dto.UserStatisticsDTO{
		UserID:    1,
		StartDate: "2024-03-10",
		EndDate:   "2024-03-15",
		Interval:  "day",
		Statistics: map[string][]dto.BucketDTO{
			dto.MetricPosts:    {{Label: "2024-03-10", Count: 2}},
			dto.MetricLikes:    {},
			dto.MetricComments: {},
		},
		FollowersCount: 4,
	}
}

type reportFixture struct {
	svc        *reportServiceImpl
	rasterizer *fakeRasterizer
	store      *fakeArtifactStore
	repo       *fakeReportRepo
}

func newReportFixture(stats *fakeStatisticsService) *reportFixture {
	rasterizer := &fakeRasterizer{pdf: []byte("%PDF-1.4")}
	store := &fakeArtifactStore{}
	repo := &fakeReportRepo{}
	svc := &reportServiceImpl{
		statisticsSvc: stats,
		renderer:      &fakeRenderer{html: "<html>report</html>"},
		rasterizer:    rasterizer,
		store:         store,
		reportRepo:    repo,
		now:           func() time.Time { return time.Date(2024, 3, 16, 10, 30, 0, 0, time.UTC) },
	}
	return &reportFixture{svc: svc, rasterizer: rasterizer, store: store, repo: repo}
}

func TestGenerateUserReportHappyPath(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})

	url, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	require.NoError(t, err)

	assert.Equal(t, "https://storage.example.com/reports/user_1_statistics_2024-03-16_10-30-00.pdf", url)
	assert.Equal(t, 1, fx.rasterizer.calls)
	assert.Equal(t, "<html>report</html>", fx.rasterizer.html)

	require.Len(t, fx.repo.records, 1)
	record := fx.repo.records[0]
	assert.Equal(t, model.SubjectUser, record.SubjectType)
	assert.Equal(t, uint64(1), record.SubjectID)
	assert.Equal(t, url, record.URL)
}

func TestGenerateUserReportInvalidInputsShortCircuit(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})

	_, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-15", "2024-03-10", "day")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "fortnight")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// 校验失败时不应触碰管线后续阶段
	assert.Zero(t, fx.rasterizer.calls)
	assert.Empty(t, fx.store.filenames)
}

func TestGenerateUserReportPropagatesNotFound(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{err: ErrUserNotFound})

	_, err := fx.svc.GenerateUserReport(context.Background(), 42, "2024-03-10", "2024-03-15", "day")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, fx.rasterizer.calls)
}

func TestGenerateUserReportRasterizeFailure(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})
	fx.rasterizer.err = errors.New("browser crashed")

	_, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	assert.ErrorIs(t, err, ErrRasterizeFailed)
	assert.Empty(t, fx.store.filenames)
	assert.Empty(t, fx.repo.records)
}

func TestGenerateUserReportUploadFailure(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})
	fx.store.err = errors.New("bucket unavailable")

	_, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	assert.ErrorIs(t, err, ErrArtifactUpload)
	assert.Empty(t, fx.repo.records)
}

func TestGenerateUserReportPersistenceFailure(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})
	fx.repo.createErr = errors.New("deadlock")

	_, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	assert.ErrorIs(t, err, ErrReportPersistence)
	// 上传已发生，登记失败留下孤儿产物
	assert.Len(t, fx.store.filenames, 1)
}

func TestGenerateUserReportCorruptSeries(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})
	fx.svc.renderer = &fakeRenderer{err: fmt.Errorf("%w: %q", render.ErrCorruptSeries, "garbage")}

	_, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	assert.ErrorIs(t, err, ErrCorruptSeries)
	assert.Zero(t, fx.rasterizer.calls)
}

func TestGenerateUserReportMissingTemplate(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})
	fx.svc.renderer = &fakeRenderer{err: render.ErrTemplateNotFound}

	_, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestGeneratePostReport(t *testing.T) {
	stats := &fakeStatisticsService{
		postStats: &dto.PostStatisticsDTO{
			PostID:    7,
			StartDate: "2024-03-10",
			EndDate:   "2024-03-15",
			Interval:  "day",
			Statistics: map[string][]dto.BucketDTO{
				dto.MetricLikes:    {{Label: "2024-03-10", Count: 1}},
				dto.MetricComments: {},
			},
		},
	}
	fx := newReportFixture(stats)

	url, err := fx.svc.GeneratePostReport(context.Background(), 7, "2024-03-10", "2024-03-15", "day")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/reports/post_7_statistics_2024-03-16_10-30-00.pdf", url)

	require.Len(t, fx.repo.records, 1)
	assert.Equal(t, model.SubjectPost, fx.repo.records[0].SubjectType)
}

func TestGeneratePostReportEmptySeriesStillGenerates(t *testing.T) {
	// 区间内没有任何点赞/评论不是错误，产出空表格的报表
	stats := &fakeStatisticsService{
		postStats: &dto.PostStatisticsDTO{
			PostID:    7,
			StartDate: "2024-03-10",
			EndDate:   "2024-03-15",
			Interval:  "day",
			Statistics: map[string][]dto.BucketDTO{
				dto.MetricLikes:    {},
				dto.MetricComments: {},
			},
		},
	}
	fx := newReportFixture(stats)

	url, err := fx.svc.GeneratePostReport(context.Background(), 7, "2024-03-10", "2024-03-15", "day")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Len(t, fx.repo.records, 1)
}

func TestRepeatedGenerationKeepsHistoryAndLatestWins(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{userStats: sampleUserStats()})

	times := []time.Time{
		time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 16, 11, 0, 0, 0, time.UTC),
	}
	idx := 0
	fx.svc.now = func() time.Time {
		ts := times[idx]
		idx++
		return ts
	}

	first, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	require.NoError(t, err)
	second, err := fx.svc.GenerateUserReport(context.Background(), 1, "2024-03-10", "2024-03-15", "day")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each run produces a distinct artifact name")
	assert.Len(t, fx.repo.records, 2, "older records are kept")

	latest, err := fx.svc.GetLatestUserReportURL(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestGetLatestUserReportURLNotFound(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{})

	_, err := fx.svc.GetLatestUserReportURL(context.Background(), 1)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestGetLatestPostReportURL(t *testing.T) {
	fx := newReportFixture(&fakeStatisticsService{})
	fx.repo.records = []*model.GeneratedReport{
		{SubjectType: model.SubjectPost, SubjectID: 7, URL: "https://storage.example.com/reports/a.pdf", GeneratedAt: time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)},
		{SubjectType: model.SubjectUser, SubjectID: 7, URL: "https://storage.example.com/reports/b.pdf", GeneratedAt: time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)},
	}

	url, err := fx.svc.GetLatestPostReportURL(context.Background(), 7)
	require.NoError(t, err)
	// user 主体的记录不串台
	assert.Equal(t, "https://storage.example.com/reports/a.pdf", url)
}
