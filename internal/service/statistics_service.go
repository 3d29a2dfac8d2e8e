package service

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/api/dto"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/consts"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/interval"
	"github.com/YuriiSoroka26/forum-api/internal/repository"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// statisticsCacheTTL 聚合结果缓存时长
const statisticsCacheTTL = 5 * time.Minute

// StatisticsCache 聚合结果的旁路缓存，读写失败均不影响主流程
type StatisticsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type StatisticsService interface {
	// GetUserActivityStatistics 聚合用户在时间范围内的发帖/点赞/评论活跃度
	GetUserActivityStatistics(ctx context.Context, userID uint64, start, end time.Time, iv interval.Interval) (*dto.UserStatisticsDTO, error)
	// GetPostActivityStatistics 聚合帖子在时间范围内收到的点赞/评论
	GetPostActivityStatistics(ctx context.Context, postID uint64, start, end time.Time, iv interval.Interval) (*dto.PostStatisticsDTO, error)
}

type statisticsServiceImpl struct {
	eventRepo      repository.EventRepo
	userRepo       repository.UserRepo
	postRepo       repository.PostRepo
	userFollowRepo repository.UserFollowRepo
	cache          StatisticsCache
}

func NewStatisticsService(
	eventRepo repository.EventRepo,
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	userFollowRepo repository.UserFollowRepo,
	cache StatisticsCache,
) StatisticsService {
	return &statisticsServiceImpl{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		postRepo:       postRepo,
		userFollowRepo: userFollowRepo,
		cache:          cache,
	}
}

// ParseDateRange 解析 YYYY-MM-DD 的起止日期，格式错误或起晚于止均视为非法
func ParseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

func (s *statisticsServiceImpl) GetUserActivityStatistics(ctx context.Context, userID uint64, start, end time.Time, iv interval.Interval) (*dto.UserStatisticsDTO, error) {
	if err := s.checkInputs(start, end, iv); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	cacheKey := fmt.Sprintf("%s%d:%s:%s:%s", consts.UserStatisticsKey, userID,
		start.Format(dateLayout), end.Format(dateLayout), iv)
	var cached dto.UserStatisticsDTO
	if s.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	filter := repository.EventFilter{OwnerID: &userID, Start: start, End: end}

	var postsBuckets, likesBuckets, commentsBuckets []dto.BucketDTO
	var followersCount, followingCount int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		times, err := s.eventRepo.FindPostTimes(gctx, filter)
		if err != nil {
			return err
		}
		postsBuckets, err = bucketize(times, iv)
		return err
	})
	g.Go(func() error {
		times, err := s.eventRepo.FindLikeTimes(gctx, filter)
		if err != nil {
			return err
		}
		likesBuckets, err = bucketize(times, iv)
		return err
	})
	g.Go(func() error {
		times, err := s.eventRepo.FindCommentTimes(gctx, filter)
		if err != nil {
			return err
		}
		commentsBuckets, err = bucketize(times, iv)
		return err
	})
	g.Go(func() error {
		var err error
		followersCount, err = s.userFollowRepo.GetUserFollowerCount(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		followingCount, err = s.userFollowRepo.GetUserFollowingCount(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &dto.UserStatisticsDTO{
		UserID:    userID,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Interval:  string(iv),
		Statistics: map[string][]dto.BucketDTO{
			dto.MetricPosts:    postsBuckets,
			dto.MetricLikes:    likesBuckets,
			dto.MetricComments: commentsBuckets,
		},
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}
	s.writeCache(ctx, cacheKey, result)
	return result, nil
}

func (s *statisticsServiceImpl) GetPostActivityStatistics(ctx context.Context, postID uint64, start, end time.Time, iv interval.Interval) (*dto.PostStatisticsDTO, error) {
	if err := s.checkInputs(start, end, iv); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	cacheKey := fmt.Sprintf("%s%d:%s:%s:%s", consts.PostStatisticsKey, postID,
		start.Format(dateLayout), end.Format(dateLayout), iv)
	var cached dto.PostStatisticsDTO
	if s.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	filter := repository.EventFilter{PostID: &postID, Start: start, End: end}

	var likesBuckets, commentsBuckets []dto.BucketDTO

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		times, err := s.eventRepo.FindLikeTimes(gctx, filter)
		if err != nil {
			return err
		}
		likesBuckets, err = bucketize(times, iv)
		return err
	})
	g.Go(func() error {
		times, err := s.eventRepo.FindCommentTimes(gctx, filter)
		if err != nil {
			return err
		}
		commentsBuckets, err = bucketize(times, iv)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &dto.PostStatisticsDTO{
		PostID:    postID,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Interval:  string(iv),
		Statistics: map[string][]dto.BucketDTO{
			dto.MetricLikes:    likesBuckets,
			dto.MetricComments: commentsBuckets,
		},
	}
	s.writeCache(ctx, cacheKey, result)
	return result, nil
}

// checkInputs 边界防御：范围和粒度都应由调用方校验过，这里兜底
func (s *statisticsServiceImpl) checkInputs(start, end time.Time, iv interval.Interval) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return ErrInvalidDateRange
	}
	if _, err := interval.Parse(string(iv)); err != nil {
		return ErrInvalidInterval
	}
	return nil
}

// bucketize 将时间戳映射到桶标签并累加计数。
// 计数与输入顺序无关，桶序列不排序，排序在渲染阶段做。
// 没有任何事件时返回空序列而不是补零。
func bucketize(times []time.Time, iv interval.Interval) ([]dto.BucketDTO, error) {
	counts := make(map[string]int, len(times))
	for _, t := range times {
		label, err := interval.Label(t, iv)
		if err != nil {
			return nil, ErrInvalidInterval
		}
		counts[label]++
	}

	buckets := make([]dto.BucketDTO, 0, len(counts))
	for label, count := range counts {
		buckets = append(buckets, dto.BucketDTO{Label: label, Count: count})
	}
	return buckets, nil
}

func (s *statisticsServiceImpl) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return false
	}
	if err = json.Unmarshal([]byte(raw), out); err != nil {
		log.WarnContext(ctx, "统计缓存内容损坏，忽略", "key", key, "err", err)
		return false
	}
	return true
}

func (s *statisticsServiceImpl) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err = s.cache.Set(ctx, key, string(raw), statisticsCacheTTL); err != nil {
		log.WarnContext(ctx, "统计缓存写入失败", "key", key, "err", err)
	}
}
