package repository

import (
	"context"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/model"

	"gorm.io/gorm"
)

// EventFilter 事件查询条件，OwnerID / PostID 为 nil 时不参与过滤，
// 时间范围两端均为闭区间。
type EventFilter struct {
	OwnerID *uint64
	PostID  *uint64
	Start   time.Time
	End     time.Time
}

// EventRepo 只读的事件时间戳来源，统计聚合只关心 created_at。
type EventRepo interface {
	FindPostTimes(ctx context.Context, filter EventFilter) ([]time.Time, error)
	FindLikeTimes(ctx context.Context, filter EventFilter) ([]time.Time, error)
	FindCommentTimes(ctx context.Context, filter EventFilter) ([]time.Time, error)
}

type eventRepoImpl struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return &eventRepoImpl{db: db}
}

// FindPostTimes 查询发帖时间戳，归属人是帖子作者
func (r *eventRepoImpl) FindPostTimes(ctx context.Context, filter EventFilter) ([]time.Time, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("created_at BETWEEN ? AND ?", filter.Start, filter.End)
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}
	return pluckTimes(query)
}

// FindLikeTimes 查询点赞时间戳
func (r *eventRepoImpl) FindLikeTimes(ctx context.Context, filter EventFilter) ([]time.Time, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("created_at BETWEEN ? AND ?", filter.Start, filter.End)
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}
	return pluckTimes(query)
}

// FindCommentTimes 查询评论时间戳
func (r *eventRepoImpl) FindCommentTimes(ctx context.Context, filter EventFilter) ([]time.Time, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("created_at BETWEEN ? AND ?", filter.Start, filter.End)
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}
	return pluckTimes(query)
}

func pluckTimes(query *gorm.DB) ([]time.Time, error) {
	times := make([]time.Time, 0)
	if err := query.Pluck("created_at", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}
