package repository

import (
	"context"
	"errors"

	"github.com/YuriiSoroka26/forum-api/internal/model"

	"gorm.io/gorm"
)

type PostRepo interface {
	GetPost(ctx context.Context, postID uint64) (*model.Post, error)
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

// GetPost 按主键查询帖子，不存在时返回 nil
func (r *postRepoImpl) GetPost(ctx context.Context, postID uint64) (*model.Post, error) {
	var post model.Post
	result := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = 0", postID).
		First(&post)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &post, nil
}
