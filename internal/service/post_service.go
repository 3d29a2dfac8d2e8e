package service

import (
	"context"

	"github.com/YuriiSoroka26/forum-api/internal/model"
	"github.com/YuriiSoroka26/forum-api/internal/repository"
)

// PostService 帖子查询，报表接口用它做归属校验
type PostService interface {
	GetPost(ctx context.Context, postID uint64) (*model.Post, error)
}

type postServiceImpl struct {
	postRepo repository.PostRepo
}

func NewPostService(postRepo repository.PostRepo) PostService {
	return &postServiceImpl{postRepo: postRepo}
}

// GetPost 按 ID 查询帖子，不存在时返回 ErrPostNotFound
func (s *postServiceImpl) GetPost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}
