package repository

import (
	"context"
	"errors"

	"github.com/YuriiSoroka26/forum-api/internal/model"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, userID uint64) (*model.User, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepoImpl{db: db}
}

// GetUserByID 按主键查询用户，不存在时返回 nil
func (r *userRepoImpl) GetUserByID(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).
		Where("id = ? AND is_delete = 0", userID).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}
