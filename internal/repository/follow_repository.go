package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plume-labs/plume/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID string) error
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	ListAuthorIDs(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, userID, authorID string) error {
	f := &model.Follow{ID: uuid.New().String(), UserID: userID, AuthorID: authorID}
	// idempotent: a duplicate edge hits the unique pair index and is dropped
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListAuthorIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	return ids, err
}

func (r *followRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Count(&cnt).Error
	return cnt, err
}
