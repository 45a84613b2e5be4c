package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/plume-labs/plume/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
