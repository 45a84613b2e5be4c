package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plume-labs/plume/internal/model"
)

// feedOrder is the listing invariant: newest first, id DESC breaking
// timestamp ties so repeated reads are stable.
const feedOrder = "pub_date DESC, id DESC"

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Save(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)

	ListAll(ctx context.Context, offset, limit int) ([]*model.Post, error)
	CountAll(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*model.Post, error)
	CountByGroup(ctx context.Context, groupID string) (int64, error)
	ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*model.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Where("id = ?", id).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) list(ctx context.Context, cond *gorm.DB, offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := cond.WithContext(ctx).
		Preload("Author").Preload("Group").
		Order(feedOrder).
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListAll(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	return r.list(ctx, r.db.Model(&model.Post{}), offset, limit)
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*model.Post, error) {
	return r.list(ctx, r.db.Model(&model.Post{}).Where("group_id = ?", groupID), offset, limit)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("group_id = ?", groupID).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, error) {
	return r.list(ctx, r.db.Model(&model.Post{}).Where("author_id = ?", authorID), offset, limit)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*model.Post, error) {
	if len(authorIDs) == 0 {
		return []*model.Post{}, nil
	}
	return r.list(ctx, r.db.Model(&model.Post{}).Where("author_id IN ?", authorIDs), offset, limit)
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []string) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id IN ?", authorIDs).Count(&cnt).Error
	return cnt, err
}
