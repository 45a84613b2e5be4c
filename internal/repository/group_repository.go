package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plume-labs/plume/internal/model"
)

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepository{db: db} }

func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}
