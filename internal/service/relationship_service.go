package service

import (
	"context"
	"errors"

	"github.com/plume-labs/plume/internal/repository"
)

// RelationshipService manages the follow graph, addressed by author
// username at this layer.
type RelationshipService interface {
	Follow(ctx context.Context, viewerID, authorUsername string) error
	Unfollow(ctx context.Context, viewerID, authorUsername string) error
	IsFollowing(ctx context.Context, viewerID, authorUsername string) (bool, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo}
}

func (s *relationshipService) resolve(ctx context.Context, username string) (string, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return author.ID, nil
}

// Follow inserts the edge. Following yourself is a silent no-op, and
// following twice leaves a single edge.
func (s *relationshipService) Follow(ctx context.Context, viewerID, authorUsername string) error {
	authorID, err := s.resolve(ctx, authorUsername)
	if err != nil {
		return err
	}
	if viewerID == authorID {
		return nil
	}
	return s.followRepo.Create(ctx, viewerID, authorID)
}

// Unfollow removes the edge if present; absent edges are a no-op.
func (s *relationshipService) Unfollow(ctx context.Context, viewerID, authorUsername string) error {
	authorID, err := s.resolve(ctx, authorUsername)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, viewerID, authorID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, viewerID, authorUsername string) (bool, error) {
	authorID, err := s.resolve(ctx, authorUsername)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, viewerID, authorID)
}
