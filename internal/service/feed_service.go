package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/plume-labs/plume/internal/cache"
	"github.com/plume-labs/plume/internal/model"
	"github.com/plume-labs/plume/internal/repository"
	"github.com/plume-labs/plume/internal/storage"
)

// PostView is a post rendered for a feed or detail page.
type PostView struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	PubDate    time.Time `json:"pub_date"`
	Author     string    `json:"author"`
	GroupSlug  string    `json:"group_slug,omitempty"`
	GroupTitle string    `json:"group_title,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// FeedPage is one page of a feed plus the metadata page controls need.
type FeedPage struct {
	Items      []PostView `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	TotalItems int64      `json:"total_items"`
}

// GroupFeed is a group's page: its metadata plus its posts.
type GroupFeed struct {
	FeedPage
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// AuthorFeed is a profile page: the author's posts plus profile extras.
type AuthorFeed struct {
	FeedPage
	Username  string `json:"username"`
	PostCount int64  `json:"post_count"`
	Following bool   `json:"following"`
}

type FeedService interface {
	GlobalFeed(ctx context.Context, page int) (*FeedPage, error)
	GroupFeed(ctx context.Context, slug string, page int) (*GroupFeed, error)
	AuthorFeed(ctx context.Context, username, viewerID string, page int) (*AuthorFeed, error)
	PersonalizedFeed(ctx context.Context, viewerID string, page int) (*FeedPage, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	feedCache  *cache.FeedCache
	blobs      storage.BlobStore
	pageSize   int
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	feedCache *cache.FeedCache,
	blobs storage.BlobStore,
	pageSize int,
) FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &feedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		feedCache:  feedCache,
		blobs:      blobs,
		pageSize:   pageSize,
	}
}

// paginate normalizes a 1-based page number against a total count.
// Invalid pages fall back to 1; pages past the end clamp to the last page;
// an empty feed still has one (empty) page.
func paginate(total int64, page, pageSize int) (normPage, totalPages, offset int) {
	totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages, (page - 1) * pageSize
}

func (s *feedService) render(posts []*model.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		v := PostView{
			ID:      p.ID,
			Text:    p.Text,
			PubDate: p.PubDate,
			Author:  p.Author.Username,
		}
		if p.Group != nil {
			v.GroupSlug = p.Group.Slug
			v.GroupTitle = p.Group.Title
		}
		if p.ImageKey != "" {
			v.ImageURL = s.blobs.URLFor(p.ImageKey)
		}
		views = append(views, v)
	}
	return views
}

// GlobalFeed serves the index page through the feed cache: the cached copy
// wins for the whole TTL even if posts were created meanwhile.
func (s *feedService) GlobalFeed(ctx context.Context, page int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if s.feedCache != nil {
		if payload, ok := s.feedCache.Get(ctx, page); ok {
			var fp FeedPage
			if err := json.Unmarshal(payload, &fp); err == nil {
				return &fp, nil
			}
		}
	}

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	normPage, totalPages, offset := paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListAll(ctx, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	fp := &FeedPage{Items: s.render(posts), Page: normPage, TotalPages: totalPages, TotalItems: total}

	if s.feedCache != nil {
		if payload, err := json.Marshal(fp); err == nil {
			s.feedCache.Set(ctx, page, payload)
		}
	}
	return fp, nil
}

func (s *feedService) GroupFeed(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	normPage, totalPages, offset := paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{
		FeedPage:    FeedPage{Items: s.render(posts), Page: normPage, TotalPages: totalPages, TotalItems: total},
		Slug:        group.Slug,
		Title:       group.Title,
		Description: group.Description,
	}, nil
}

// AuthorFeed carries the profile extras: the author's total post count and,
// for an authenticated viewer, whether they follow the author. viewerID ""
// means anonymous.
func (s *feedService) AuthorFeed(ctx context.Context, username, viewerID string, page int) (*AuthorFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	normPage, totalPages, offset := paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, offset, s.pageSize)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return &AuthorFeed{
		FeedPage:  FeedPage{Items: s.render(posts), Page: normPage, TotalPages: totalPages, TotalItems: total},
		Username:  author.Username,
		PostCount: total,
		Following: following,
	}, nil
}

// PersonalizedFeed lists posts from the authors the viewer follows. Not
// cached: it varies per viewer.
func (s *feedService) PersonalizedFeed(ctx context.Context, viewerID string, page int) (*FeedPage, error) {
	authorIDs, err := s.followRepo.ListAuthorIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	normPage, totalPages, offset := paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Items: s.render(posts), Page: normPage, TotalPages: totalPages, TotalItems: total}, nil
}
