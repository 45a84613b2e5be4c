package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"time"
	"unicode/utf8"

	// registered so DecodeConfig can sniff the formats we accept
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"github.com/plume-labs/plume/internal/model"
	"github.com/plume-labs/plume/internal/repository"
	"github.com/plume-labs/plume/internal/storage"
	"github.com/plume-labs/plume/pkg/clock"
)

// Upload is a raw file received from a form.
type Upload struct {
	Data     []byte
	Filename string
}

// CommentView is a comment rendered for the post detail page.
type CommentView struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// PostDetail is the single-post page: the post, its comments, and the
// author's total post count.
type PostDetail struct {
	Post            PostView      `json:"post"`
	Comments        []CommentView `json:"comments"`
	AuthorPostCount int64         `json:"author_post_count"`
}

type PostService interface {
	Create(ctx context.Context, authorID, text, groupSlug string, img *Upload) (*model.Post, error)
	Update(ctx context.Context, postID, editorID, text, groupSlug string, img *Upload) (*model.Post, error)
	AddComment(ctx context.Context, postID, authorID, text string) (*model.Comment, error)
	GetDetail(ctx context.Context, username, postID string) (*PostDetail, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	blobs       storage.BlobStore
	clk         clock.Clock
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	blobs storage.BlobStore,
	clk clock.Clock,
) PostService {
	return &postService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		blobs:       blobs,
		clk:         clk,
	}
}

// sniffImage decodes the upload header and returns its content type.
// Anything that does not decode as png/jpeg/gif is a validation failure,
// not a server fault.
func sniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", validationErr("image", "file is not a valid image")
	}
	switch format {
	case "png":
		return "image/png", nil
	case "jpeg":
		return "image/jpeg", nil
	case "gif":
		return "image/gif", nil
	}
	return "", validationErr("image", "unsupported image format "+format)
}

func (s *postService) resolveGroup(ctx context.Context, slug string) (*string, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}

func (s *postService) storeImage(ctx context.Context, img *Upload) (string, error) {
	contentType, err := sniffImage(img.Data)
	if err != nil {
		return "", err
	}
	return s.blobs.Store(ctx, img.Data, contentType)
}

// Create persists a new post. PubDate comes from the injected clock and is
// never touched again.
func (s *postService) Create(ctx context.Context, authorID, text, groupSlug string, img *Upload) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationErr("text", "text is required")
	}
	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:       uuid.New().String(),
		Text:     text,
		PubDate:  s.clk.Now(),
		AuthorID: authorID,
		GroupID:  groupID,
	}
	if img != nil {
		key, err := s.storeImage(ctx, img)
		if err != nil {
			return nil, err
		}
		post.ImageKey = key
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update edits a post in place. Only the author may edit; anyone else gets
// ErrForbidden, which the handler turns into a redirect to the read view.
// ID, author, and publish time are preserved.
func (s *postService) Update(ctx context.Context, postID, editorID, text, groupSlug string, img *Upload) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(text) == "" {
		return nil, validationErr("text", "text is required")
	}
	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	// drop preloaded associations so Save only writes the posts row
	post.Group = nil
	post.Author = model.User{}
	if img != nil {
		key, err := s.storeImage(ctx, img)
		if err != nil {
			return nil, err
		}
		post.ImageKey = key
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment attaches a comment to an existing post. Text is required and
// bounded at model.CommentMaxLen runes.
func (s *postService) AddComment(ctx context.Context, postID, authorID, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationErr("text", "text is required")
	}
	if utf8.RuneCountInString(text) > model.CommentMaxLen {
		return nil, validationErr("text", "comment is too long")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
		Created:  s.clk.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetDetail loads one post addressed as username/postID, NotFound when the
// post does not exist or belongs to a different author.
func (s *postService) GetDetail(ctx context.Context, username, postID string) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.Author.Username != username {
		return nil, ErrNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	view := PostView{
		ID:      post.ID,
		Text:    post.Text,
		PubDate: post.PubDate,
		Author:  post.Author.Username,
	}
	if post.Group != nil {
		view.GroupSlug = post.Group.Slug
		view.GroupTitle = post.Group.Title
	}
	if post.ImageKey != "" {
		view.ImageURL = s.blobs.URLFor(post.ImageKey)
	}

	cviews := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		cviews = append(cviews, CommentView{
			ID:      c.ID,
			Author:  c.Author.Username,
			Text:    c.Text,
			Created: c.Created,
		})
	}
	return &PostDetail{Post: view, Comments: cviews, AuthorPostCount: count}, nil
}
