package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plume-labs/plume/internal/cache"
	"github.com/plume-labs/plume/internal/model"
	"github.com/plume-labs/plume/internal/repository"
	"github.com/plume-labs/plume/internal/storage"
	"github.com/plume-labs/plume/pkg/clock"
)

const testCacheTTL = 20 * time.Second

type testEnv struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	clk   *clock.StubClock
	blobs *storage.MemoryStore

	userRepo   repository.UserRepository
	groupRepo  repository.GroupRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository

	feedSvc FeedService
	postSvc PostService
	relSvc  RelationshipService
}

// newTestEnv wires the full service stack against sqlite + miniredis.
// withCache controls whether the global feed goes through the feed cache.
func newTestEnv(t *testing.T, withCache bool) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))

	var feedCache *cache.FeedCache
	mr := miniredis.RunT(t)
	if withCache {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		feedCache = cache.NewFeedCache(client, testCacheTTL)
	}

	clk := clock.NewStubClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	blobs := storage.NewMemoryStore()

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	return &testEnv{
		db:         db,
		mr:         mr,
		clk:        clk,
		blobs:      blobs,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		feedSvc:    NewFeedService(postRepo, groupRepo, userRepo, followRepo, feedCache, blobs, 10),
		postSvc:    NewPostService(postRepo, groupRepo, userRepo, commentRepo, blobs, clk),
		relSvc:     NewRelationshipService(followRepo, userRepo),
	}
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, PasswordHash: "x"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) group(t *testing.T, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: title, Slug: slug}
	require.NoError(t, e.db.Create(g).Error)
	return g
}

// post creates a post directly, advancing the stub clock a minute so each
// post gets a distinct publish time.
func (e *testEnv) post(t *testing.T, author *model.User, text string) *model.Post {
	t.Helper()
	e.clk.Advance(time.Minute)
	p, err := e.postSvc.Create(context.Background(), author.ID, text, "", nil)
	require.NoError(t, err)
	return p
}
