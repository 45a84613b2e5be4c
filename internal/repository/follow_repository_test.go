package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plume-labs/plume/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, username string) *model.User {
	t.Helper()
	u := &model.User{ID: id, Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")

	require.NoError(t, repo.Create(ctx, "u1", "u2"))
	require.NoError(t, repo.Create(ctx, "u1", "u2"))

	cnt, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, cnt)
}

func TestFollowDeleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")

	require.NoError(t, repo.Create(ctx, "u1", "u2"))
	require.NoError(t, repo.Delete(ctx, "u1", "u2"))

	cnt, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, cnt)

	// deleting an absent edge is a no-op, not an error
	require.NoError(t, repo.Delete(ctx, "u1", "u2"))
}

func TestFollowExistsAndListAuthorIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedUser(t, db, "u3", "carol")

	ok, err := repo.Exists(ctx, "u1", "u2")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Create(ctx, "u1", "u2"))
	require.NoError(t, repo.Create(ctx, "u1", "u3"))

	ok, err = repo.Exists(ctx, "u1", "u2")
	require.NoError(t, err)
	require.True(t, ok)

	ids, err := repo.ListAuthorIDs(ctx, "u1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"u2", "u3"}, ids)

	// edges are directed
	ids, err = repo.ListAuthorIDs(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, ids)
}
