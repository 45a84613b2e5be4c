package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plume-labs/plume/internal/model"
)

func seedPost(t *testing.T, db *gorm.DB, id, authorID string, pub time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.Post{
		ID: id, Text: "post " + id, PubDate: pub, AuthorID: authorID,
	}).Error)
}

func TestPostListOrderNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, "p1", "u1", base)
	seedPost(t, db, "p2", "u1", base.Add(time.Minute))
	seedPost(t, db, "p3", "u1", base.Add(2*time.Minute))

	posts, err := repo.ListAll(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "p3", posts[0].ID)
	require.Equal(t, "p2", posts[1].ID)
	require.Equal(t, "p1", posts[2].ID)
}

func TestPostListTieBreakIsStable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	// identical timestamps: order falls back to id DESC
	same := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, "pa", "u1", same)
	seedPost(t, db, "pb", "u1", same)
	seedPost(t, db, "pc", "u1", same)

	want := []string{"pc", "pb", "pa"}
	for i := 0; i < 3; i++ {
		posts, err := repo.ListAll(ctx, 0, 10)
		require.NoError(t, err)
		got := make([]string, len(posts))
		for j, p := range posts {
			got[j] = p.ID
		}
		require.Equal(t, want, got)
	}
}

func TestPostListByAuthorsAndCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedUser(t, db, "u3", "carol")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedPost(t, db, fmt.Sprintf("a%d", i), "u1", base.Add(time.Duration(i)*time.Minute))
	}
	seedPost(t, db, "b0", "u2", base.Add(10*time.Minute))
	seedPost(t, db, "c0", "u3", base.Add(20*time.Minute))

	posts, err := repo.ListByAuthors(ctx, []string{"u1", "u2"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	require.Equal(t, "b0", posts[0].ID) // newest among u1+u2
	for _, p := range posts {
		require.NotEqual(t, "u3", p.AuthorID)
	}

	cnt, err := repo.CountByAuthors(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	require.EqualValues(t, 4, cnt)

	// empty set short-circuits without touching the DB
	posts, err = repo.ListByAuthors(ctx, nil, 0, 10)
	require.NoError(t, err)
	require.Empty(t, posts)
	cnt, err = repo.CountByAuthors(ctx, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, cnt)
}

func TestPostGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
