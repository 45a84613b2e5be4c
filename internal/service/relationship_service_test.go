package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFollowUnknownAuthor(t *testing.T) {
	env := newTestEnv(t, false)
	viewer := env.user(t, "viewer")
	ctx := context.Background()

	require.ErrorIs(t, env.relSvc.Follow(ctx, viewer.ID, "nobody"), ErrNotFound)
	require.ErrorIs(t, env.relSvc.Unfollow(ctx, viewer.ID, "nobody"), ErrNotFound)
	_, err := env.relSvc.IsFollowing(ctx, viewer.ID, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFollowSelfIsSilentNoOp(t *testing.T) {
	env := newTestEnv(t, false)
	viewer := env.user(t, "narcissus")
	ctx := context.Background()

	require.NoError(t, env.relSvc.Follow(ctx, viewer.ID, "narcissus"))

	cnt, err := env.followRepo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, cnt)
}

func TestFollowTwiceLeavesOneEdge(t *testing.T) {
	env := newTestEnv(t, false)
	viewer := env.user(t, "viewer")
	env.user(t, "bloger")
	ctx := context.Background()

	require.NoError(t, env.relSvc.Follow(ctx, viewer.ID, "bloger"))
	require.NoError(t, env.relSvc.Follow(ctx, viewer.ID, "bloger"))

	cnt, err := env.followRepo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, cnt)

	following, err := env.relSvc.IsFollowing(ctx, viewer.ID, "bloger")
	require.NoError(t, err)
	require.True(t, following)
}

func TestUnfollowAfterFollow(t *testing.T) {
	env := newTestEnv(t, false)
	viewer := env.user(t, "viewer")
	env.user(t, "bloger")
	ctx := context.Background()

	require.NoError(t, env.relSvc.Follow(ctx, viewer.ID, "bloger"))
	require.NoError(t, env.relSvc.Unfollow(ctx, viewer.ID, "bloger"))

	cnt, err := env.followRepo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, cnt)

	// unfollow with no prior edge is a no-op
	require.NoError(t, env.relSvc.Unfollow(ctx, viewer.ID, "bloger"))
}
