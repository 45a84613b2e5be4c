package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthSvc(env *testEnv) AuthService {
	return NewAuthService(env.userRepo, "test-secret", time.Hour, env.clk)
}

func TestSignUpAndLogin(t *testing.T) {
	env := newTestEnv(t, false)
	auth := newAuthSvc(env)
	ctx := context.Background()

	user, err := auth.SignUp(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	token, err := auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestSignUpDuplicateUsername(t *testing.T) {
	env := newTestEnv(t, false)
	auth := newAuthSvc(env)
	ctx := context.Background()

	_, err := auth.SignUp(ctx, "alice", "", "secret1")
	require.NoError(t, err)

	_, err = auth.SignUp(ctx, "alice", "", "secret2")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t, false)
	auth := newAuthSvc(env)
	ctx := context.Background()

	_, err := auth.SignUp(ctx, "alice", "", "secret1")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "nobody", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t, false)
	auth := newAuthSvc(env)

	_, err := auth.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
