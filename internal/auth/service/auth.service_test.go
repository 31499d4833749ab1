package service

import (
	"context"
	"testing"
	"time"

	"notesapi/pkg/apperror"
	"notesapi/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens map[string]bool

func (f fakeTokens) Add(_ context.Context, tok string) error {
	f[tok] = true
	return nil
}

func (f fakeTokens) Delete(_ context.Context, tok string) error {
	delete(f, tok)
	return nil
}

func (f fakeTokens) Verify(_ context.Context, tok string) error {
	if !f[tok] {
		return apperror.Invariant("invalid refresh token")
	}
	return nil
}

type fakeUsers struct{}

func (fakeUsers) VerifyCredential(_ context.Context, username, password string) (string, error) {
	if username == "alice" && password == "secret" {
		return "user-alice", nil
	}
	return "", apperror.Unauthorized("invalid username or password")
}

func newService() (*AuthService, fakeTokens, *token.Manager) {
	store := fakeTokens{}
	tokens := token.NewManager("access", "refresh", time.Minute)
	return NewAuthService(store, fakeUsers{}, tokens), store, tokens
}

func TestLoginRefreshLogout(t *testing.T) {
	svc, store, tokens := newService()
	ctx := context.Background()

	pair, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.True(t, store[pair.RefreshToken])

	id, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", id)

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	id, err = tokens.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", id)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvariant)
	assert.ErrorIs(t, svc.Logout(ctx, pair.RefreshToken), apperror.ErrInvariant)
}

func TestLoginBadCredential(t *testing.T) {
	svc, store, _ := newService()

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	assert.Empty(t, store)
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	svc, store, _ := newService()
	store["forged"] = true

	_, err := svc.Refresh(context.Background(), "forged")
	assert.ErrorIs(t, err, apperror.ErrInvariant)
}
