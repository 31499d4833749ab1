package service

import (
	"context"
	"testing"

	"notesapi/internal/user/model"
	"notesapi/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type storedUser struct {
	model.User
	hash string
}

type fakeRepo struct {
	users map[string]storedUser
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]storedUser)}
}

func (f *fakeRepo) Create(_ context.Context, id, username, hash, fullname string) (string, error) {
	f.users[id] = storedUser{User: model.User{ID: id, Username: username, Fullname: fullname}, hash: hash}
	return id, nil
}

func (f *fakeRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return &u.User, nil
}

func (f *fakeRepo) GetCredential(_ context.Context, username string) (string, string, error) {
	for id, u := range f.users {
		if u.Username == username {
			return id, u.hash, nil
		}
	}
	return "", "", apperror.NotFound("user not found")
}

func (f *fakeRepo) SearchByUsername(context.Context, string) ([]model.User, error) {
	return nil, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo)

	id, err := svc.Register(context.Background(), "alice", "secret", "Alice")
	require.NoError(t, err)
	assert.Regexp(t, `^user-`, id)

	stored := repo.users[id]
	assert.NotEqual(t, "secret", stored.hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.hash), []byte("secret")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewUserService(newFakeRepo())
	_, err := svc.Register(context.Background(), "alice", "secret", "Alice")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other", "Alice Two")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLookup(t *testing.T) {
	svc := NewUserService(newFakeRepo())
	id, err := svc.Register(context.Background(), "alice", "secret", "Alice")
	require.NoError(t, err)

	u, err := svc.Lookup(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Lookup(context.Background(), "user-missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestVerifyCredential(t *testing.T) {
	svc := NewUserService(newFakeRepo())
	id, err := svc.Register(context.Background(), "alice", "secret", "Alice")
	require.NoError(t, err)

	got, err := svc.VerifyCredential(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = svc.VerifyCredential(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.VerifyCredential(context.Background(), "nobody", "secret")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
