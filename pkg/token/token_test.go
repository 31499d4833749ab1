package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("access", "refresh", time.Minute)

	raw, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	id, err := m.VerifyAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = m.VerifyRefreshToken(raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestAccessTokenExpires(t *testing.T) {
	m := NewManager("access", "refresh", time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	raw, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = m.VerifyAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("access", "refresh", time.Minute)

	raw, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	id, err := m.VerifyRefreshToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("access", "refresh", time.Minute)
	_, err := m.VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalid)
}
