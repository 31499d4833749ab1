// Package token issues and verifies the HS256 access and refresh tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalid = errors.New("invalid token")

// Claims carries the authenticated user id as "id".
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type Manager struct {
	accessKey  []byte
	refreshKey []byte
	accessAge  time.Duration
	now        func() time.Time
}

func NewManager(accessKey, refreshKey string, accessAge time.Duration) *Manager {
	return &Manager{
		accessKey:  []byte(accessKey),
		refreshKey: []byte(refreshKey),
		accessAge:  accessAge,
		now:        time.Now,
	}
}

func (m *Manager) GenerateAccessToken(userID string) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessAge)),
		},
	}
	return sign(claims, m.accessKey)
}

// GenerateRefreshToken has no expiry; it lives until it is deleted from storage.
func (m *Manager) GenerateRefreshToken(userID string) (string, error) {
	claims := Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(m.now())},
	}
	return sign(claims, m.refreshKey)
}

// VerifyAccessToken returns the user id the token was issued for.
func (m *Manager) VerifyAccessToken(raw string) (string, error) {
	return m.verify(raw, m.accessKey)
}

func (m *Manager) VerifyRefreshToken(raw string) (string, error) {
	return m.verify(raw, m.refreshKey)
}

func (m *Manager) verify(raw string, key []byte) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing id claim", ErrInvalid)
	}
	return claims.UserID, nil
}

func sign(claims Claims, key []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
