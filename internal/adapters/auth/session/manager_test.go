package session

import (
	"context"
	"testing"
	"time"

	"remedio-solidario/internal/domain/accounts"
	"remedio-solidario/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m, err := NewManager(Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	token, exp, err := m.Issue(accounts.User{ID: 7, NomeUsuario: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	claims, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "7", Name: "Ana", Email: "ana@example.com"}, claims)
}

func TestManager_Verify_Rejects(t *testing.T) {
	m, err := NewManager(Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	issued := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }
	token, _, err := m.Issue(accounts.User{ID: 7})
	require.NoError(t, err)

	_, err = m.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = m.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewManager(Config{Secret: "other-secret"})
	require.NoError(t, err)
	other.now = m.now
	_, err = other.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Verify_RejectsOtherAlgorithms(t *testing.T) {
	m, err := NewManager(Config{Secret: "test-secret"})
	require.NoError(t, err)

	claims := userClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "7",
		Issuer:    DefaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}
