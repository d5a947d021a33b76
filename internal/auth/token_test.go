package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repfit/repfit-server/internal/auth"
)

const testSecret = "test-jwt-secret-key-for-testing-only"

func newTokenService() *auth.TokenService {
	return auth.NewTokenService(testSecret, 30*time.Minute, 7*24*time.Hour)
}

func TestTokenService_IssueAccess(t *testing.T) {
	svc := newTokenService()
	userID := uuid.New()

	token, err := svc.IssueAccess(userID)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, auth.TokenTypeAccess, claims.TokenType)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestTokenService_IssueRefresh(t *testing.T) {
	svc := newTokenService()
	userID := uuid.New()

	token, err := svc.IssueRefresh(userID)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, auth.TokenTypeRefresh, claims.TokenType)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	// Negative TTL issues a token that is already expired.
	svc := auth.NewTokenService(testSecret, -time.Minute, -time.Minute)

	token, err := svc.IssueAccess(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	svc := newTokenService()
	other := auth.NewTokenService("a-completely-different-secret", 30*time.Minute, time.Hour)

	token, err := svc.IssueAccess(uuid.New())
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenService_VerifyGarbage(t *testing.T) {
	svc := newTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt", token: "definitely-not-a-token"},
		{name: "truncated jwt", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestTokenService_VerifyTampered(t *testing.T) {
	svc := newTokenService()

	token, err := svc.IssueAccess(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = svc.Verify(tampered)
	assert.Error(t, err)
}
