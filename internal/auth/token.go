package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/repfit/repfit-server/internal/domain"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the signed claim set carried by every token: standard registered
// claims (sub, iat, exp) plus the access/refresh discriminator.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"type"`
}

// TokenService issues and verifies HS256-signed, time-bounded identity tokens.
// Tokens are never persisted; validity is determined entirely by signature and
// expiry at verification time.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess creates a short-lived access token for the given user.
func (s *TokenService) IssueAccess(userID uuid.UUID) (string, error) {
	return s.issue(userID, TokenTypeAccess, s.accessTTL)
}

// IssueRefresh creates a longer-lived refresh token for the given user.
func (s *TokenService) IssueRefresh(userID uuid.UUID) (string, error) {
	return s.issue(userID, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) issue(userID uuid.UUID, kind TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature integrity and expiry. It returns
// domain.ErrInvalidToken on any failure; a partially trusted claim set is
// never returned.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
