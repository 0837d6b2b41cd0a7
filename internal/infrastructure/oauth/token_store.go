package oauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenStore persists the access and refresh tokens under their fixed
// storage keys and hands them out as oauth2 tokens
type TokenStore struct {
	kv     repository.KeyValueRepository
	logger logger.Logger
	mu     sync.Mutex
}

// NewTokenStore creates a token store over the given key/value repository
func NewTokenStore(kv repository.KeyValueRepository, logger logger.Logger) *TokenStore {
	return &TokenStore{
		kv:     kv,
		logger: logger,
	}
}

var _ repository.TokenRepository = (*TokenStore)(nil)

// Token returns the stored credentials, or nil when neither token is stored
func (s *TokenStore) Token(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, err := s.kv.Get(ctx, repository.KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}
	refresh, err := s.kv.Get(ctx, repository.KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh token: %w", err)
	}
	if len(access) == 0 && len(refresh) == 0 {
		return nil, nil
	}

	token := &oauth2.Token{
		AccessToken:  string(access),
		RefreshToken: string(refresh),
		TokenType:    "Bearer",
	}
	if claims, err := ParseClaims(token.AccessToken); err == nil && claims.ExpiresAt != nil {
		token.Expiry = claims.ExpiresAt.Time
	}
	return token, nil
}

// SaveToken stores the access token and, when present, the refresh token.
// An empty refresh token keeps the one already stored.
func (s *TokenStore) SaveToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("nil token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, repository.KeyAccessToken, []byte(token.AccessToken)); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if token.RefreshToken != "" {
		if err := s.kv.Set(ctx, repository.KeyRefreshToken, []byte(token.RefreshToken)); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
	}

	s.logger.Debug("Tokens saved", "hasRefreshToken", token.RefreshToken != "")
	return nil
}

// Clear removes both tokens. Both deletes are attempted.
func (s *TokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accessErr := s.kv.Delete(ctx, repository.KeyAccessToken)
	refreshErr := s.kv.Delete(ctx, repository.KeyRefreshToken)
	if accessErr != nil {
		return fmt.Errorf("failed to clear access token: %w", accessErr)
	}
	if refreshErr != nil {
		return fmt.Errorf("failed to clear refresh token: %w", refreshErr)
	}
	return nil
}

// ParseClaims reads the registered claims of a JWT access token without
// verifying its signature; the backend is the one that verifies it.
func ParseClaims(accessToken string) (*jwt.RegisteredClaims, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("empty token")
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiresWithin reports whether the token expires within d of now.
// Tokens with unknown expiry never do.
func ExpiresWithin(token *oauth2.Token, now time.Time, d time.Duration) bool {
	if token == nil || token.Expiry.IsZero() {
		return false
	}
	return token.Expiry.Before(now.Add(d))
}
