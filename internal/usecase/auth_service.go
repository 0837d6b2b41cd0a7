package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	"skyfare/internal/infrastructure/oauth"
	"skyfare/pkg/logger"

	"github.com/pkg/errors"
)

// ExpiryWarning is how close to expiry a session is reported as expiring
const ExpiryWarning = 5 * time.Minute

// AuthService logs the user in and out and reports the local session
type AuthService struct {
	remote repository.AuthRepository
	tokens repository.TokenRepository
	logger logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(remote repository.AuthRepository, tokens repository.TokenRepository, logger logger.Logger) *AuthService {
	return &AuthService{
		remote: remote,
		tokens: tokens,
		logger: logger,
	}
}

// Login exchanges the credentials for tokens and stores them
func (s *AuthService) Login(ctx context.Context, email, password string) (entity.AuthStatus, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return entity.AuthStatus{}, errors.Wrap(domainerrors.ErrInvalidRequest, "email and password are required")
	}

	token, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return entity.AuthStatus{}, err
	}
	if err := s.tokens.SaveToken(ctx, token); err != nil {
		return entity.AuthStatus{}, fmt.Errorf("failed to store tokens: %w", err)
	}

	s.logger.Info("Logged in", "email", email)
	return s.Status(ctx)
}

// Logout tells the server to end the session and clears the local tokens.
// The server call is best effort; the tokens are cleared regardless.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.remote.Logout(ctx); err != nil {
		s.logger.Warn("Server logout failed", "error", err)
	}

	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}

	s.logger.Info("Logged out")
	return nil
}

// Status describes the stored credentials without contacting the server
func (s *AuthService) Status(ctx context.Context) (entity.AuthStatus, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return entity.AuthStatus{}, err
	}
	if token == nil || token.AccessToken == "" {
		return entity.AuthStatus{HasRefreshToken: token != nil && token.RefreshToken != ""}, nil
	}

	status := entity.AuthStatus{
		LoggedIn:        true,
		ExpiresAt:       token.Expiry,
		ExpiringSoon:    oauth.ExpiresWithin(token, time.Now(), ExpiryWarning),
		HasRefreshToken: token.RefreshToken != "",
	}
	if claims, err := oauth.ParseClaims(token.AccessToken); err == nil {
		status.Subject = claims.Subject
	} else {
		s.logger.Debug("Access token is not a readable JWT", "error", err)
	}
	return status, nil
}
