package api

import (
	"context"
	"net/http"
	"time"

	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	loginPath  = "/auth/login"
	logoutPath = "/auth/logout"
)

// AuthAPI implements login and logout against the backend
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth endpoint wrapper
func NewAuthAPI(client *Client) repository.AuthRepository {
	return &AuthAPI{client: client}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*oauth2.Token, error) {
	var resp refreshResponse
	if err := a.client.Do(ctx, http.MethodPost, loginPath, loginBody{Email: email, Password: password}, false, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &domainerrors.MalformedResponseError{
			Endpoint: loginPath,
			Cause:    errors.New("access token missing"),
		}
	}

	token := &oauth2.Token{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    "Bearer",
	}
	if resp.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return token, nil
}

// Logout ends the server session
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.Do(ctx, http.MethodPost, logoutPath, nil, true, nil)
}
