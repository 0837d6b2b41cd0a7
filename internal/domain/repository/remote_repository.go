package repository

import (
	"context"

	"skyfare/internal/domain/entity"

	"golang.org/x/oauth2"
)

// FlightSearchRepository defines the remote flight search
type FlightSearchRepository interface {
	Search(ctx context.Context, req entity.SearchRequest) ([]entity.FlightRecord, error)
}

// AlertRepository defines the remote price alert operations
type AlertRepository interface {
	List(ctx context.Context) ([]entity.Alert, error)
	Register(ctx context.Context, req entity.AlertRequest) (*entity.Alert, error)
	Toggle(ctx context.Context, id string) (*entity.Alert, error)
	Delete(ctx context.Context, id string) error
	SetAll(ctx context.Context, active bool) ([]entity.Alert, error)
}

// AuthRepository defines the remote authentication operations
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*oauth2.Token, error)
	Logout(ctx context.Context) error
}

// TokenRepository persists the access and refresh tokens
type TokenRepository interface {
	// Token returns nil, nil when no credential is stored
	Token(ctx context.Context) (*oauth2.Token, error)
	SaveToken(ctx context.Context, token *oauth2.Token) error
	Clear(ctx context.Context) error
}
