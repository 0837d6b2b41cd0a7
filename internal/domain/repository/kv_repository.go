package repository

import (
	"context"
)

// Fixed storage keys. A key is versioned when its value's shape changes;
// older versions are abandoned, not migrated.
const (
	KeyAccessToken             = "access_token"
	KeyRefreshToken            = "refresh_token"
	KeyDefaultDepartureAirport = "default_departure_airport"
	KeyThemePreference         = "theme_preference"
	KeyFavorites               = "favorites_v1"
	KeyPriceAlerts             = "price_alerts_v2"
)

// KeyValueRepository is the on-device key/value storage
type KeyValueRepository interface {
	// Get returns nil, nil when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
