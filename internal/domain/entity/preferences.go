package entity

import (
	"time"

	"skyfare/pkg/theme"
)

// Preferences are the locally persisted user settings
type Preferences struct {
	DefaultDepartureAirport string
	Theme                   theme.Preference
}

// AuthStatus describes the locally held credentials
type AuthStatus struct {
	LoggedIn        bool
	Subject         string
	ExpiresAt       time.Time
	ExpiringSoon    bool
	HasRefreshToken bool
}

// Expired reports whether the access token is past its expiry.
// Tokens without a known expiry never report expired.
func (s AuthStatus) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
