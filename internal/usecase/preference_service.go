package usecase

import (
	"context"
	"fmt"
	"strings"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/theme"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// PreferenceService reads and writes the user settings
type PreferenceService struct {
	kv       repository.KeyValueRepository
	validate *validator.Validate
	logger   logger.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(kv repository.KeyValueRepository, logger logger.Logger) *PreferenceService {
	return &PreferenceService{
		kv:       kv,
		validate: validator.New(),
		logger:   logger,
	}
}

// Get returns the stored settings. Unreadable values fall back to defaults.
func (s *PreferenceService) Get(ctx context.Context) entity.Preferences {
	return entity.Preferences{
		DefaultDepartureAirport: s.DefaultDepartureAirport(ctx),
		Theme:                   s.Theme(ctx),
	}
}

// DefaultDepartureAirport returns the stored airport code, or empty
func (s *PreferenceService) DefaultDepartureAirport(ctx context.Context) string {
	raw, err := s.kv.Get(ctx, repository.KeyDefaultDepartureAirport)
	if err != nil {
		s.logger.Warn("Failed to read default departure airport", "error", err)
		return ""
	}
	return string(raw)
}

// SetDefaultDepartureAirport stores a 3-letter IATA code; an empty code clears it
func (s *PreferenceService) SetDefaultDepartureAirport(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return s.kv.Delete(ctx, repository.KeyDefaultDepartureAirport)
	}
	if err := s.validate.Var(code, "len=3,alpha"); err != nil {
		return errors.Wrapf(domainerrors.ErrInvalidRequest, "airport code %q", code)
	}

	if err := s.kv.Set(ctx, repository.KeyDefaultDepartureAirport, []byte(code)); err != nil {
		return fmt.Errorf("failed to save default departure airport: %w", err)
	}
	s.logger.Info("Default departure airport updated", "airport", code)
	return nil
}

// Theme returns the stored theme preference, system when unset or unknown
func (s *PreferenceService) Theme(ctx context.Context) theme.Preference {
	raw, err := s.kv.Get(ctx, repository.KeyThemePreference)
	if err != nil {
		s.logger.Warn("Failed to read theme preference", "error", err)
		return theme.PreferenceSystem
	}
	return theme.ParsePreference(string(raw))
}

// SetTheme stores one of system, light or dark
func (s *PreferenceService) SetTheme(ctx context.Context, value string) error {
	pref := theme.Preference(strings.ToLower(strings.TrimSpace(value)))
	if !pref.Valid() {
		return errors.Wrapf(domainerrors.ErrInvalidRequest, "theme %q", value)
	}

	if err := s.kv.Set(ctx, repository.KeyThemePreference, []byte(pref)); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}
	s.logger.Info("Theme preference updated", "theme", pref)
	return nil
}
