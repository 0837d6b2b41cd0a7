package usecase

import (
	"context"

	"skyfare/internal/domain/entity"
	"skyfare/pkg/logger"
)

// FavoritesService manages the locally saved flights
type FavoritesService struct {
	store  *FlightStore
	logger logger.Logger
}

// NewFavoritesService creates a new favorites service
func NewFavoritesService(store *FlightStore, logger logger.Logger) *FavoritesService {
	return &FavoritesService{
		store:  store,
		logger: logger,
	}
}

// Toggle saves the record when absent and removes it when present.
// It reports whether the record is a favorite afterwards.
func (s *FavoritesService) Toggle(ctx context.Context, record entity.FlightRecord) bool {
	if s.store.Contains(record) {
		s.store.Remove(ctx, record)
		s.logger.Info("Favorite removed", "flight", record.FlightNumber)
		return false
	}
	s.store.Add(ctx, record)
	s.logger.Info("Favorite added", "flight", record.FlightNumber)
	return true
}

func (s *FavoritesService) Add(ctx context.Context, record entity.FlightRecord) {
	s.store.Add(ctx, record)
}

// RemoveKey drops the favorite with the given dedup key and reports whether it existed
func (s *FavoritesService) RemoveKey(ctx context.Context, key string) bool {
	if !s.store.ContainsKey(key) {
		return false
	}
	s.store.RemoveKey(ctx, key)
	return true
}

func (s *FavoritesService) IsFavorite(record entity.FlightRecord) bool {
	return s.store.Contains(record)
}

// List returns the favorites in the order they were saved
func (s *FavoritesService) List() []entity.FlightRecord {
	return s.store.Values()
}

// Get returns the favorite stored under key
func (s *FavoritesService) Get(key string) (entity.FlightRecord, bool) {
	return s.store.Get(key)
}
