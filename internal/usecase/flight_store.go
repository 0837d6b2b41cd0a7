package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"
)

// FlightStore is a write-through set of flight records keyed by dedup key.
// The in-memory map is authoritative; every mutation persists the whole
// set as a JSON list under one storage key. Persist failures are logged.
type FlightStore struct {
	name       string
	storageKey string
	kv         repository.KeyValueRepository
	records    repository.FlightRecordRepository
	logger     logger.Logger
	metrics    *metrics.Metrics

	mu sync.RWMutex
}

// NewFlightStore creates a store persisting under storageKey
func NewFlightStore(
	name string,
	storageKey string,
	kv repository.KeyValueRepository,
	records repository.FlightRecordRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *FlightStore {
	return &FlightStore{
		name:       name,
		storageKey: storageKey,
		kv:         kv,
		records:    records,
		logger:     logger.With("store", name),
		metrics:    metrics,
	}
}

// Load replaces the in-memory set with the persisted list. Duplicate keys
// written by older versions collapse to their first record. A missing or
// unreadable list leaves the store empty.
func (s *FlightStore) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.storageKey)
	if err != nil {
		s.persistFailed("load", err)
		return &domainerrors.PersistenceError{Op: "load", Key: s.storageKey, Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records.Reset()
	if len(raw) == 0 {
		return nil
	}

	var list []entity.FlightRecord
	if err := json.Unmarshal(raw, &list); err != nil {
		s.persistFailed("decode", err)
		return &domainerrors.PersistenceError{Op: "decode", Key: s.storageKey, Cause: err}
	}

	duplicates := 0
	for _, record := range list {
		record = record.Canonical()
		if !s.records.Put(entity.DedupKey(record), record) {
			duplicates++
		}
	}
	if duplicates > 0 {
		s.logger.Info("Dropped duplicate records on load", "duplicates", duplicates)
	}

	s.logger.Debug("Store loaded", "count", s.records.Len())
	return nil
}

// Add inserts the record; adding a present key changes nothing
func (s *FlightStore) Add(ctx context.Context, record entity.FlightRecord) {
	record = record.Canonical()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.records.Put(entity.DedupKey(record), record) {
		return
	}
	s.persist(ctx)
}

// Remove deletes the record's key; removing an absent key changes nothing
func (s *FlightStore) Remove(ctx context.Context, record entity.FlightRecord) {
	s.RemoveKey(ctx, record.Key())
}

// RemoveKey deletes key from the store
func (s *FlightStore) RemoveKey(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.records.Delete(key) {
		return
	}
	s.persist(ctx)
}

// Contains reports whether the record's key is present
func (s *FlightStore) Contains(record entity.FlightRecord) bool {
	return s.ContainsKey(record.Key())
}

func (s *FlightStore) ContainsKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records.Get(key)
	return ok
}

// Get returns the record stored under key
func (s *FlightStore) Get(key string) (entity.FlightRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records.Get(key)
}

// Values returns the records in insertion order
func (s *FlightStore) Values() []entity.FlightRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records.Values()
}

func (s *FlightStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records.Len()
}

// ResetFromServer replaces the whole set with records and persists it once
func (s *FlightStore) ResetFromServer(ctx context.Context, records []entity.FlightRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records.Reset()
	for _, record := range records {
		record = record.Canonical()
		s.records.Put(entity.DedupKey(record), record)
	}
	s.persist(ctx)
}

// persist writes the full set; callers hold the write lock
func (s *FlightStore) persist(ctx context.Context) {
	payload, err := json.Marshal(s.records.Values())
	if err != nil {
		s.persistFailed("encode", err)
		return
	}
	if err := s.kv.Set(ctx, s.storageKey, payload); err != nil {
		s.persistFailed("save", err)
	}
}

func (s *FlightStore) persistFailed(op string, err error) {
	s.metrics.PersistFailures.WithLabelValues(s.name).Inc()
	s.logger.Error("Store persistence failed",
		"op", op,
		"key", s.storageKey,
		"error", err)
}
