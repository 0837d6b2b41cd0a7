package usecase

import (
	"context"
	"sync"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// AlertService manages price alerts. The local store holds the flights of
// active alerts so search results can be marked as watched without a
// round trip; every mutation updates it first and rolls back when the
// server call fails.
type AlertService struct {
	remote   repository.AlertRepository
	store    *FlightStore
	validate *validator.Validate
	logger   logger.Logger
	metrics  *metrics.Metrics

	mu     sync.Mutex
	alerts map[string]entity.Alert
	order  []string
}

// NewAlertService creates a new alert service
func NewAlertService(
	remote repository.AlertRepository,
	store *FlightStore,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *AlertService {
	return &AlertService{
		remote:   remote,
		store:    store,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
		alerts:   make(map[string]entity.Alert),
	}
}

// List fetches the alerts and resets the local store to the active ones.
// A malformed reply leaves the local state untouched and yields no alerts.
func (s *AlertService) List(ctx context.Context) ([]entity.Alert, error) {
	alerts, err := s.remote.List(ctx)
	if err != nil {
		if domainerrors.IsMalformed(err) {
			s.logger.Warn("Ignoring malformed alert list", "error", err)
			return nil, nil
		}
		s.metrics.ErrorsCount.WithLabelValues("list_alerts").Inc()
		return nil, err
	}

	s.replaceCache(alerts)
	s.store.ResetFromServer(ctx, activeFlights(alerts))

	s.logger.Debug("Alerts fetched", "count", len(alerts))
	return alerts, nil
}

// Cached returns the alerts from the last successful server reply
func (s *AlertService) Cached() []entity.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts := make([]entity.Alert, 0, len(s.order))
	for _, id := range s.order {
		alerts = append(alerts, s.alerts[id])
	}
	return alerts
}

// Register watches a flight. A flight that already has an alert, active or
// paused, is rejected. The flight shows as watched immediately; a failed
// call or a reply without an alert id undoes that.
func (s *AlertService) Register(ctx context.Context, req entity.AlertRequest) (*entity.Alert, error) {
	if req.Adults == 0 {
		req.Adults = 1
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidRequest, err.Error())
	}
	req.Flight = req.Flight.Canonical()

	if _, exists := s.FindByKey(req.Flight.Key()); exists || s.store.Contains(req.Flight) {
		return nil, domainerrors.ErrAlertExists
	}

	s.store.Add(ctx, req.Flight)

	alert, err := s.remote.Register(ctx, req)
	if err != nil {
		s.store.Remove(ctx, req.Flight)
		s.metrics.ErrorsCount.WithLabelValues("register_alert").Inc()
		s.logger.Warn("Alert registration failed, rolled back",
			"flight", req.Flight.FlightNumber,
			"error", err)
		return nil, err
	}

	// the server may echo the flight in another shape; keep the watched
	// entry under the server's key
	if alert.Key() != req.Flight.Key() {
		s.store.Remove(ctx, req.Flight)
		if alert.Active {
			s.store.Add(ctx, alert.Flight)
		}
	}

	s.putCache(*alert)
	s.logger.Info("Alert registered", "alertID", alert.ID, "flight", alert.Flight.FlightNumber)
	return alert, nil
}

// Toggle flips one alert between active and paused
func (s *AlertService) Toggle(ctx context.Context, id string) (*entity.Alert, error) {
	current, ok := s.cached(id)
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrAlertNotFound, "alert %s", id)
	}

	s.setWatched(ctx, id, current.Flight, !current.Active)

	updated, err := s.remote.Toggle(ctx, id)
	if err != nil {
		s.setWatched(ctx, id, current.Flight, current.Active)
		s.metrics.ErrorsCount.WithLabelValues("toggle_alert").Inc()
		s.logger.Warn("Alert toggle failed, rolled back", "alertID", id, "error", err)
		return nil, err
	}

	if updated.Active == current.Active || updated.Key() != current.Key() {
		s.setWatched(ctx, id, current.Flight, false)
		s.setWatched(ctx, id, updated.Flight, updated.Active)
	}
	s.putCache(*updated)
	return updated, nil
}

// Delete removes one alert
func (s *AlertService) Delete(ctx context.Context, id string) error {
	current, ok := s.cached(id)
	if !ok {
		return errors.Wrapf(domainerrors.ErrAlertNotFound, "alert %s", id)
	}

	s.setWatched(ctx, id, current.Flight, false)

	if err := s.remote.Delete(ctx, id); err != nil {
		if current.Active {
			s.store.Add(ctx, current.Flight)
		}
		s.metrics.ErrorsCount.WithLabelValues("delete_alert").Inc()
		s.logger.Warn("Alert delete failed, rolled back", "alertID", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.dropCacheLocked(id)
	s.mu.Unlock()

	s.logger.Info("Alert deleted", "alertID", id)
	return nil
}

// SetAll activates or pauses every alert
func (s *AlertService) SetAll(ctx context.Context, active bool) ([]entity.Alert, error) {
	previous := s.store.Values()

	optimistic := []entity.FlightRecord{}
	if active {
		for _, alert := range s.Cached() {
			optimistic = append(optimistic, alert.Flight)
		}
	}
	s.store.ResetFromServer(ctx, optimistic)

	alerts, err := s.remote.SetAll(ctx, active)
	if err != nil {
		s.store.ResetFromServer(ctx, previous)
		s.metrics.ErrorsCount.WithLabelValues("set_all_alerts").Inc()
		s.logger.Warn("Bulk alert update failed, rolled back", "active", active, "error", err)
		return nil, err
	}

	s.replaceCache(alerts)
	s.store.ResetFromServer(ctx, activeFlights(alerts))
	return alerts, nil
}

// IsWatched reports whether an active alert covers the record
func (s *AlertService) IsWatched(record entity.FlightRecord) bool {
	return s.store.Contains(record)
}

// FindByKey returns the cached alert watching the flight with the given key
func (s *AlertService) FindByKey(key string) (entity.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		if s.alerts[id].Key() == key {
			return s.alerts[id], true
		}
	}
	return entity.Alert{}, false
}

// setWatched updates the store for alert id. Unwatching keeps the entry
// while another active alert covers the same flight.
func (s *AlertService) setWatched(ctx context.Context, id string, flight entity.FlightRecord, watched bool) {
	if watched {
		s.store.Add(ctx, flight)
		return
	}
	if s.activeElsewhere(id, flight.Key()) {
		return
	}
	s.store.Remove(ctx, flight)
}

// activeElsewhere reports whether a cached alert other than id is active for key
func (s *AlertService) activeElsewhere(id, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.alerts {
		if other.ID != id && other.Active && other.Key() == key {
			return true
		}
	}
	return false
}

func (s *AlertService) cached(id string) (entity.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[id]
	return alert, ok
}

func (s *AlertService) putCache(alert entity.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alerts[alert.ID]; !exists {
		s.order = append(s.order, alert.ID)
	}
	s.alerts[alert.ID] = alert
}

func (s *AlertService) dropCacheLocked(id string) {
	delete(s.alerts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *AlertService) replaceCache(alerts []entity.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = make(map[string]entity.Alert, len(alerts))
	s.order = s.order[:0]
	for _, alert := range alerts {
		if _, exists := s.alerts[alert.ID]; !exists {
			s.order = append(s.order, alert.ID)
		}
		s.alerts[alert.ID] = alert
	}
}

func activeFlights(alerts []entity.Alert) []entity.FlightRecord {
	flights := make([]entity.FlightRecord, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Active {
			flights = append(flights, alert.Flight)
		}
	}
	return flights
}
