package usecase

import (
	"context"
	"sync"
	"time"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"
	"skyfare/templates"
)

// PriceWatcher polls the alert list and reports alerts whose last checked
// price fell since the previous poll
type PriceWatcher struct {
	alerts   *AlertService
	notifier repository.NotificationRepository
	logger   logger.Logger
	metrics  *metrics.Metrics

	mu   sync.Mutex
	seen map[string]float64
}

// NewPriceWatcher creates a new price watcher
func NewPriceWatcher(
	alerts *AlertService,
	notifier repository.NotificationRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *PriceWatcher {
	return &PriceWatcher{
		alerts:   alerts,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		seen:     make(map[string]float64),
	}
}

// Poll fetches the alerts once and notifies every price drop. The first
// price seen for an alert is its baseline. Notification failures are logged.
func (w *PriceWatcher) Poll(ctx context.Context) ([]entity.PriceDrop, error) {
	w.metrics.AlertPolls.Inc()

	alerts, err := w.alerts.List(ctx)
	if err != nil {
		return nil, err
	}

	drops := w.detect(alerts)
	for _, drop := range drops {
		w.metrics.PriceDrops.Inc()
		if err := w.notifier.Notify(ctx, drop, templates.FormatPriceDrop(drop)); err != nil {
			w.metrics.ErrorsCount.WithLabelValues("notify").Inc()
			w.logger.Error("Failed to send price drop notification",
				"alertId", drop.Alert.ID,
				"error", err)
		}
	}

	w.logger.Debug("Alert poll completed", "alerts", len(alerts), "drops", len(drops))
	return drops, nil
}

func (w *PriceWatcher) detect(alerts []entity.Alert) []entity.PriceDrop {
	w.mu.Lock()
	defer w.mu.Unlock()

	var drops []entity.PriceDrop
	current := make(map[string]float64, len(alerts))
	for _, alert := range alerts {
		if !alert.Active || alert.LastCheckedPrice <= 0 {
			continue
		}
		current[alert.ID] = alert.LastCheckedPrice

		previous, ok := w.seen[alert.ID]
		if ok && alert.LastCheckedPrice < previous {
			drops = append(drops, entity.PriceDrop{
				Alert:         alert,
				PreviousPrice: previous,
				CurrentPrice:  alert.LastCheckedPrice,
			})
		}
	}
	// deleted and paused alerts lose their baseline
	w.seen = current
	return drops
}

// Start polls immediately and then on every interval until ctx is done.
// An expired session stops the loop.
func (w *PriceWatcher) Start(ctx context.Context, interval time.Duration) error {
	w.logger.Info("Starting price watcher", "interval", interval)

	if err := w.pollOnce(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Price watcher stopped")
			return nil
		case <-ticker.C:
			if err := w.pollOnce(ctx); err != nil {
				return err
			}
		}
	}
}

// pollOnce returns only errors that end the loop
func (w *PriceWatcher) pollOnce(ctx context.Context) error {
	_, err := w.Poll(ctx)
	if err == nil || ctx.Err() != nil {
		return nil
	}
	if domainerrors.IsAuthError(err) {
		w.logger.Error("Session expired, log in again", "error", err)
		return err
	}
	w.logger.Error("Error polling alerts", "error", err)
	return nil
}
