package main

import (
	"context"
	"fmt"
	"net/http"

	"skyfare/internal/domain/repository"
	"skyfare/internal/infrastructure/config"
	"skyfare/internal/infrastructure/oauth"
	"skyfare/internal/infrastructure/persistence"
	"skyfare/internal/interface/api"
	kvrepo "skyfare/internal/interface/repository"
	"skyfare/internal/usecase"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// application holds the wired services for one CLI invocation
type application struct {
	cfg      *config.Config
	log      *logger.ZapLogger
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	favorites   *usecase.FavoritesService
	alerts      *usecase.AlertService
	search      *usecase.SearchService
	auth        *usecase.AuthService
	preferences *usecase.PreferenceService
	watcher     *usecase.PriceWatcher

	closers []func()
}

func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verboseFlag {
		cfg.LogLevel = "debug"
	}

	app := &application{
		cfg:      cfg,
		log:      logger.NewLoggerWithLevel(cfg.LogLevel),
		registry: prometheus.NewRegistry(),
	}
	app.metrics = metrics.NewMetrics("skyfare", app.registry)
	app.closers = append(app.closers, func() { _ = app.log.Sync() })

	kv, err := app.openStorage(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	tokens := oauth.NewTokenStore(kv, app.log)
	client := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, tokens, app.log, app.metrics)

	favoritesStore := usecase.NewFlightStore("favorites", repository.KeyFavorites, kv,
		kvrepo.NewMapFlightRecordRepository(), app.log, app.metrics)
	alertStore := usecase.NewFlightStore("alerts", repository.KeyPriceAlerts, kv,
		kvrepo.NewMapFlightRecordRepository(), app.log, app.metrics)
	for _, store := range []*usecase.FlightStore{favoritesStore, alertStore} {
		if err := store.Load(ctx); err != nil {
			app.log.Warn("Starting with an empty local store", "error", err)
		}
	}

	var notifier repository.NotificationRepository
	if cfg.NotifyWebhookURL != "" {
		notifier = kvrepo.NewWebhookNotifier(cfg.NotifyWebhookURL, cfg.NotifyToken, app.log)
	} else {
		notifier = kvrepo.NewLogNotifier(app.log)
	}

	app.favorites = usecase.NewFavoritesService(favoritesStore, app.log)
	app.alerts = usecase.NewAlertService(api.NewAlertAPI(client), alertStore, app.log, app.metrics)
	app.search = usecase.NewSearchService(api.NewFlightSearchAPI(client), favoritesStore, alertStore, app.log, app.metrics)
	app.auth = usecase.NewAuthService(api.NewAuthAPI(client), tokens, app.log)
	app.preferences = usecase.NewPreferenceService(kv, app.log)
	app.watcher = usecase.NewPriceWatcher(app.alerts, notifier, app.log, app.metrics)

	return app, nil
}

// openStorage selects the key/value backend from STORAGE_DRIVER
func (a *application) openStorage(ctx context.Context) (repository.KeyValueRepository, error) {
	switch a.cfg.StorageDriver {
	case config.StorageMemory:
		return kvrepo.NewMemoryKVRepository(), nil

	case config.StorageMongo:
		a.log.Debug("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, a.cfg.MongoURI, a.cfg.MongoDB, a.cfg.MongoUser, a.cfg.MongoPassword)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				a.log.Error("MongoDB disconnect error", "error", err)
			}
		})
		return kvrepo.NewMongoKVRepository(ctx, db, "kv_store")

	case config.StoragePostgres:
		a.log.Debug("Connecting to PostgreSQL")
		db, err := persistence.NewPostgresDB(a.cfg.PostgresURI)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := persistence.ClosePostgresDB(db); err != nil {
				a.log.Error("PostgreSQL close error", "error", err)
			}
		})
		return kvrepo.NewGormKVRepository(db)

	default:
		return kvrepo.NewFileKVRepository(a.cfg.StoragePath), nil
	}
}

// Close releases storage connections in reverse order
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
