package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyfare/internal/infrastructure/router"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll price alerts and report price drops until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				log := app.log
				if interval <= 0 {
					interval = app.cfg.AlertPollInterval
				}

				ctx, cancel := context.WithCancel(ctx)
				defer cancel()

				server := router.NewServer(app.cfg.MetricsPort,
					router.NewMetricsRouter(app.registry, log),
					app.cfg.ReadTimeout, app.cfg.WriteTimeout)

				go func() {
					log.Info("Starting metrics server", "port", app.cfg.MetricsPort)
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.Error("Metrics server error", "error", err)
					}
				}()

				watchErr := make(chan error, 1)
				go func() {
					watchErr <- app.watcher.Start(ctx, interval)
				}()

				sigChan := make(chan os.Signal, 1)
				signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(sigChan)

				var err error
				select {
				case sig := <-sigChan:
					log.Info("Received signal", "signal", sig)
				case err = <-watchErr:
				}

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()

				if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
					log.Error("Metrics server shutdown error", "error", shutdownErr)
				}

				cancel()
				log.Info("Price watcher stopped")
				return err
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (default ALERT_POLL_INTERVAL)")
	return cmd
}
