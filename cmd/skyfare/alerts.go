package main

import (
	"context"
	"fmt"
	"strings"

	"skyfare/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newAlertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage price alerts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List price alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				alerts, err := app.alerts.List(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(alerts) == 0 {
					fmt.Fprintln(out, "No price alerts")
					return nil
				}
				for _, alert := range alerts {
					printAlert(out, alert)
				}
				return nil
			})
		},
	})

	var (
		flight  flightFlags
		adults  int
		nonStop bool
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Watch the price of a flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				if _, err := app.alerts.List(ctx); err != nil {
					return err
				}
				alert, err := app.alerts.Register(ctx, entity.AlertRequest{
					Flight:  flight.record(),
					Adults:  adults,
					NonStop: nonStop,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Watching price, alert %s\n", alert.ID)
				return nil
			})
		},
	}
	flight.bind(addCmd)
	addCmd.Flags().IntVar(&adults, "adults", 1, "Number of adults")
	addCmd.Flags().BoolVar(&nonStop, "non-stop", false, "Only non-stop fares")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Pause or resume one alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				if _, err := app.alerts.List(ctx); err != nil {
					return err
				}
				alert, err := app.alerts.Toggle(ctx, args[0])
				if err != nil {
					return err
				}
				printAlert(cmd.OutOrStdout(), *alert)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				if _, err := app.alerts.List(ctx); err != nil {
					return err
				}
				if err := app.alerts.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Alert deleted")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "all <on|off>",
		Short:     "Resume or pause every alert",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var active bool
			switch strings.ToLower(args[0]) {
			case "on":
				active = true
			case "off":
				active = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}

			return withApp(cmd, func(ctx context.Context, app *application) error {
				if _, err := app.alerts.List(ctx); err != nil {
					return err
				}
				alerts, err := app.alerts.SetAll(ctx, active)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d alert(s) updated\n", len(alerts))
				return nil
			})
		},
	})

	return cmd
}
