package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved flights",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved flights",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				records := app.favorites.List()
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No favorites saved")
					return nil
				}
				for _, record := range records {
					printRecord(out, record.Key(), record, "*")
				}
				return nil
			})
		},
	})

	var flight flightFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Save a flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				record := flight.record()
				app.favorites.Add(ctx, record)
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s%s (key %s)\n", record.CarrierCode, record.FlightNumber, record.Key())
				return nil
			})
		},
	}
	flight.bind(addCmd)
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a saved flight by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				if !app.favorites.RemoveKey(ctx, args[0]) {
					return fmt.Errorf("no favorite with key %s", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Favorite removed")
				return nil
			})
		},
	})

	return cmd
}
