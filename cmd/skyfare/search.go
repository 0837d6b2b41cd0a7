package main

import (
	"context"
	"fmt"

	"skyfare/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		req      entity.SearchRequest
		class    string
		favorite int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search flights, cheapest first",
		Long: "Search flights, cheapest first. Results marked * are favorites and W are watched.\n" +
			"The origin defaults to the saved default departure airport.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				if req.OriginAirport == "" {
					req.OriginAirport = app.preferences.DefaultDepartureAirport(ctx)
				}
				req.FareClass = entity.FareClass(class)

				results, err := app.search.Search(ctx, req)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintln(out, "No flights found")
					return nil
				}
				for i, result := range results {
					fmt.Fprintf(out, "%3d ", i+1)
					printRecord(out, result.Key, result.Record, marks(result))
				}

				if favorite > 0 {
					if favorite > len(results) {
						return fmt.Errorf("result %d does not exist", favorite)
					}
					record := results[favorite-1].Record
					if app.favorites.Toggle(ctx, record) {
						fmt.Fprintf(out, "Saved %s%s to favorites\n", record.CarrierCode, record.FlightNumber)
					} else {
						fmt.Fprintf(out, "Removed %s%s from favorites\n", record.CarrierCode, record.FlightNumber)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.OriginAirport, "from", "", "Origin airport code")
	cmd.Flags().StringVar(&req.DestinationAirport, "to", "", "Destination airport code")
	cmd.Flags().StringVar(&req.DepartureDate, "depart", "", "Departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.ReturnDate, "return", "", "Return date (YYYY-MM-DD), empty for one-way")
	cmd.Flags().IntVar(&req.Adults, "adults", 1, "Number of adults")
	cmd.Flags().StringVar(&class, "class", string(entity.FareEconomy), "Fare class")
	cmd.Flags().BoolVar(&req.NonStop, "non-stop", false, "Only non-stop flights")
	cmd.Flags().IntVar(&req.Max, "max", 50, "Maximum number of offers")
	cmd.Flags().IntVar(&favorite, "favorite", 0, "Toggle result N as a favorite")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("depart")

	return cmd
}

func marks(result entity.SearchResult) string {
	m := ""
	if result.IsFavorite {
		m += "*"
	}
	if result.IsWatched {
		m += "W"
	}
	return m
}
