package main

import (
	"strings"

	"skyfare/internal/domain/entity"

	"github.com/spf13/cobra"
)

// flightFlags describe one flight on the command line
type flightFlags struct {
	carrier     string
	carrierName string
	number      string
	from        string
	to          string
	depart      string
	returning   string
	class       string
	currency    string
	price       float64
}

func (f *flightFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.carrier, "carrier", "", "Carrier code, e.g. KE")
	cmd.Flags().StringVar(&f.carrierName, "carrier-name", "", "Carrier name")
	cmd.Flags().StringVar(&f.number, "flight", "", "Flight number, e.g. 707")
	cmd.Flags().StringVar(&f.from, "from", "", "Origin airport code")
	cmd.Flags().StringVar(&f.to, "to", "", "Destination airport code")
	cmd.Flags().StringVar(&f.depart, "depart", "", "Outbound departure date or timestamp")
	cmd.Flags().StringVar(&f.returning, "return", "", "Return departure date or timestamp")
	cmd.Flags().StringVar(&f.class, "class", string(entity.FareEconomy), "Fare class")
	cmd.Flags().StringVar(&f.currency, "currency", "", "Price currency")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Total price")
	for _, name := range []string{"carrier", "flight", "from", "to", "depart"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (f *flightFlags) record() entity.FlightRecord {
	return entity.FlightRecord{
		CarrierCode:           f.carrier,
		CarrierName:           strings.TrimSpace(f.carrierName),
		FlightNumber:          f.number,
		OriginAirport:         f.from,
		DestinationAirport:    f.to,
		OutboundDepartureTime: f.depart,
		ReturnDepartureTime:   f.returning,
		FareClass:             entity.FareClass(f.class),
		Currency:              f.currency,
		TotalPrice:            f.price,
	}.Canonical()
}
