package templates

import (
	"fmt"
	"strconv"
	"strings"

	"skyfare/internal/domain/entity"
	"skyfare/pkg/utils"
)

const PRICE_DROP_TEMPLATE = `Price drop on %s %s
%s → %s, departing %s%s
%s, %d adult(s)
Was %s, now %s (save %s, %s%%)`

const FLIGHT_LINE_TEMPLATE = "%-4s %-6s %s-%s  %s%s  %-15s %12s"

// FormatPriceDrop renders the notification text for a price drop
func FormatPriceDrop(drop entity.PriceDrop) string {
	flight := drop.Alert.Flight

	returning := ""
	if flight.IsRoundTrip() {
		returning = ", returning " + utils.DateOnly(flight.ReturnDepartureTime)
	}

	percent := 0.0
	if drop.PreviousPrice > 0 {
		percent = drop.Savings() / drop.PreviousPrice * 100
	}

	return fmt.Sprintf(PRICE_DROP_TEMPLATE,
		flightLabel(flight), fareLabel(flight.FareClass),
		flight.OriginAirport, flight.DestinationAirport,
		utils.DateOnly(flight.OutboundDepartureTime), returning,
		tripLabel(flight), drop.Alert.Adults,
		FormatPrice(flight.Currency, drop.PreviousPrice),
		FormatPrice(flight.Currency, drop.CurrentPrice),
		FormatPrice(flight.Currency, drop.Savings()),
		strconv.FormatFloat(percent, 'f', 1, 64))
}

// FormatFlightLine renders one record as a fixed-width listing row
func FormatFlightLine(record entity.FlightRecord) string {
	returning := ""
	if record.IsRoundTrip() {
		returning = " / " + utils.DateOnly(record.ReturnDepartureTime)
	}
	return fmt.Sprintf(FLIGHT_LINE_TEMPLATE,
		record.CarrierCode, record.FlightNumber,
		record.OriginAirport, record.DestinationAirport,
		utils.DateOnly(record.OutboundDepartureTime), returning,
		fareLabel(record.FareClass),
		FormatPrice(record.Currency, record.TotalPrice))
}

// FormatPrice renders an amount with its currency code and thousands separators
func FormatPrice(currency string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	text := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, fraction, _ := strings.Cut(text, ".")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if fraction != "00" {
		b.WriteByte('.')
		b.WriteString(fraction)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	if currency == "" {
		return out
	}
	return currency + " " + out
}

func flightLabel(r entity.FlightRecord) string {
	label := r.CarrierCode + r.FlightNumber
	if r.CarrierName != "" {
		label += " (" + r.CarrierName + ")"
	}
	return label
}

func fareLabel(f entity.FareClass) string {
	switch f {
	case entity.FarePremiumEconomy:
		return "Premium Economy"
	case entity.FareBusiness:
		return "Business"
	case entity.FareFirst:
		return "First"
	case entity.FareEconomy:
		return "Economy"
	}
	return string(f)
}

func tripLabel(r entity.FlightRecord) string {
	if r.IsRoundTrip() {
		return "Round trip"
	}
	return "One way"
}
