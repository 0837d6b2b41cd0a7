package templates

import (
	"strings"
	"testing"

	"skyfare/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		currency string
		amount   float64
		want     string
	}{
		{"KRW", 610000, "KRW 610,000"},
		{"USD", 1234.5, "USD 1,234.50"},
		{"EUR", 999, "EUR 999"},
		{"", 1000000, "1,000,000"},
		{"USD", -20, "USD -20"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.currency, tt.amount))
	}
}

func TestFormatPriceDrop(t *testing.T) {
	drop := entity.PriceDrop{
		Alert: entity.Alert{
			ID:     "alert-1",
			Adults: 2,
			Flight: entity.FlightRecord{
				CarrierCode:           "KE",
				CarrierName:           "Korean Air",
				FlightNumber:          "707",
				OriginAirport:         "ICN",
				DestinationAirport:    "NRT",
				OutboundDepartureTime: "2025-09-10T09:30",
				ReturnDepartureTime:   "2025-09-12T18:00",
				FareClass:             entity.FareEconomy,
				Currency:              "KRW",
			}.Canonical(),
		},
		PreviousPrice: 600000,
		CurrentPrice:  540000,
	}

	text := FormatPriceDrop(drop)
	lines := strings.Split(text, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Price drop on KE707 (Korean Air) Economy", lines[0])
	assert.Contains(t, lines[1], "departing 2025-09-10, returning 2025-09-12")
	assert.Equal(t, "Round trip, 2 adult(s)", lines[2])
	assert.Equal(t, "Was KRW 600,000, now KRW 540,000 (save KRW 60,000, 10.0%)", lines[3])
}

func TestFormatFlightLine(t *testing.T) {
	line := FormatFlightLine(entity.FlightRecord{
		CarrierCode:           "KE",
		FlightNumber:          "707",
		OriginAirport:         "ICN",
		DestinationAirport:    "NRT",
		OutboundDepartureTime: "2025-09-10T09:30",
		FareClass:             entity.FareBusiness,
		Currency:              "USD",
		TotalPrice:            420.5,
	})

	assert.Contains(t, line, "ICN-NRT")
	assert.Contains(t, line, "2025-09-10")
	assert.Contains(t, line, "Business")
	assert.True(t, strings.HasSuffix(line, "USD 420.50"))
	assert.NotContains(t, line, " / ")
}
