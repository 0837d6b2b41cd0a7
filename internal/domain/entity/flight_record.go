// internal/domain/entity/flight_record.go
package entity

import (
	"strings"
)

// TripType tags a record as one-way or round trip
type TripType string

const (
	TripOneWay    TripType = "ONE_WAY"
	TripRoundTrip TripType = "ROUND_TRIP"
)

// FareClass is the cabin category of a fare
type FareClass string

const (
	FareEconomy        FareClass = "ECONOMY"
	FarePremiumEconomy FareClass = "PREMIUM_ECONOMY"
	FareBusiness       FareClass = "BUSINESS"
	FareFirst          FareClass = "FIRST"
)

// FlightRecord is one priced flight offer. Timestamps are local airport
// times as sent by the backend (e.g. 2025-09-10T09:30).
// TotalPrice is the round-trip total for round trips, the one-way fare otherwise.
type FlightRecord struct {
	CarrierCode        string `json:"carrierCode" bson:"carrierCode"`
	CarrierName        string `json:"carrierName,omitempty" bson:"carrierName,omitempty"`
	FlightNumber       string `json:"flightNumber" bson:"flightNumber"`
	OriginAirport      string `json:"originAirport" bson:"originAirport"`
	DestinationAirport string `json:"destinationAirport" bson:"destinationAirport"`

	OutboundDepartureTime string `json:"outboundDepartureTime" bson:"outboundDepartureTime"`
	OutboundArrivalTime   string `json:"outboundArrivalTime,omitempty" bson:"outboundArrivalTime,omitempty"`
	OutboundDuration      string `json:"outboundDuration,omitempty" bson:"outboundDuration,omitempty"`

	ReturnDepartureTime string `json:"returnDepartureTime,omitempty" bson:"returnDepartureTime,omitempty"`
	ReturnArrivalTime   string `json:"returnArrivalTime,omitempty" bson:"returnArrivalTime,omitempty"`
	ReturnDuration      string `json:"returnDuration,omitempty" bson:"returnDuration,omitempty"`

	FareClass      FareClass `json:"fareClass" bson:"fareClass"`
	SeatsAvailable int       `json:"seatsAvailable" bson:"seatsAvailable"`
	Refundable     bool      `json:"refundable" bson:"refundable"`
	Changeable     bool      `json:"changeable" bson:"changeable"`
	Currency       string    `json:"currency" bson:"currency"`
	TotalPrice     float64   `json:"totalPrice" bson:"totalPrice"`
	TripType       TripType  `json:"tripType" bson:"tripType"`
}

// IsRoundTrip reports whether the record carries a return leg
func (r FlightRecord) IsRoundTrip() bool {
	return r.ReturnDepartureTime != ""
}

// Canonical returns the record with codes trimmed and upper-cased and the
// trip type derived from the presence of a return leg. Key fields never
// carry the key delimiter.
func (r FlightRecord) Canonical() FlightRecord {
	r.CarrierCode = upper(r.CarrierCode)
	r.FlightNumber = keyField(r.FlightNumber)
	r.OriginAirport = upper(r.OriginAirport)
	r.DestinationAirport = upper(r.DestinationAirport)
	r.OutboundDepartureTime = keyField(r.OutboundDepartureTime)
	r.ReturnDepartureTime = keyField(r.ReturnDepartureTime)
	r.FareClass = FareClass(upper(string(r.FareClass)))
	r.Currency = upper(r.Currency)

	if r.IsRoundTrip() {
		r.TripType = TripRoundTrip
	} else {
		r.TripType = TripOneWay
	}
	return r
}

// Key is the dedup identity of the record
func (r FlightRecord) Key() string {
	return DedupKey(r.Canonical())
}

func upper(s string) string {
	return strings.ToUpper(keyField(s))
}

func keyField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, keyDelimiter, ""))
}
