package api

import (
	"strings"
	"time"

	"skyfare/internal/domain/entity"
	"skyfare/pkg/utils"
)

// flightPayload is every field name the backend uses for a flight.
// Search offers send departureTime/arrivalTime/duration, alerts send the
// outbound*/return* names or only the travel dates; normalize folds them
// into one canonical record so both key identically.
type flightPayload struct {
	CarrierCode  string `json:"carrierCode"`
	CarrierName  string `json:"carrierName,omitempty"`
	FlightNumber string `json:"flightNumber"`

	Origin                  string `json:"origin,omitempty"`
	Destination             string `json:"destination,omitempty"`
	OriginLocationCode      string `json:"originLocationCode,omitempty"`
	DestinationLocationCode string `json:"destinationLocationCode,omitempty"`

	DepartureTime         string `json:"departureTime,omitempty"`
	ArrivalTime           string `json:"arrivalTime,omitempty"`
	Duration              string `json:"duration,omitempty"`
	OutboundDepartureTime string `json:"outboundDepartureTime,omitempty"`
	OutboundArrivalTime   string `json:"outboundArrivalTime,omitempty"`
	OutboundDuration      string `json:"outboundDuration,omitempty"`
	DepartureDate         string `json:"departureDate,omitempty"`

	ReturnDepartureTime string `json:"returnDepartureTime,omitempty"`
	ReturnArrivalTime   string `json:"returnArrivalTime,omitempty"`
	ReturnDuration      string `json:"returnDuration,omitempty"`
	ReturnDate          string `json:"returnDate,omitempty"`

	TravelClass           string `json:"travelClass,omitempty"`
	FareClass             string `json:"fareClass,omitempty"`
	NumberOfBookableSeats int    `json:"numberOfBookableSeats,omitempty"`
	SeatsAvailable        int    `json:"seatsAvailable,omitempty"`
	Refundable            bool   `json:"refundable,omitempty"`
	Changeable            bool   `json:"changeable,omitempty"`

	Currency       string   `json:"currency,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	TotalPrice     *float64 `json:"totalPrice,omitempty"`
	RoundTripTotal *float64 `json:"roundTripTotal,omitempty"`
	TripType       string   `json:"tripType,omitempty"`
	IsRoundTrip    bool     `json:"isRoundTrip,omitempty"`
}

// normalize returns the canonical record for any flight-like payload
func (p flightPayload) normalize() entity.FlightRecord {
	record := entity.FlightRecord{
		CarrierCode:        p.CarrierCode,
		CarrierName:        strings.TrimSpace(p.CarrierName),
		FlightNumber:       p.FlightNumber,
		OriginAirport:      utils.FirstNonEmpty(p.OriginLocationCode, p.Origin),
		DestinationAirport: utils.FirstNonEmpty(p.DestinationLocationCode, p.Destination),

		OutboundDepartureTime: utils.FirstNonEmpty(p.OutboundDepartureTime, p.DepartureTime, p.DepartureDate),
		OutboundArrivalTime:   utils.FirstNonEmpty(p.OutboundArrivalTime, p.ArrivalTime),
		OutboundDuration:      utils.FirstNonEmpty(p.OutboundDuration, p.Duration),

		ReturnDepartureTime: utils.FirstNonEmpty(p.ReturnDepartureTime, p.ReturnDate),
		ReturnArrivalTime:   strings.TrimSpace(p.ReturnArrivalTime),
		ReturnDuration:      strings.TrimSpace(p.ReturnDuration),

		FareClass:      entity.FareClass(utils.FirstNonEmpty(p.TravelClass, p.FareClass)),
		SeatsAvailable: p.SeatsAvailable,
		Refundable:     p.Refundable,
		Changeable:     p.Changeable,
		Currency:       p.Currency,
		TotalPrice:     firstPrice(p.RoundTripTotal, p.TotalPrice, p.Price),
	}
	if record.SeatsAvailable == 0 {
		record.SeatsAvailable = p.NumberOfBookableSeats
	}
	return record.Canonical()
}

func firstPrice(prices ...*float64) float64 {
	for _, p := range prices {
		if p != nil {
			return *p
		}
	}
	return 0
}

// toFlightPayload is the request shape for a record, using the outbound*
// names the alert endpoints expect
func toFlightPayload(r entity.FlightRecord) flightPayload {
	r = r.Canonical()
	price := r.TotalPrice
	return flightPayload{
		CarrierCode:             r.CarrierCode,
		CarrierName:             r.CarrierName,
		FlightNumber:            r.FlightNumber,
		OriginLocationCode:      r.OriginAirport,
		DestinationLocationCode: r.DestinationAirport,
		OutboundDepartureTime:   r.OutboundDepartureTime,
		OutboundArrivalTime:     r.OutboundArrivalTime,
		OutboundDuration:        r.OutboundDuration,
		DepartureDate:           utils.DateOnly(r.OutboundDepartureTime),
		ReturnDepartureTime:     r.ReturnDepartureTime,
		ReturnArrivalTime:       r.ReturnArrivalTime,
		ReturnDuration:          r.ReturnDuration,
		ReturnDate:              utils.DateOnly(r.ReturnDepartureTime),
		TravelClass:             string(r.FareClass),
		SeatsAvailable:          r.SeatsAvailable,
		Refundable:              r.Refundable,
		Changeable:              r.Changeable,
		Currency:                r.Currency,
		TotalPrice:              &price,
		TripType:                string(r.TripType),
		IsRoundTrip:             r.IsRoundTrip(),
	}
}

// alertPayload is an alert as the backend sends it
type alertPayload struct {
	ID string `json:"id"`
	flightPayload
	Adults           int        `json:"adults,omitempty"`
	NonStop          bool       `json:"nonStop,omitempty"`
	LastCheckedPrice *float64   `json:"lastCheckedPrice,omitempty"`
	Active           *bool      `json:"active,omitempty"`
	CreatedAt        time.Time  `json:"createdAt,omitempty"`
	LastCheckedAt    *time.Time `json:"lastCheckedAt,omitempty"`
}

func (p alertPayload) toEntity() entity.Alert {
	alert := entity.Alert{
		ID:            p.ID,
		Flight:        p.flightPayload.normalize(),
		Adults:        p.Adults,
		NonStop:       p.NonStop,
		Active:        true,
		CreatedAt:     p.CreatedAt,
		LastCheckedAt: p.LastCheckedAt,
	}
	if p.Active != nil {
		alert.Active = *p.Active
	}
	if p.LastCheckedPrice != nil {
		alert.LastCheckedPrice = *p.LastCheckedPrice
	} else {
		alert.LastCheckedPrice = alert.Flight.TotalPrice
	}
	if alert.Adults == 0 {
		alert.Adults = 1
	}
	return alert
}

// envelope is the {success, data, error} wrapper the backend uses
type envelope[T any] struct {
	Success *bool `json:"success,omitempty"`
	Data    T     `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}
