package entity

import (
	"time"
)

// Alert is the server-side price watch on one flight.
// The client only caches it; the server owns ID, Active and LastCheckedPrice.
type Alert struct {
	ID               string       `json:"id" bson:"_id,omitempty"`
	Flight           FlightRecord `json:"flight" bson:"flight"`
	Adults           int          `json:"adults" bson:"adults"`
	NonStop          bool         `json:"nonStop" bson:"nonStop"`
	LastCheckedPrice float64      `json:"lastCheckedPrice" bson:"lastCheckedPrice"`
	Active           bool         `json:"active" bson:"active"`
	CreatedAt        time.Time    `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	LastCheckedAt    *time.Time   `json:"lastCheckedAt,omitempty" bson:"lastCheckedAt,omitempty"`
}

// Key is the dedup identity of the watched flight
func (a Alert) Key() string {
	return a.Flight.Key()
}

// AlertRequest registers a new price watch for a flight
type AlertRequest struct {
	Flight  FlightRecord
	Adults  int  `validate:"min=1,max=9"`
	NonStop bool
}

// PriceDrop is reported when an alert's checked price falls
type PriceDrop struct {
	Alert         Alert
	PreviousPrice float64
	CurrentPrice  float64
}

// Savings is the absolute drop
func (d PriceDrop) Savings() float64 {
	return d.PreviousPrice - d.CurrentPrice
}
