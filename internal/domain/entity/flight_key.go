package entity

import (
	"encoding/base64"
	"strings"

	"skyfare/pkg/utils"
)

// keyDelimiter separates the key fields; Canonical strips it from them
const keyDelimiter = "|"

// DedupKey derives the opaque identity of a flight from
// carrier, flight number, route, travel dates and fare class.
// Timestamps contribute their date only, so the same flight seen at
// different times of day keys identically. Absent fields stay in place
// as empty strings.
//
// Search results and server alerts must both be normalized into a
// FlightRecord before keying or dedup across the two breaks.
func DedupKey(r FlightRecord) string {
	fields := []string{
		keyField(r.CarrierCode),
		keyField(r.FlightNumber),
		keyField(r.OriginAirport),
		keyField(r.DestinationAirport),
		utils.DateOnly(keyField(r.OutboundDepartureTime)),
		utils.DateOnly(keyField(r.ReturnDepartureTime)),
		keyField(string(r.FareClass)),
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, keyDelimiter)))
}

// DecodeKey returns the joined key fields, mostly for logs
func DecodeKey(key string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
