package entity

// SearchRequest is a flight search query.
// Dates are YYYY-MM-DD; an empty ReturnDate means one-way.
type SearchRequest struct {
	OriginAirport      string    `json:"originLocationCode" validate:"required,len=3,alpha"`
	DestinationAirport string    `json:"destinationLocationCode" validate:"required,len=3,alpha,nefield=OriginAirport"`
	DepartureDate      string    `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate         string    `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults             int       `json:"adults" validate:"min=1,max=9"`
	FareClass          FareClass `json:"travelClass" validate:"oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	NonStop            bool      `json:"nonStop,omitempty"`
	Max                int       `json:"max" validate:"min=1,max=250"`
}

// SearchResult is a normalized offer annotated with local state
type SearchResult struct {
	Record     FlightRecord
	Key        string
	IsFavorite bool
	IsWatched  bool
}
