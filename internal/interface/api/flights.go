package api

import (
	"context"
	"net/http"

	"skyfare/internal/domain/entity"
	"skyfare/internal/domain/repository"
)

const searchPath = "/flights/search"

// FlightSearchAPI implements the remote flight search
type FlightSearchAPI struct {
	client *Client
}

// NewFlightSearchAPI creates the flight search endpoint wrapper
func NewFlightSearchAPI(client *Client) repository.FlightSearchRepository {
	return &FlightSearchAPI{client: client}
}

// Search posts the query and returns the offers as canonical records.
// Search is public; no credential is attached.
func (a *FlightSearchAPI) Search(ctx context.Context, req entity.SearchRequest) ([]entity.FlightRecord, error) {
	var resp envelope[[]flightPayload]
	if err := a.client.Do(ctx, http.MethodPost, searchPath, req, false, &resp); err != nil {
		return nil, err
	}

	records := make([]entity.FlightRecord, 0, len(resp.Data))
	for _, offer := range resp.Data {
		records = append(records, offer.normalize())
	}
	return records, nil
}
