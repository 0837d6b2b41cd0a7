package usecase

import (
	"context"
	"testing"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	kvrepo "skyfare/internal/interface/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSearchFixture(t *testing.T) (*SearchService, *mockSearchRepository, *FlightStore, *FlightStore) {
	t.Helper()
	remote := new(mockSearchRepository)
	kv := kvrepo.NewMemoryKVRepository()
	favorites := NewFlightStore("favorites", repository.KeyFavorites, kv,
		kvrepo.NewMapFlightRecordRepository(), logger.NewNopLogger(), metrics.NewNopMetrics())
	alerts := NewFlightStore("alerts", repository.KeyPriceAlerts, kv,
		kvrepo.NewMapFlightRecordRepository(), logger.NewNopLogger(), metrics.NewNopMetrics())
	return NewSearchService(remote, favorites, alerts, logger.NewNopLogger(), metrics.NewNopMetrics()), remote, favorites, alerts
}

func TestSearchService_AppliesDefaultsAndAnnotates(t *testing.T) {
	ctx := context.Background()
	service, remote, favorites, alerts := newSearchFixture(t)

	cheap := flightNumbered("701", 100)
	pricey := flightNumbered("702", 300)
	middle := flightNumbered("703", 200)
	favorites.Add(ctx, pricey)
	alerts.Add(ctx, middle)

	remote.On("Search", ctx, mock.MatchedBy(func(req entity.SearchRequest) bool {
		return req.OriginAirport == "ICN" &&
			req.DestinationAirport == "NRT" &&
			req.Adults == DefaultAdults &&
			req.FareClass == entity.FareEconomy &&
			req.Max == DefaultMaxResults
	})).Return([]entity.FlightRecord{pricey, cheap, middle, flightNumbered("701", 50)}, nil).Once()

	results, err := service.Search(ctx, entity.SearchRequest{
		OriginAirport:      "icn",
		DestinationAirport: " nrt ",
		DepartureDate:      "2025-09-10",
		ReturnDate:         "2025-09-12",
	})
	require.NoError(t, err)
	remote.AssertExpectations(t)

	require.Len(t, results, 3)
	assert.Equal(t, "701", results[0].Record.FlightNumber)
	assert.Equal(t, 50.0, results[0].Record.TotalPrice, "the cheapest duplicate is kept")
	assert.Equal(t, "703", results[1].Record.FlightNumber)
	assert.True(t, results[1].IsWatched)
	assert.Equal(t, "702", results[2].Record.FlightNumber)
	assert.True(t, results[2].IsFavorite)
	assert.Equal(t, pricey.Key(), results[2].Key)
}

func TestSearchService_RejectsInvalidRequests(t *testing.T) {
	service, remote, _, _ := newSearchFixture(t)

	tests := []struct {
		name string
		req  entity.SearchRequest
	}{
		{"missing origin", entity.SearchRequest{DestinationAirport: "NRT", DepartureDate: "2025-09-10"}},
		{"same airports", entity.SearchRequest{OriginAirport: "ICN", DestinationAirport: "icn", DepartureDate: "2025-09-10"}},
		{"bad date", entity.SearchRequest{OriginAirport: "ICN", DestinationAirport: "NRT", DepartureDate: "10/09/2025"}},
		{"return before departure", entity.SearchRequest{OriginAirport: "ICN", DestinationAirport: "NRT", DepartureDate: "2025-09-10", ReturnDate: "2025-09-01"}},
		{"unknown class", entity.SearchRequest{OriginAirport: "ICN", DestinationAirport: "NRT", DepartureDate: "2025-09-10", FareClass: "COACH"}},
		{"too many adults", entity.SearchRequest{OriginAirport: "ICN", DestinationAirport: "NRT", DepartureDate: "2025-09-10", Adults: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Search(context.Background(), tt.req)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidRequest))
		})
	}
	remote.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchService_PropagatesRemoteError(t *testing.T) {
	ctx := context.Background()
	service, remote, _, _ := newSearchFixture(t)

	remote.On("Search", ctx, mock.Anything).Return(nil, errors.New("dial tcp: connection refused")).Once()

	_, err := service.Search(ctx, entity.SearchRequest{OriginAirport: "ICN", DestinationAirport: "NRT", DepartureDate: "2025-09-10"})
	assert.EqualError(t, err, "dial tcp: connection refused")
}

func TestFavoritesService_Toggle(t *testing.T) {
	ctx := context.Background()
	_, _, store, _ := newSearchFixture(t)
	service := NewFavoritesService(store, logger.NewNopLogger())

	flight := sampleFlight()
	assert.True(t, service.Toggle(ctx, flight))
	assert.True(t, service.IsFavorite(flight))
	assert.Len(t, service.List(), 1)

	got, ok := service.Get(flight.Key())
	require.True(t, ok)
	assert.Equal(t, "707", got.FlightNumber)

	assert.False(t, service.Toggle(ctx, flight))
	assert.False(t, service.IsFavorite(flight))

	service.Add(ctx, flight)
	assert.True(t, service.RemoveKey(ctx, flight.Key()))
	assert.False(t, service.RemoveKey(ctx, flight.Key()))
}
