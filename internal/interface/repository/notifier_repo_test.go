package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skyfare/internal/domain/entity"
	"skyfare/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDrop() entity.PriceDrop {
	return entity.PriceDrop{
		Alert: entity.Alert{
			ID: "alert-1",
			Flight: entity.FlightRecord{
				CarrierCode:           "BA",
				FlightNumber:          "117",
				OriginAirport:         "LHR",
				DestinationAirport:    "JFK",
				OutboundDepartureTime: "2025-06-01T08:30:00",
				FareClass:             entity.FareEconomy,
				Currency:              "GBP",
				TotalPrice:            420,
			},
			Active: true,
		},
		PreviousPrice: 500,
		CurrentPrice:  420,
	}
}

func TestWebhookNotifier_PostsMessage(t *testing.T) {
	var got priceDropMessage
	var auth string

	r := chi.NewRouter()
	r.Post("/hook", func(w http.ResponseWriter, req *http.Request) {
		auth = req.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(r)
	defer server.Close()

	drop := sampleDrop()
	notifier := NewWebhookNotifier(server.URL+"/hook", "secret", logger.NewNopLogger())

	require.NoError(t, notifier.Notify(context.Background(), drop, "Price dropped"))

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "price_drop", got.Type)
	assert.Equal(t, "Price dropped", got.Text)
	assert.Equal(t, "alert-1", got.AlertID)
	assert.Equal(t, drop.Alert.Key(), got.FlightKey)
	assert.Equal(t, "BA117", got.FlightNumber)
	assert.Equal(t, 500.0, got.PreviousPrice)
	assert.Equal(t, 420.0, got.CurrentPrice)
}

func TestWebhookNotifier_RejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "", logger.NewNopLogger())
	err := notifier.Notify(context.Background(), sampleDrop(), "Price dropped")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLogNotifier(t *testing.T) {
	notifier := NewLogNotifier(logger.NewNopLogger())
	assert.NoError(t, notifier.Notify(context.Background(), sampleDrop(), "Price dropped"))
}

func TestMapFlightRecordRepository_KeepsInsertionOrder(t *testing.T) {
	repo := NewMapFlightRecordRepository()
	first := sampleDrop().Alert.Flight
	second := first
	second.FlightNumber = "175"

	assert.True(t, repo.Put(first.Key(), first))
	assert.True(t, repo.Put(second.Key(), second))
	assert.False(t, repo.Put(first.Key(), first))
	assert.Equal(t, 2, repo.Len())
	assert.Equal(t, []entity.FlightRecord{first, second}, repo.Values())

	assert.True(t, repo.Delete(first.Key()))
	assert.False(t, repo.Delete(first.Key()))
	assert.Equal(t, []entity.FlightRecord{second}, repo.Values())

	repo.Reset()
	assert.Equal(t, 0, repo.Len())
}
