package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/infrastructure/oauth"
	kvrepo "skyfare/internal/interface/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const searchOfferJSON = `{
	"carrierCode": "ke",
	"carrierName": "Korean Air",
	"flightNumber": "707",
	"origin": "icn",
	"destination": "nrt",
	"departureTime": "2025-09-10T09:30:00",
	"arrivalTime": "2025-09-10T11:45:00",
	"duration": "PT2H15M",
	"returnDepartureTime": "2025-09-12T18:00:00",
	"travelClass": "ECONOMY",
	"numberOfBookableSeats": 4,
	"currency": "KRW",
	"price": 420000,
	"roundTripTotal": 610000
}`

const serverAlertJSON = `{
	"id": "alert-1",
	"carrierCode": "KE",
	"flightNumber": "707",
	"originLocationCode": "ICN",
	"destinationLocationCode": "NRT",
	"departureDate": "2025-09-10",
	"returnDate": "2025-09-12",
	"fareClass": "economy",
	"currency": "KRW",
	"totalPrice": 600000,
	"lastCheckedPrice": 590000,
	"adults": 2,
	"active": false
}`

func TestNormalize_SearchOfferAndAlertShareKey(t *testing.T) {
	var offer flightPayload
	require.NoError(t, json.Unmarshal([]byte(searchOfferJSON), &offer))
	var alert alertPayload
	require.NoError(t, json.Unmarshal([]byte(serverAlertJSON), &alert))

	fromSearch := offer.normalize()
	fromAlert := alert.toEntity()

	assert.Equal(t, fromSearch.Key(), fromAlert.Key())
	assert.Equal(t, "KE", fromSearch.CarrierCode)
	assert.Equal(t, "ICN", fromSearch.OriginAirport)
	assert.Equal(t, 610000.0, fromSearch.TotalPrice)
	assert.Equal(t, 4, fromSearch.SeatsAvailable)
	assert.Equal(t, entity.TripRoundTrip, fromSearch.TripType)

	assert.Equal(t, "alert-1", fromAlert.ID)
	assert.Equal(t, 2, fromAlert.Adults)
	assert.False(t, fromAlert.Active)
	assert.Equal(t, 590000.0, fromAlert.LastCheckedPrice)
	assert.Equal(t, entity.FareEconomy, fromAlert.Flight.FareClass)
}

func TestNormalize_AlertDefaults(t *testing.T) {
	var alert alertPayload
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","carrierCode":"KE","flightNumber":"1","totalPrice":100}`), &alert))

	got := alert.toEntity()
	assert.True(t, got.Active)
	assert.Equal(t, 1, got.Adults)
	assert.Equal(t, 100.0, got.LastCheckedPrice)
	assert.Equal(t, entity.TripOneWay, got.Flight.TripType)
}

func TestToFlightPayload_RoundTrip(t *testing.T) {
	record := entity.FlightRecord{
		CarrierCode:           "KE",
		FlightNumber:          "707",
		OriginAirport:         "ICN",
		DestinationAirport:    "NRT",
		OutboundDepartureTime: "2025-09-10T09:30",
		ReturnDepartureTime:   "2025-09-12T18:00",
		FareClass:             entity.FareEconomy,
		TotalPrice:            610000,
	}

	payload := toFlightPayload(record)
	assert.Equal(t, "2025-09-10", payload.DepartureDate)
	assert.Equal(t, "2025-09-12", payload.ReturnDate)
	assert.True(t, payload.IsRoundTrip)
	assert.Equal(t, record.Key(), payload.normalize().Key())
}

// alertBackend serves the alert endpoints from an in-memory list
func alertBackend(t *testing.T, registerReply string) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()

	r.Post("/flights/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var req entity.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ICN", req.OriginAirport)
		_, _ = io.WriteString(w, `{"data":[`+searchOfferJSON+`]}`)
	})

	r.Route("/alerts", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer token-1" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
			})
		})
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":true,"data":[`+serverAlertJSON+`]}`)
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "KE", body["carrierCode"])
			assert.Equal(t, float64(2), body["adults"])
			_, _ = io.WriteString(w, registerReply)
		})
		r.Patch("/", func(w http.ResponseWriter, r *http.Request) {
			var body setAllBody
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			active := "false"
			if body.Active {
				active = "true"
			}
			_, _ = io.WriteString(w, `{"data":[{"id":"alert-1","carrierCode":"KE","flightNumber":"707","active":`+active+`}]}`)
		})
		r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":{"id":"`+chi.URLParam(r, "id")+`","carrierCode":"KE","flightNumber":"707","active":true}}`)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") != "alert-1" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func newEndpointClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	tokens := oauth.NewTokenStore(kvrepo.NewMemoryKVRepository(), logger.NewNopLogger())
	require.NoError(t, tokens.SaveToken(context.Background(), &oauth2.Token{AccessToken: "token-1", RefreshToken: "r"}))
	return NewClient(server.URL, server.Client(), tokens, logger.NewNopLogger(), metrics.NewNopMetrics())
}

func TestFlightSearchAPI_Search(t *testing.T) {
	server := alertBackend(t, "")
	api := NewFlightSearchAPI(newEndpointClient(t, server))

	records, err := api.Search(context.Background(), entity.SearchRequest{
		OriginAirport:      "ICN",
		DestinationAirport: "NRT",
		DepartureDate:      "2025-09-10",
		Adults:             1,
		FareClass:          entity.FareEconomy,
		Max:                10,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "707", records[0].FlightNumber)
	assert.Equal(t, "Korean Air", records[0].CarrierName)
}

func TestAlertAPI_Operations(t *testing.T) {
	server := alertBackend(t, `{"data":`+serverAlertJSON+`}`)
	api := NewAlertAPI(newEndpointClient(t, server))
	ctx := context.Background()

	alerts, err := api.List(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "alert-1", alerts[0].ID)

	created, err := api.Register(ctx, entity.AlertRequest{Flight: alerts[0].Flight, Adults: 2})
	require.NoError(t, err)
	assert.Equal(t, "alert-1", created.ID)

	toggled, err := api.Toggle(ctx, "alert-9")
	require.NoError(t, err)
	assert.Equal(t, "alert-9", toggled.ID)
	assert.True(t, toggled.Active)

	all, err := api.SetAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	require.NoError(t, api.Delete(ctx, "alert-1"))
	err = api.Delete(ctx, "unknown")
	assert.Equal(t, http.StatusNotFound, domainerrors.StatusCode(err))
}

func TestAlertAPI_RegisterWithoutID(t *testing.T) {
	server := alertBackend(t, `{"data":{"carrierCode":"KE"}}`)
	api := NewAlertAPI(newEndpointClient(t, server))

	_, err := api.Register(context.Background(), entity.AlertRequest{
		Flight: entity.FlightRecord{CarrierCode: "KE", FlightNumber: "707"},
		Adults: 2,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.IsMalformed(err))
}

func TestAuthAPI_LoginAndLogout(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body loginBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"accessToken":"a1","refreshToken":"r1","expiresIn":900}`)
	})
	r.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	tokens := oauth.NewTokenStore(kvrepo.NewMemoryKVRepository(), logger.NewNopLogger())
	api := NewAuthAPI(NewClient(server.URL, server.Client(), tokens, logger.NewNopLogger(), metrics.NewNopMetrics()))

	token, err := api.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a1", token.AccessToken)
	assert.Equal(t, "r1", token.RefreshToken)
	assert.False(t, token.Expiry.IsZero())

	_, err = api.Login(context.Background(), "user@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, domainerrors.StatusCode(err))

	assert.NoError(t, api.Logout(context.Background()))
}
