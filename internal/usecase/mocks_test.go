package usecase

import (
	"context"

	"skyfare/internal/domain/entity"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

type mockAlertRepository struct {
	mock.Mock
}

func (m *mockAlertRepository) List(ctx context.Context) ([]entity.Alert, error) {
	args := m.Called(ctx)
	alerts, _ := args.Get(0).([]entity.Alert)
	return alerts, args.Error(1)
}

func (m *mockAlertRepository) Register(ctx context.Context, req entity.AlertRequest) (*entity.Alert, error) {
	args := m.Called(ctx, req)
	alert, _ := args.Get(0).(*entity.Alert)
	return alert, args.Error(1)
}

func (m *mockAlertRepository) Toggle(ctx context.Context, id string) (*entity.Alert, error) {
	args := m.Called(ctx, id)
	alert, _ := args.Get(0).(*entity.Alert)
	return alert, args.Error(1)
}

func (m *mockAlertRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAlertRepository) SetAll(ctx context.Context, active bool) ([]entity.Alert, error) {
	args := m.Called(ctx, active)
	alerts, _ := args.Get(0).([]entity.Alert)
	return alerts, args.Error(1)
}

type mockSearchRepository struct {
	mock.Mock
}

func (m *mockSearchRepository) Search(ctx context.Context, req entity.SearchRequest) ([]entity.FlightRecord, error) {
	args := m.Called(ctx, req)
	records, _ := args.Get(0).([]entity.FlightRecord)
	return records, args.Error(1)
}

type mockAuthRepository struct {
	mock.Mock
}

func (m *mockAuthRepository) Login(ctx context.Context, email, password string) (*oauth2.Token, error) {
	args := m.Called(ctx, email, password)
	token, _ := args.Get(0).(*oauth2.Token)
	return token, args.Error(1)
}

func (m *mockAuthRepository) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, drop entity.PriceDrop, text string) error {
	return m.Called(ctx, drop, text).Error(0)
}

// failingKV fails every write and stores nothing
type failingKV struct {
	err error
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	return f.err
}

func (f *failingKV) Delete(ctx context.Context, key string) error {
	return f.err
}

func sampleFlight() entity.FlightRecord {
	return entity.FlightRecord{
		CarrierCode:           "KE",
		CarrierName:           "Korean Air",
		FlightNumber:          "707",
		OriginAirport:         "ICN",
		DestinationAirport:    "NRT",
		OutboundDepartureTime: "2025-09-10T09:30",
		ReturnDepartureTime:   "2025-09-12T18:00",
		FareClass:             entity.FareEconomy,
		Currency:              "KRW",
		TotalPrice:            610000,
	}
}

func flightNumbered(number string, price float64) entity.FlightRecord {
	r := sampleFlight()
	r.FlightNumber = number
	r.TotalPrice = price
	return r
}
