package api

import (
	"context"
	"net/http"
	"net/url"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"

	"github.com/pkg/errors"
)

const alertsPath = "/alerts"

// AlertAPI implements the remote price alert operations. Every call is
// authenticated.
type AlertAPI struct {
	client *Client
}

// NewAlertAPI creates the alert endpoint wrapper
func NewAlertAPI(client *Client) repository.AlertRepository {
	return &AlertAPI{client: client}
}

type registerAlertBody struct {
	flightPayload
	Adults  int  `json:"adults"`
	NonStop bool `json:"nonStop"`
}

type setAllBody struct {
	Active bool `json:"active"`
}

// List returns all alerts of the current user
func (a *AlertAPI) List(ctx context.Context) ([]entity.Alert, error) {
	var resp envelope[[]alertPayload]
	if err := a.client.Do(ctx, http.MethodGet, alertsPath, nil, true, &resp); err != nil {
		return nil, err
	}
	return toAlerts(resp.Data), nil
}

// Register creates an alert for the flight. A reply without an id is malformed.
func (a *AlertAPI) Register(ctx context.Context, req entity.AlertRequest) (*entity.Alert, error) {
	body := registerAlertBody{
		flightPayload: toFlightPayload(req.Flight),
		Adults:        req.Adults,
		NonStop:       req.NonStop,
	}

	var resp envelope[*alertPayload]
	if err := a.client.Do(ctx, http.MethodPost, alertsPath, body, true, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return nil, &domainerrors.MalformedResponseError{
			Endpoint: alertsPath,
			Cause:    errors.New("alert id missing"),
		}
	}

	alert := resp.Data.toEntity()
	return &alert, nil
}

// Toggle flips the active flag of one alert and returns the updated alert
func (a *AlertAPI) Toggle(ctx context.Context, id string) (*entity.Alert, error) {
	path := alertPath(id)

	var resp envelope[*alertPayload]
	if err := a.client.Do(ctx, http.MethodPatch, path, nil, true, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return nil, &domainerrors.MalformedResponseError{
			Endpoint: path,
			Cause:    errors.New("alert missing from response"),
		}
	}

	alert := resp.Data.toEntity()
	return &alert, nil
}

// Delete removes one alert
func (a *AlertAPI) Delete(ctx context.Context, id string) error {
	return a.client.Do(ctx, http.MethodDelete, alertPath(id), nil, true, nil)
}

// SetAll activates or deactivates every alert and returns the resulting list
func (a *AlertAPI) SetAll(ctx context.Context, active bool) ([]entity.Alert, error) {
	var resp envelope[[]alertPayload]
	if err := a.client.Do(ctx, http.MethodPatch, alertsPath, setAllBody{Active: active}, true, &resp); err != nil {
		return nil, err
	}
	return toAlerts(resp.Data), nil
}

func alertPath(id string) string {
	return alertsPath + "/" + url.PathEscape(id)
}

func toAlerts(payloads []alertPayload) []entity.Alert {
	alerts := make([]entity.Alert, 0, len(payloads))
	for _, p := range payloads {
		alerts = append(alerts, p.toEntity())
	}
	return alerts
}
