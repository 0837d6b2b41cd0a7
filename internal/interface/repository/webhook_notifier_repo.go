package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skyfare/internal/domain/entity"
	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"
)

// WebhookNotifier posts price drop messages to a webhook
type WebhookNotifier struct {
	logger      logger.Logger
	url         string
	bearerToken string
	client      *http.Client
}

// NewWebhookNotifier creates a notifier posting to url
func NewWebhookNotifier(url, bearerToken string, logger logger.Logger) repository.NotificationRepository {
	return &WebhookNotifier{
		logger:      logger,
		url:         url,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type priceDropMessage struct {
	Type          string  `json:"type"`
	Text          string  `json:"text"`
	AlertID       string  `json:"alertId"`
	FlightKey     string  `json:"flightKey"`
	FlightNumber  string  `json:"flightNumber"`
	Currency      string  `json:"currency"`
	PreviousPrice float64 `json:"previousPrice"`
	CurrentPrice  float64 `json:"currentPrice"`
	DetectedAt    string  `json:"detectedAt"`
}

// Notify sends one price drop
func (n *WebhookNotifier) Notify(ctx context.Context, drop entity.PriceDrop, text string) error {
	flight := drop.Alert.Flight
	msg := priceDropMessage{
		Type:          "price_drop",
		Text:          text,
		AlertID:       drop.Alert.ID,
		FlightKey:     drop.Alert.Key(),
		FlightNumber:  flight.CarrierCode + flight.FlightNumber,
		Currency:      flight.Currency,
		PreviousPrice: drop.PreviousPrice,
		CurrentPrice:  drop.CurrentPrice,
		DetectedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if n.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.bearerToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("webhook returned status %d: %v", resp.StatusCode, errorBody)
	}

	n.logger.Info("Price drop notification sent",
		"alertId", drop.Alert.ID,
		"flight", msg.FlightNumber,
		"savings", drop.Savings())
	return nil
}

// LogNotifier only logs price drops
type LogNotifier struct {
	logger logger.Logger
}

// NewLogNotifier creates a notifier writing to the logger
func NewLogNotifier(logger logger.Logger) repository.NotificationRepository {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, drop entity.PriceDrop, text string) error {
	n.logger.Info(text,
		"alertId", drop.Alert.ID,
		"previousPrice", drop.PreviousPrice,
		"currentPrice", drop.CurrentPrice)
	return nil
}
