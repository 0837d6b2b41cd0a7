// Package api talks to the flight-search backend. Client handles bearer
// authentication and the one-shot refresh-and-retry; the endpoint wrappers
// translate backend payloads into domain entities.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	refreshPath        = "/auth/refresh"
	refreshCookieName  = "refreshToken"
	refreshFlightGroup = "refresh"
)

// Client performs requests against the backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     repository.TokenRepository
	logger     logger.Logger
	metrics    *metrics.Metrics

	refreshGroup singleflight.Group
}

// NewClient creates a new API client. A nil httpClient gets a 30s timeout client.
func NewClient(baseURL string, httpClient *http.Client, tokens repository.TokenRepository, logger logger.Logger, metrics *metrics.Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
		metrics:    metrics,
	}
}

// response is a fully read HTTP response
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// Do sends body as JSON to path and decodes the JSON reply into out.
// With auth set the stored access token is attached; a 401 then triggers
// one token refresh and a single replay of the request. A failed refresh or
// a failed replay is returned as is. Transport errors are not wrapped.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, auth bool, out interface{}) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}

	token := ""
	if auth {
		token = c.accessToken(ctx)
	}

	resp, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized && auth {
		c.logger.Info("Access token rejected, refreshing", "method", method, "path", path)

		newToken, err := c.refresh(ctx, token)
		if err != nil {
			return err
		}

		resp, err = c.send(ctx, method, path, payload, newToken)
		if err != nil {
			return err
		}
	}

	if !resp.ok() {
		return domainerrors.NewHTTPError(resp.status, resp.body)
	}

	return decodeBody(path, resp.body, out)
}

// accessToken reads the stored access token; read failures count as no token
func (c *Client) accessToken(ctx context.Context) string {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("Failed to read stored token", "error", err)
		return ""
	}
	if token == nil {
		return ""
	}
	return token.AccessToken
}

// refresh renews the access token. Concurrent callers share one refresh
// call; a caller whose rejected token was already replaced gets the
// replacement without another refresh. The shared call outlives any one
// caller's cancellation; each caller stops waiting when its own ctx ends.
func (c *Client) refresh(ctx context.Context, rejected string) (string, error) {
	refreshCtx := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan(refreshFlightGroup, func() (interface{}, error) {
		current, err := c.tokens.Token(refreshCtx)
		if err != nil {
			c.logger.Warn("Failed to read stored token before refresh", "error", err)
			current = nil
		}
		if current != nil && current.AccessToken != "" && current.AccessToken != rejected {
			return current.AccessToken, nil
		}
		return c.renew(refreshCtx, current)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			c.logger.Debug("Joined in-flight token refresh")
		}
		return res.Val.(string), nil
	}
}

// refreshResponse is the body of the refresh endpoint
type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

// renew calls the refresh endpoint with the stored refresh token, sent both
// as JSON body and as the session cookie, and persists the new access token
func (c *Client) renew(ctx context.Context, current *oauth2.Token) (string, error) {
	if current == nil || current.RefreshToken == "" {
		c.metrics.TokenRefreshes.WithLabelValues("no_credential").Inc()
		return "", domainerrors.ErrNoRefreshCredential
	}

	payload, err := encodeBody(map[string]string{"refreshToken": current.RefreshToken})
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, refreshPath, payload)
	if err != nil {
		return "", err
	}
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: current.RefreshToken})

	resp, err := c.execute(req)
	if err != nil {
		c.metrics.TokenRefreshes.WithLabelValues("error").Inc()
		return "", err
	}

	if !resp.ok() {
		c.metrics.TokenRefreshes.WithLabelValues("rejected").Inc()
		c.logger.Warn("Token refresh rejected", "status", resp.status)
		return "", errors.Wrapf(domainerrors.ErrRefreshFailed, "refresh endpoint returned status %d", resp.status)
	}

	var body refreshResponse
	if err := json.Unmarshal(resp.body, &body); err != nil || body.AccessToken == "" {
		c.metrics.TokenRefreshes.WithLabelValues("malformed").Inc()
		return "", errors.Wrap(domainerrors.ErrRefreshFailed, "refresh endpoint returned no access token")
	}

	renewed := &oauth2.Token{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		TokenType:    "Bearer",
	}
	if body.ExpiresIn > 0 {
		renewed.Expiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	}
	if err := c.tokens.SaveToken(ctx, renewed); err != nil {
		// the renewed token is still used for the replay
		c.logger.Error("Failed to persist refreshed token", "error", err)
	}

	c.metrics.TokenRefreshes.WithLabelValues("success").Inc()
	c.logger.Info("Access token refreshed")
	return body.AccessToken, nil
}

// send issues one request with the given bearer token (none when empty)
func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (response, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return response{}, err
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
	return c.execute(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) execute(req *http.Request) (response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIRequestTime.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(req.Method, "error").Inc()
		return response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(req.Method, "error").Inc()
		return response{}, err
	}

	c.metrics.APIRequests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug("API request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"requestId", req.Header.Get("X-Request-ID"))

	return response{status: resp.StatusCode, body: body}, nil
}

func encodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return payload, nil
}

func decodeBody(path string, body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domainerrors.MalformedResponseError{Endpoint: path, Cause: err}
	}
	return nil
}
