// Package client talks to the device control API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"climate_station/internal/models"
)

const (
	pathSettings = "/settings"
	pathStatus   = "/status"
	pathSummary  = "/summary"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 1 << 16
)

// APIError is returned for a non-2xx response. Message is the body's
// "error" field and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("device api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("device api: status %d: %s", e.StatusCode, e.Message)
}

// SummaryResult mirrors models.SummaryStats with every field optional, so a
// missing key can be told apart from zero.
type SummaryResult struct {
	AvgTemperature *float64 `json:"avg_temperature"`
	MinTemperature *float64 `json:"min_temperature"`
	MaxTemperature *float64 `json:"max_temperature"`
	AvgHumidity    *float64 `json:"avg_humidity"`
	MinHumidity    *float64 `json:"min_humidity"`
	MaxHumidity    *float64 `json:"max_humidity"`
	AvgLight       *float64 `json:"avg_light"`
	MinLight       *float64 `json:"min_light"`
	MaxLight       *float64 `json:"max_light"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetSettings fetches the stored thresholds. Fields missing from the body stay nil.
func (c *Client) GetSettings(ctx context.Context) (models.SettingsPayload, error) {
	var out models.SettingsPayload
	if err := c.do(ctx, http.MethodGet, pathSettings, nil, &out); err != nil {
		return models.SettingsPayload{}, err
	}
	return out, nil
}

// UpdateSettings posts the thresholds as JSON. Nil fields are sent as null.
func (c *Client) UpdateSettings(ctx context.Context, p models.SettingsPayload) error {
	return c.do(ctx, http.MethodPost, pathSettings, p, nil)
}

// GetStatus decodes whatever JSON the server sends, whatever the status code.
// Only a transport failure or a body that is not JSON is an error.
func (c *Client) GetStatus(ctx context.Context) (models.StatusSnapshot, error) {
	var out models.StatusSnapshot
	if err := c.getAny(ctx, pathStatus, &out); err != nil {
		return models.StatusSnapshot{}, err
	}
	return out, nil
}

// GetSummary follows GetStatus: a 400 {"message":"Not enough data to summarize"}
// yields a SummaryResult with every field nil and no error.
func (c *Client) GetSummary(ctx context.Context) (SummaryResult, error) {
	var out SummaryResult
	if err := c.getAny(ctx, pathSummary, &out); err != nil {
		return SummaryResult{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// getAny decodes the body into out regardless of status. A non-2xx reply
// whose body is not JSON comes back as *APIError.
func (c *Client) getAny(ctx context.Context, path string, out any) error {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("decode %s %s: %w", http.MethodGet, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	return resp, nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
