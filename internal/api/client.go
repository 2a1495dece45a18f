// Package api implements the REST client for the MagacinTracker backend.
// Every call attaches a bearer token read at call time and a generated
// request id; nothing is retried and nothing times out by default - a
// failure is surfaced once and the caller decides what to do.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// ErrNotFound marks a 404 from the backend. Pick-route loading branches on
// it: a missing route is the normal "needs generation" case, not a failure.
var ErrNotFound = errors.New("api: not found")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// TokenSource yields the bearer token for a request.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource over a fixed string, used in tests and
// scripted runs.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, error) { return string(t), nil }

// Client talks to the MagacinTracker backend.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a client. timeout zero means requests never time out, which
// matches how the floor terminals are operated (a stuck request is abandoned
// by the user closing the view, not by the transport).
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WarehouseMap loads the map snapshot for a warehouse, optionally scoped to
// a zone.
func (c *Client) WarehouseMap(ctx context.Context, warehouseID, zone string) (*warehouse.MapSnapshot, error) {
	q := url.Values{}
	q.Set("magacin_id", warehouseID)
	if zone != "" {
		q.Set("zona", zone)
	}

	var snap warehouse.MapSnapshot
	if err := c.doJSON(ctx, http.MethodGet, "/locations/warehouse-map?"+q.Encode(), nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// CycleCount loads a cycle count document.
func (c *Client) CycleCount(ctx context.Context, id string) (*warehouse.CycleCount, error) {
	var cc warehouse.CycleCount
	if err := c.doJSON(ctx, http.MethodGet, "/locations/cycle-counts/"+url.PathEscape(id), nil, &cc); err != nil {
		return nil, err
	}
	return &cc, nil
}

// StartCycleCount moves a scheduled cycle count to in_progress on the
// server.
func (c *Client) StartCycleCount(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/locations/cycle-counts/"+url.PathEscape(id)+"/start", nil, nil)
}

type completeCountsRequest struct {
	Counts []warehouse.CountEntry `json:"counts"`
}

type completeCountsResponse struct {
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

// CompleteCycleCount submits the counted quantities as one batch and
// returns the server-computed accuracy percentage. The client never computes
// an authoritative accuracy itself.
func (c *Client) CompleteCycleCount(ctx context.Context, id string, counts []warehouse.CountEntry) (float64, error) {
	var resp completeCountsResponse
	err := c.doJSON(ctx, http.MethodPost, "/locations/cycle-counts/"+url.PathEscape(id)+"/complete",
		completeCountsRequest{Counts: counts}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.AccuracyPercentage, nil
}

// PickRoute loads an existing pick route for a document; ErrNotFound when
// none has been generated yet.
func (c *Client) PickRoute(ctx context.Context, documentID string) (*warehouse.PickRoute, error) {
	var route warehouse.PickRoute
	if err := c.doJSON(ctx, http.MethodGet, "/locations/pick-routes/"+url.PathEscape(documentID), nil, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

type generateRouteRequest struct {
	DocumentID string `json:"document_id"`
	Algorithm  string `json:"algorithm"`
}

// GeneratePickRoute asks the backend to compute a route for a document with
// the given algorithm selector.
func (c *Client) GeneratePickRoute(ctx context.Context, documentID, algorithm string) (*warehouse.PickRoute, error) {
	var route warehouse.PickRoute
	err := c.doJSON(ctx, http.MethodPost, "/locations/pick-routes",
		generateRouteRequest{DocumentID: documentID, Algorithm: algorithm}, &route)
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// DashboardStats loads the aggregate occupancy figures for the dashboard.
func (c *Client) DashboardStats(ctx context.Context, warehouseID string) (*warehouse.DashboardStats, error) {
	q := url.Values{}
	q.Set("magacin_id", warehouseID)

	var stats warehouse.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "/locations/dashboard/stats?"+q.Encode(), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// doJSON performs one request: marshal body, attach bearer token and request
// id, decode into out when non-nil. No retries at this layer.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("resolving token: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	timer := logging.StartTimer(logging.CategoryAPI, method+" "+path)
	resp, err := c.httpClient.Do(req)
	timer.Stop()
	if err != nil {
		logging.APIError("[req:%s] %s %s: %v", reqID, method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logging.APIDebug("[req:%s] %s %s: 404", reqID, method, path)
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var eb errorBody
		msg := ""
		if json.Unmarshal(raw, &eb) == nil {
			if eb.Detail != "" {
				msg = eb.Detail
			} else {
				msg = eb.Message
			}
		}
		logging.APIError("[req:%s] %s %s: status %d", reqID, method, path, resp.StatusCode)
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
