// Package apiclient talks to the parking REST API on behalf of an admin
// session. Reads go through a query cache; every write is a single remote
// call followed by broad cache invalidation, never an in-place patch.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"apartium-backend/cache"
	"apartium-backend/models"
	"apartium-backend/parking"
	"apartium-backend/utils"
)

// APIError is a non-2xx response. Message carries the server's error text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   cache.Store
	TTL     time.Duration
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Cache:   cache.NewMemoryStore(time.Minute),
		TTL:     time.Minute,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env utils.RawEnvelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// cached serves key from the query cache, or runs fetch and stores the result.
func (c *Client) cached(ctx context.Context, key string, dest interface{}, fetch func() error) error {
	if c.Cache != nil {
		if hit, err := c.Cache.Get(ctx, key, dest); err == nil && hit {
			return nil
		}
	}
	if err := fetch(); err != nil {
		return err
	}
	if c.Cache != nil {
		_ = c.Cache.Set(ctx, key, dest, c.TTL)
	}
	return nil
}

// ---- queries

func (c *Client) BuildingData(ctx context.Context, buildingID string) (*models.Building, error) {
	var b models.Building
	err := c.cached(ctx, cache.BuildingDataKey(buildingID), &b, func() error {
		return c.do(ctx, http.MethodGet, "/residents/building-data/"+url.PathEscape(buildingID), nil, &b)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) GuestVisits(ctx context.Context, buildingID string) ([]models.GuestVisit, error) {
	var visits []models.GuestVisit
	err := c.cached(ctx, cache.GuestVisitsKey(buildingID), &visits, func() error {
		return c.do(ctx, http.MethodGet, "/guest-visits?buildingId="+url.QueryEscape(buildingID), nil, &visits)
	})
	return visits, err
}

// Snapshot fetches both vehicle feeds of a building and indexes them.
func (c *Client) Snapshot(ctx context.Context, buildingID string) (*parking.Snapshot, error) {
	b, err := c.BuildingData(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	guests, err := c.GuestVisits(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	return parking.NewSnapshot([]models.Building{*b}, guests), nil
}

// Board derives the parking view for view from cached data.
func (c *Client) Board(ctx context.Context, view parking.ViewState) (parking.Board, error) {
	if view.BlockID == "" {
		return parking.Board{}, ErrNoBuildingSelected
	}
	snap, err := c.Snapshot(ctx, view.BlockID)
	if err != nil {
		return parking.Board{}, err
	}
	return parking.BuildBoard(snap, view), nil
}

// ---- invalidation

func (c *Client) invalidateBuilding(ctx context.Context, buildingID string) {
	if c.Cache == nil {
		return
	}
	_ = c.Cache.Delete(ctx, cache.BuildingDataKey(buildingID), cache.GuestVisitsKey(buildingID))
}

// invalidateGuests drops the guest list of buildingID, or every guest list
// when no building is given.
func (c *Client) invalidateGuests(ctx context.Context, buildingID string) {
	if c.Cache == nil {
		return
	}
	if buildingID == "" {
		_ = c.Cache.DeletePrefix(ctx, cache.GuestVisitPrefix)
		return
	}
	_ = c.Cache.Delete(ctx, cache.GuestVisitsKey(buildingID))
}

// invalidateResidents drops every resident-scoped query, building data of
// every building included.
func (c *Client) invalidateResidents(ctx context.Context) {
	if c.Cache == nil {
		return
	}
	_ = c.Cache.DeletePrefix(ctx, cache.ResidentPrefix)
}
