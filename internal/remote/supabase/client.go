// Package supabase implements the remote data service contract against a
// hosted Supabase project: the PostgREST data API for collections and the
// GoTrue API for the session subsystem.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/remote"
)

// Client implements remote.Client over HTTP. Data requests carry the anon
// key until a session exists, then the session's access token; the hosted
// project's row-level policies decide what each token may touch.
type Client struct {
	remote.Notifier

	baseURL string
	anonKey string
	httpc   *http.Client
	log     logging.Logger

	mu           sync.Mutex
	session      *remote.Session
	refreshToken string
	refreshTimer *time.Timer
}

// New creates a client for the project at baseURL (e.g.
// https://xyz.supabase.co) authenticating with the given anon key.
func New(baseURL, anonKey string, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Close stops the token-refresh timer.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	return nil
}

// Select returns all rows of a collection via PostgREST.
func (c *Client) Select(ctx context.Context, collection string, order *remote.Order) ([]remote.Row, error) {
	q := url.Values{}
	q.Set("select", "*")
	if order != nil {
		dir := ".asc"
		if order.Descending {
			dir = ".desc"
		}
		q.Set("order", order.Column+dir)
	}
	data, err := c.doREST(ctx, http.MethodGet, collection, q, nil, "")
	if err != nil {
		return nil, err
	}
	var rows []remote.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", collection, err)
	}
	return rows, nil
}

// Insert stores row and returns the stored representation.
func (c *Client) Insert(ctx context.Context, collection string, row remote.Row) (remote.Row, error) {
	data, err := c.doREST(ctx, http.MethodPost, collection, nil, row, "return=representation")
	if err != nil {
		return nil, err
	}
	var rows []remote.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s insert response: %w", collection, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s insert returned no row", collection)
	}
	return rows[0], nil
}

// Update applies changes to the row with the given id.
func (c *Client) Update(ctx context.Context, collection string, changes remote.Row, matchID string) error {
	q := url.Values{}
	q.Set("id", "eq."+matchID)
	_, err := c.doREST(ctx, http.MethodPatch, collection, q, changes, "return=minimal")
	return err
}

// Delete removes the row with the given id. PostgREST treats a non-matching
// filter as an empty update, so deleting a missing row succeeds.
func (c *Client) Delete(ctx context.Context, collection string, matchID string) error {
	q := url.Values{}
	q.Set("id", "eq."+matchID)
	_, err := c.doREST(ctx, http.MethodDelete, collection, q, nil, "return=minimal")
	return err
}

func (c *Client) doREST(ctx context.Context, method, collection string, q url.Values, body any, prefer string) ([]byte, error) {
	endpoint := c.baseURL + "/rest/v1/" + collection
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", remote.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, data)
	}
	return data, nil
}

// bearer returns the session access token when signed in, the anon key
// otherwise.
func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return c.session.AccessToken
	}
	return c.anonKey
}

// apiError extracts the human-readable message the service puts in its
// error bodies; auth and data endpoints use different field names.
func apiError(status int, body []byte) error {
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &payload)
	for _, msg := range []string{payload.ErrorDescription, payload.Msg, payload.Message} {
		if msg != "" {
			return fmt.Errorf("%s", msg)
		}
	}
	return fmt.Errorf("request failed with status %d", status)
}
