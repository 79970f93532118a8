// Package supabase implements store.Store on a Supabase table through its
// PostgREST endpoint.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hayato-coosy/kouseian/internal/store"
)

// pgUniqueViolation is the Postgres error code for a duplicate primary key.
const pgUniqueViolation = "23505"

// Config configures a Client.
type Config struct {
	URL     string
	AnonKey string
	Table   string        // defaults to store.DefaultTable
	Timeout time.Duration // defaults to 10s
}

// Client talks to one table with columns id (text primary key) and data (jsonb).
type Client struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
	anonKey    string
	table      string
}

// errorResponse is the PostgREST error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// New creates a Client. It fails if the URL or key is missing or the URL is
// invalid.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrURLMissing
	}
	if cfg.AnonKey == "" {
		return nil, ErrKeyMissing
	}
	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrURLParse, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrURLParse, cfg.URL)
	}

	table := cfg.Table
	if table == "" {
		table = store.DefaultTable
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		anonKey:    cfg.AnonKey,
		table:      table,
	}, nil
}

func (c *Client) tableURL(query url.Values) string {
	u := c.BaseURL.JoinPath("rest", "v1", c.table)
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, target string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestCreate, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Put implements store.Store. A duplicate id is reported by PostgREST as a
// 409 with a unique-violation code and maps to store.ErrAlreadyExists.
func (c *Client) Put(ctx context.Context, rec store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidRecord, err)
	}

	target := c.tableURL(nil)
	log.Debug().Str("url", target).Str("id", rec.ID).Msg("Sending Supabase insert")
	req, err := c.newRequest(ctx, http.MethodPost, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestExecute, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return serverError(resp)
}

type row struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) selectRows(ctx context.Context, id, columns string) ([]row, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("select", columns)
	target := c.tableURL(query)

	log.Debug().Str("url", target).Msg("Sending Supabase select")
	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestExecute, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}
	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResponseDecode, err)
	}
	return rows, nil
}

// Get implements store.Store.
func (c *Client) Get(ctx context.Context, id string) (store.Record, error) {
	rows, err := c.selectRows(ctx, id, "id,data")
	if err != nil {
		return store.Record{}, err
	}
	if len(rows) == 0 || len(rows[0].Data) == 0 || string(rows[0].Data) == "null" {
		return store.Record{}, store.ErrNotFound
	}
	return store.Record{ID: rows[0].ID, Data: rows[0].Data}, nil
}

// Exists implements store.Store.
func (c *Client) Exists(ctx context.Context, id string) (bool, error) {
	rows, err := c.selectRows(ctx, id, "id")
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func serverError(resp *http.Response) error {
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		log.Warn().Err(readErr).Msg("Failed to read Supabase error body")
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		if resp.StatusCode == http.StatusConflict || errResp.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", store.ErrAlreadyExists, errResp.Message)
		}
		return fmt.Errorf("%w: %s (status %d)", ErrServerError, errResp.Message, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusConflict {
		return store.ErrAlreadyExists
	}
	return fmt.Errorf("%w (status %d)", ErrServerErrorUnparseable, resp.StatusCode)
}
