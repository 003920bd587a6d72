// Package lichess implements the game-host port against the Lichess API.
package lichess

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/arbiter/internal/config"
	"github.com/example/arbiter/internal/models"
	"github.com/example/arbiter/internal/ports/secondary"
)

// Client talks to the Lichess challenge and game-export APIs.
type Client struct {
	baseURL    string
	token      string
	rated      bool
	clock      config.Clock
	retry      RetryPolicy
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a Lichess client from the given configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		rated:   cfg.Rated,
		clock:   cfg.Clock,
		retry:   NewRetryPolicy(cfg.Retry),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logger,
	}
}

// CreateSession creates one admin challenge between the two players, with
// the white pieces assigned to pair.WhitePlayer, and returns the game ID.
//
// The endpoint is not idempotent: Lichess creates a fresh game on every
// call, so the caller must persist the returned ID before asking again.
func (c *Client) CreateSession(ctx context.Context, pair models.Pair) (string, error) {
	endpoint := fmt.Sprintf("%s/api/challenge/admin/%s/%s",
		c.baseURL, url.PathEscape(pair.WhitePlayer), url.PathEscape(pair.BlackPlayer))

	form := url.Values{
		"rated":           {strconv.FormatBool(c.rated)},
		"clock.limit":     {strconv.Itoa(c.clock.LimitSec)},
		"clock.increment": {strconv.Itoa(c.clock.IncrementSec)},
		"color":           {"white"},
	}

	resp, err := c.retry.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
			strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		c.authorize(req)
		return req, nil
	}, c.httpClient)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &secondary.InvalidPairingError{
			Pair:       pair,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var challenge struct {
		Game struct {
			ID string `json:"id"`
		} `json:"game"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&challenge); err != nil {
		return "", fmt.Errorf("failed to decode challenge response: %w", err)
	}
	if challenge.Game.ID == "" {
		return "", fmt.Errorf("challenge response for %s carries no game ID", pair)
	}

	c.log.Debug("challenge created",
		zap.String("white", pair.WhitePlayer),
		zap.String("black", pair.BlackPlayer),
		zap.String("game_id", challenge.Game.ID))
	return challenge.Game.ID, nil
}

// LookupStatuses fetches the status of the given games in one batched
// export call. The response is ndjson; move data is suppressed since only
// the status and winner fields matter here.
func (c *Client) LookupStatuses(ctx context.Context, sessionIDs []string) ([]secondary.SessionStatus, error) {
	endpoint := c.baseURL + "/games/export/_ids?moves=false"
	payload := strings.Join(sessionIDs, ",")

	resp, err := c.retry.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
			strings.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set("Accept", "application/x-ndjson")
		c.authorize(req)
		return req, nil
	}, c.httpClient)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("game export failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var statuses []secondary.SessionStatus
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Winner string `json:"winner"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode game export entry: %w", err)
		}
		statuses = append(statuses, secondary.SessionStatus{
			ID:     entry.ID,
			Status: entry.Status,
			Winner: entry.Winner,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game export response: %w", err)
	}
	return statuses, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}

// Ensure Client implements the interface.
var _ secondary.GameHost = (*Client)(nil)
