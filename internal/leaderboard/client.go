package leaderboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"leafglide/internal/storage"
)

// Client is a thin HTTP client for a remote leaderboard server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g. "http://host:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit posts a score and returns the stored record.
func (c *Client) Submit(name, handle string, score int) (storage.ScoreEntry, error) {
	body, err := json.Marshal(SubmitRequest{Name: name, Handle: handle, Score: score})
	if err != nil {
		return storage.ScoreEntry{}, fmt.Errorf("leaderboard: cannot encode request: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+"/scores", "application/json", bytes.NewReader(body))
	if err != nil {
		return storage.ScoreEntry{}, fmt.Errorf("leaderboard: submit failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return storage.ScoreEntry{}, fmt.Errorf("leaderboard: submit rejected with status %d", resp.StatusCode)
	}

	var entry storage.ScoreEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return storage.ScoreEntry{}, fmt.Errorf("leaderboard: cannot decode response: %w", err)
	}
	return entry, nil
}

// Top fetches the top N scores from the server.
func (c *Client) Top(limit int) ([]storage.ScoreEntry, error) {
	url := fmt.Sprintf("%s/scores/top?limit=%d", c.baseURL, limit)
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard: query rejected with status %d", resp.StatusCode)
	}

	var entries []storage.ScoreEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot decode response: %w", err)
	}
	return entries, nil
}
