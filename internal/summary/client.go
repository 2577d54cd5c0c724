package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client posts records to a summary server.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient targets baseURL + "/data". A nil httpClient gets a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		endpoint: strings.TrimSuffix(baseURL, "/") + "/data",
		http:     httpClient,
	}
}

// Send posts one record. Any status other than 200 is an error.
func (c *Client) Send(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("summary server replied %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

// Append makes a Client usable wherever a local Store is.
func (c *Client) Append(rec Record) error {
	return c.Send(context.Background(), rec)
}
