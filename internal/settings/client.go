// Package settings reads and writes the practice's branding settings, either
// through the application's REST API or from a local repository.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mbourmaud/cabinet/internal/branding"
)

// BrandingPath is the settings resource, relative to the API base URL.
const BrandingPath = "/settings/branding"

// DefaultTimeout bounds a single settings request.
const DefaultTimeout = 10 * time.Second

// Branding is the settings document returned by GET /settings/branding.
type Branding struct {
	Colors branding.Colors `json:"colors"`
}

// Client talks to the settings REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches the branding settings via GET /settings/branding.
func (c *Client) Get(ctx context.Context) (Branding, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+BrandingPath, nil)
	if err != nil {
		return Branding{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Branding{}, fmt.Errorf("failed to fetch branding settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Branding{}, fmt.Errorf("settings returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out Branding
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Branding{}, fmt.Errorf("failed to decode branding settings: %w", err)
	}
	return out, nil
}

// FetchColors implements branding.Fetcher.
func (c *Client) FetchColors(ctx context.Context) (branding.Colors, error) {
	b, err := c.Get(ctx)
	if err != nil {
		return branding.Colors{}, err
	}
	return b.Colors, nil
}

// Load implements Repository so the remote API can back the hub's settings
// endpoint directly.
func (c *Client) Load(ctx context.Context) (branding.Colors, error) {
	return c.FetchColors(ctx)
}

// Save persists both colors via PUT /settings/branding.
func (c *Client) Save(ctx context.Context, colors branding.Colors) error {
	if err := colors.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(colors)
	if err != nil {
		return fmt.Errorf("failed to marshal colors: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+BrandingPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save branding settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("settings returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
