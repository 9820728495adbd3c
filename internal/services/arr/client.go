package arr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mediasweep/internal/services"
)

const apiKeyHeader = "X-Api-Key"

// HTTPDoer describes the HTTP client used by the service client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the options for constructing a Client.
type Config struct {
	Kind    Kind
	BaseURL string
	APIKey  string
	// Timeout bounds the whole request. Zero waits indefinitely.
	Timeout    time.Duration
	HTTPClient HTTPDoer
}

// Client lists the canonical directories a media-management service tracks.
type Client struct {
	kind    Kind
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d", e.Service, e.StatusCode)
}

// NewClient constructs a Client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Kind.Endpoint() == "" {
		return nil, services.Wrap(services.ErrConfiguration, "arr", "new client", fmt.Sprintf("unsupported kind %q", cfg.Kind), nil)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "arr", "new client", cfg.Kind.ServiceName()+" url is required", nil)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		kind:    cfg.Kind,
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		client:  client,
	}, nil
}

// Kind reports which collection the client lists.
func (c *Client) Kind() Kind {
	return c.kind
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type collectionItem struct {
	Path string `json:"path"`
}

// ListPaths fetches the collection and returns each item's directory in
// response order. Items with a blank path are skipped.
func (c *Client) ListPaths(ctx context.Context) ([]string, error) {
	service := c.kind.ServiceName()
	endpoint, err := url.JoinPath(c.baseURL, "api", "v3", c.kind.Endpoint())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "arr", "build endpoint", service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "arr", "build request", service, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrTransient, "arr", "list paths", "query "+service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrExternalService, "arr", "list paths", "", &StatusError{Service: service, StatusCode: resp.StatusCode})
	}

	var items []collectionItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, services.Wrap(services.ErrValidation, "arr", "decode response", service, err)
	}

	paths := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Path) == "" {
			continue
		}
		paths = append(paths, item.Path)
	}
	return paths, nil
}
