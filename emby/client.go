package emby

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// HTTPDoer describes the HTTP client used by the Emby client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client represents an Emby API client
type Client struct {
	location   ServerLocation
	httpClient HTTPDoer
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new Emby client for the server at host:port
func NewClient(host string, port int, logger zerolog.Logger, opts ...Option) (*Client, error) {
	location := ServerLocation{Host: strings.TrimSpace(host), Port: port}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	options := &clientOptions{userAgent: "embyupdate"}
	for _, opt := range opts {
		opt(options)
	}

	return &Client{
		location:   location,
		httpClient: options.client(),
		userAgent:  options.userAgent,
		logger:     logger.With().Str("server", location.String()).Logger(),
	}, nil
}

// Location returns the server this client talks to
func (c *Client) Location() ServerLocation {
	return c.location
}

// doRequest performs an HTTP request and returns the status code and body.
// A non-nil form is sent url-encoded.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, headers Headers, form url.Values) (int, []byte, error) {
	requestURL, err := APIURL(c.location.Host, c.location.Port, endpoint)
	if err != nil {
		return 0, nil, err
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return 0, nil, transportError("failed to create request: %w", err)
	}

	headers.Apply(req)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making Emby API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, transportError("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, transportError("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Msg("Emby API response")

	return resp.StatusCode, data, nil
}
