package nhk

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nabetama/nhk-radio-player/stream/hls"
)

// ConfigWebURL is the station directory endpoint.
const ConfigWebURL = "https://www.nhk.or.jp/radio/config/config_web.xml"

const defaultTimeout = 15 * time.Second

// Client fetches NHK endpoints and raw stream data. All operations are
// stateless and issue a single request with no retries; retry policy belongs
// to the stream loop.
type Client struct {
	httpClient *http.Client
	configURL  string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithConfigURL overrides the station directory endpoint (tests point this
// at a local server).
func WithConfigURL(url string) Option {
	return func(c *Client) { c.configURL = url }
}

// NewClient creates a client with sane timeouts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		configURL:  ConfigWebURL,
		userAgent:  "nhk-radio-player/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchConfig retrieves and decodes the station directory.
func (c *Client) FetchConfig(ctx context.Context) (*Config, error) {
	body, err := c.get(ctx, c.configURL)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := xml.Unmarshal(body, &config); err != nil {
		return nil, fmt.Errorf("failed to parse station config: %w", err)
	}
	return &config, nil
}

// FetchProgram retrieves and decodes the now-on-air program feed.
func (c *Client) FetchProgram(ctx context.Context, url string) (*Program, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var program Program
	if err := json.Unmarshal(body, &program); err != nil {
		return nil, fmt.Errorf("failed to parse program feed: %w", err)
	}
	return &program, nil
}

// FetchPlaylist retrieves raw playlist text. Implements hls.PlaylistFetcher.
func (c *Client) FetchPlaylist(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, hls.NewStreamError(url, hls.ErrCodeConnection,
			"failed to fetch playlist", err)
	}
	return body, nil
}

// FetchKey retrieves a decryption key. A response that is not exactly 16
// bytes is an error for this poll cycle.
func (c *Client) FetchKey(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, hls.NewStreamError(url, hls.ErrCodeConnection,
			"failed to fetch key", err)
	}
	if len(body) != hls.KeySize {
		return nil, hls.NewStreamError(url, hls.ErrCodeKeyInvalid,
			fmt.Sprintf("invalid key length: expected %d, got %d", hls.KeySize, len(body)), nil)
	}
	return body, nil
}

// FetchSegment retrieves raw segment bytes.
func (c *Client) FetchSegment(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, hls.NewStreamError(url, hls.ErrCodeConnection,
			"failed to fetch segment", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
