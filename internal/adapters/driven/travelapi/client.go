package travelapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
	"github.com/developertarun01/weyfar-cli/internal/logger"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 16 << 20

// Ensure Client implements the driven interfaces.
var (
	_ driven.TravelSearchClient    = (*Client)(nil)
	_ driven.AirlineMetadataClient = (*Client)(nil)
)

// Client calls the travel-data API over HTTP.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rateLimiter
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: cfg.Timeout}
	}

	httpClient := base
	if cfg.HasCredentials() {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		// The token source fetches tokens through the base client.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		httpClient = cc.Client(ctx)
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: newRateLimiter(cfg.RatePerSecond, cfg.Burst),
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// SearchFlights searches flight offers.
func (c *Client) SearchFlights(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	return c.search(ctx, domain.SearchKindFlights, params)
}

// SearchHotels searches hotel offers.
func (c *Client) SearchHotels(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	return c.search(ctx, domain.SearchKindHotels, params)
}

// SearchCars searches car and transfer offers.
func (c *Client) SearchCars(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	return c.search(ctx, domain.SearchKindCars, params)
}

// SearchCruises searches cruise offers.
func (c *Client) SearchCruises(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	return c.search(ctx, domain.SearchKindCruises, params)
}

// LookupAirline fetches airline metadata for a carrier code.
// A 404 is a negative answer, not an error.
func (c *Client) LookupAirline(ctx context.Context, code string) (*driven.AirlineLookup, error) {
	path := strings.ReplaceAll(c.cfg.AirlinesPath, "{code}", url.PathEscape(code))

	status, body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return &driven.AirlineLookup{Success: false}, nil
	}

	var lookup driven.AirlineLookup
	if err := json.Unmarshal(body, &lookup); err != nil {
		return nil, fmt.Errorf("decode airline %s: %w: %w", code, domain.ErrRemoteFailure, err)
	}
	return &lookup, nil
}

// searchEnvelope is the API's search response shape.
type searchEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta map[string]any  `json:"meta"`
}

func (c *Client) search(ctx context.Context, kind domain.SearchKind, params domain.SearchParams) (*domain.SearchResult, error) {
	path, ok := c.cfg.Paths[kind]
	if !ok {
		return nil, fmt.Errorf("no endpoint for %s: %w", kind, domain.ErrSearchUnavailable)
	}

	status, body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &APIError{StatusCode: status, Message: errorMessage(status, body), URL: path}
	}

	result := &domain.SearchResult{Kind: kind}
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		result.Data = json.RawMessage(trimmed)
		return result, nil
	}

	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w: %w", kind, domain.ErrRemoteFailure, err)
	}
	result.Data = env.Data
	if len(result.Data) == 0 {
		result.Data = json.RawMessage("[]")
	}
	result.Meta = env.Meta
	return result, nil
}

// get performs a throttled GET and returns the status and body for 2xx and
// 404 responses. Other statuses become *APIError.
func (c *Client) get(ctx context.Context, path string, params domain.SearchParams) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.cfg.BaseURL + path
	if q := encodeParams(params); q != "" {
		endpoint += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	logger.Debug("GET %s", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("GET %s: %w: %w", path, domain.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	c.limiter.Observe(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, fmt.Errorf("read %s: %w: %w", path, domain.ErrRemoteFailure, err)
	}

	if resp.StatusCode == http.StatusNotFound || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return resp.StatusCode, body, nil
	}
	return resp.StatusCode, nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.StatusCode, body),
		URL:        path,
	}
}

// encodeParams turns search params into a query string with sorted keys.
// Lists become comma-separated values; nested objects are sent as JSON.
func encodeParams(params domain.SearchParams) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, raw := range params {
		if v, ok := queryValue(raw); ok {
			values.Set(k, v)
		}
	}
	return values.Encode()
}

func queryValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case float64:
		// JSON numbers decode as float64; never use exponent form.
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case []string:
		return strings.Join(val, ","), true
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := queryValue(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		return fmt.Sprint(val), true
	}
}
