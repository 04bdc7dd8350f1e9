// Package georef looks up Brazilian region codes and city names from the
// IBGE localidades API.
package georef

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL  = "https://servicodados.ibge.gov.br/api/v1/localidades"
	defaultMaxTries = 3
)

type Client struct {
	baseURL  string
	client   *http.Client
	cache    *gocache.Cache
	maxTries uint
	backOff  func() backoff.BackOff
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRetry sets the attempt budget and the backoff schedule between attempts.
func WithRetry(maxTries uint, newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.maxTries = maxTries
		c.backOff = newBackOff
	}
}

// New returns a client whose successful answers are cached for cacheTTL.
func New(baseURL string, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		maxTries: defaultMaxTries,
		backOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Regions returns the sorted two-letter region codes.
func (c *Client) Regions(ctx context.Context) ([]string, error) {
	regions, err := c.lookup(ctx, "/estados", "#.sigla")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch regions: %w", err)
	}
	slices.Sort(regions)
	return regions, nil
}

// Cities returns the city names of a region in the order the API lists them.
func (c *Client) Cities(ctx context.Context, region string) ([]string, error) {
	cities, err := c.lookup(ctx, "/estados/"+url.PathEscape(region)+"/municipios", "#.nome")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cities of %s: %w", region, err)
	}
	return cities, nil
}

// lookup fetches path and extracts the string values at the gjson path.
func (c *Client) lookup(ctx context.Context, path, field string) ([]string, error) {
	if cached, ok := c.cache.Get(path); ok {
		return slices.Clone(cached.([]string)), nil
	}

	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.fetch(ctx, path)
	}, backoff.WithBackOff(c.backOff()), backoff.WithMaxTries(c.maxTries))
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON from %s", path)
	}
	results := gjson.GetBytes(body, field).Array()
	values := make([]string, 0, len(results))
	for _, r := range results {
		values = append(values, r.String())
	}

	c.cache.SetDefault(path, values)
	return slices.Clone(values), nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call georef: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("georef returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("georef returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
