package naming

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anekos/rename-movies/pkg/models"
)

// ErrNotFound indicates the metadata provider has no match for a query.
var ErrNotFound = errors.New("no metadata match found")

// MediaInfo is the resolved identity of a movie.
type MediaInfo struct {
	Title string `json:"title"`
	Year  string `json:"year"`
}

// MetadataProvider resolves a parsed title/year against an external
// metadata source. It is an external collaborator: implementations own
// their transport, timeout and retry policy.
type MetadataProvider interface {
	// Name returns the provider identifier
	Name() string

	// Lookup resolves a title (and optional year hint) to media info.
	// Returns ErrNotFound when the provider has no match.
	Lookup(ctx context.Context, title, year string) (*MediaInfo, error)
}

// LookupStrategy resolves canonical names through a metadata provider,
// falling back to the query tokens parsed from the filename.
type LookupStrategy struct {
	provider MetadataProvider
}

// NewLookupStrategy creates a lookup-based naming strategy
func NewLookupStrategy(provider MetadataProvider) *LookupStrategy {
	return &LookupStrategy{provider: provider}
}

// Name returns the strategy identifier
func (s *LookupStrategy) Name() string {
	return string(models.StrategyLookup)
}

// Derive resolves the parsed title through the provider and builds the
// canonical destination name from the provider's answer. A provider miss
// degrades to ErrUnrecognized; transport errors propagate.
func (s *LookupStrategy) Derive(ctx context.Context, file models.MediaFile) (string, error) {
	title := strings.TrimSpace(file.Tokens.Title)
	if title == "" {
		return "", ErrUnrecognized
	}

	info, err := s.provider.Lookup(ctx, title, file.Tokens.Year)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrUnrecognized
		}
		return "", fmt.Errorf("metadata lookup failed: %w", err)
	}

	return CanonicalName(info.Title, info.Year, file.Extension), nil
}

// HTTPProviderConfig holds configuration for the HTTP metadata provider
type HTTPProviderConfig struct {
	// Endpoint is the base URL of the metadata service
	Endpoint string
	// APIKey is sent as a bearer token when non-empty
	APIKey string
	// Timeout bounds each request (default 10s)
	Timeout time.Duration
	// MaxRetries bounds retries on rate limiting (default 3)
	MaxRetries int
}

// HTTPProvider queries a JSON metadata endpoint:
//
//	GET <endpoint>?title=<title>&year=<year> -> {"title": "...", "year": "..."}
//
// 404 maps to ErrNotFound. 429 is retried with exponential backoff,
// honoring Retry-After.
type HTTPProvider struct {
	config HTTPProviderConfig
	client *http.Client
}

// NewHTTPProvider creates an HTTP metadata provider
func NewHTTPProvider(config HTTPProviderConfig) *HTTPProvider {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	return &HTTPProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Name returns the provider identifier
func (p *HTTPProvider) Name() string {
	return "http"
}

// Lookup queries the metadata endpoint for a title/year pair.
func (p *HTTPProvider) Lookup(ctx context.Context, title, year string) (*MediaInfo, error) {
	query := url.Values{}
	query.Set("title", title)
	if year != "" {
		query.Set("year", year)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.config.Endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}

	var info MediaInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if info.Title == "" {
		return nil, ErrNotFound
	}

	return &info, nil
}

// doWithRetry executes the request with exponential backoff on 429,
// honoring the Retry-After header when present.
func (p *HTTPProvider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for i := 0; i <= p.config.MaxRetries; i++ {
		resp, err := p.client.Do(req.Clone(ctx))
		if err != nil {
			return nil, fmt.Errorf("metadata request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		if i == p.config.MaxRetries {
			break
		}

		wait := time.Second
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				wait = time.Duration(seconds) * time.Second
			}
		}

		select {
		case <-time.After(wait * time.Duration(1<<i)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("rate limit exceeded after %d retries", p.config.MaxRetries)
}
