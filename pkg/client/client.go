// Package client provides the core help-center HTTP client with retry,
// rate limit handling, optional response caching, and error classification.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/helpcenter-tools/hc-export/pkg/cache"
	"github.com/helpcenter-tools/hc-export/pkg/logging"
)

// Prometheus metrics for help-center client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hc_export_requests_total",
		Help: "Total help-center requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hc_export_request_duration_seconds",
		Help:    "Help-center request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hc_export_errors_total",
		Help: "Total help-center request errors by class",
	}, []string{"class"})

	cooldownSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hc_export_rate_limit_cooldown_seconds",
		Help:    "Server-requested rate limit cool-down durations",
		Buckets: []float64{1, 2, 5, 10, 30, 60},
	})
)

// defaultCooldown applies when a rate-limited response carries no
// Retry-After header.
const defaultCooldown = 5 * time.Second

// Client is the rate-limited help-center API client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the help-center instance, e.g. "https://acme.zendesk.com".
	BaseURL string

	// Email and APIToken authenticate requests (basic auth, token flavor).
	Email    string
	APIToken string

	// Timeout per HTTP request (default: 60s).
	Timeout time.Duration

	// Retry policy for transient failures.
	Retry RetryConfig

	// RequestsPerSecond enables a client-side limiter when > 0.
	RequestsPerSecond float64

	// Redis enables response caching when set.
	Redis *redis.Client

	// CacheTTL is the lifetime of cached responses (default: 15m).
	CacheTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, email, apiToken string) Config {
	return Config{
		BaseURL:           baseURL,
		Email:             email,
		APIToken:          apiToken,
		Timeout:           60 * time.Second,
		Retry:             DefaultRetryConfig(),
		RequestsPerSecond: 5,
		CacheTTL:          15 * time.Minute,
	}
}

// New creates a new help-center client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("api token is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
		cache:   cacheManager,
		config:  cfg,
		logger:  logging.NewLogger("hc-client"),
	}, nil
}

// GetJSON performs a GET request against the given URL and decodes the JSON
// response body. Rate-limited responses sleep the server-provided cool-down
// and are retried; transport errors are retried; any other non-success
// status fails immediately with a FetchError. A nil params is allowed.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values) (map[string]any, error) {
	requestURL, err := withQuery(rawURL, params)
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}

	endpoint := endpointLabel(requestURL)
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	cacheKey := cache.Key{URL: requestURL}
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("url", requestURL).Msg("Cache get error")
		}
		if entry != nil {
			var result map[string]any
			if err := json.Unmarshal(entry.Data, &result); err == nil {
				c.logger.Debug().Str("url", requestURL).Msg("Cache hit")
				requestsTotal.WithLabelValues(endpoint, "cached").Inc()
				return result, nil
			}
			// Corrupted entry, fall through to the network.
			_ = c.cache.Delete(ctx, cacheKey)
		}
	}

	var body []byte
	retryErr := retryWithBackoff(ctx, c.config.Retry, func() error {
		var reqErr error
		body, reqErr = c.doRequest(ctx, requestURL, endpoint)
		return reqErr
	})
	if retryErr != nil {
		return nil, retryErr
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", requestURL, err)
	}

	if c.cache != nil {
		entry := &cache.Entry{
			Data:       body,
			StatusCode: http.StatusOK,
			CachedAt:   time.Now(),
			ExpiresAt:  time.Now().Add(c.config.CacheTTL),
		}
		if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
			c.logger.Warn().Err(err).Str("url", requestURL).Msg("Failed to cache response")
		}
	}

	return result, nil
}

// doRequest executes one attempt and returns the response body.
func (c *Client) doRequest(ctx context.Context, requestURL, endpoint string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{URL: requestURL, ErrorClass: ErrorClassNetwork, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &FetchError{URL: requestURL, ErrorClass: ErrorClassNetwork, Err: err}
	}
	// Token auth: "email/token" as the basic auth user.
	req.SetBasicAuth(c.config.Email+"/token", c.config.APIToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).Msg("HTTP request failed")
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &FetchError{URL: requestURL, ErrorClass: ErrorClassNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		cooldown := parseRetryAfter(resp.Header)
		errorsTotal.WithLabelValues(string(ErrorClassRateLimit)).Inc()
		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		cooldownSeconds.Observe(cooldown.Seconds())

		c.logger.Warn().
			Str("url", requestURL).
			Dur("cooldown", cooldown).
			Msg("Rate limited, honoring cool-down")

		select {
		case <-ctx.Done():
			return nil, &FetchError{URL: requestURL, ErrorClass: ErrorClassNetwork, Err: ctx.Err()}
		case <-time.After(cooldown):
		}

		return nil, &FetchError{
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassRateLimit,
			Err:        fmt.Errorf("rate limited"),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		errorClass := ErrorClassClient
		if resp.StatusCode >= 500 {
			errorClass = ErrorClassServer
		}
		errorsTotal.WithLabelValues(string(errorClass)).Inc()
		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		c.logger.Warn().
			Str("url", requestURL).
			Int("status_code", resp.StatusCode).
			Str("error_class", string(errorClass)).
			Msg("Help-center request error")

		return nil, &FetchError{
			URL:         requestURL,
			StatusCode:  resp.StatusCode,
			ErrorClass:  errorClass,
			BodyExcerpt: excerpt(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &FetchError{URL: requestURL, ErrorClass: ErrorClassNetwork, Err: err}
	}

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return body, nil
}

// parseRetryAfter reads the cool-down from a rate-limited response.
func parseRetryAfter(headers http.Header) time.Duration {
	value := headers.Get("Retry-After")
	if value == "" {
		return defaultCooldown
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return defaultCooldown
	}
	return time.Duration(seconds) * time.Second
}

// withQuery merges params into rawURL, preserving existing query values.
func withQuery(rawURL string, params url.Values) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// endpointLabel reduces a URL to its path for metric labels.
func endpointLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" {
		return "unknown"
	}
	return parsed.Path
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
