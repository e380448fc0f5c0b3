// Package linear implements the GraphQL gateway client for the Linear API.
// It owns transport concerns (auth header, circuit breaking, concurrency
// limits, error mapping) and exposes one typed method per upstream operation.
// It performs no caching and never retries a failed call.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/linearops/linear-mcp-server/internal/errors"
	"github.com/linearops/linear-mcp-server/internal/infra"
	"github.com/linearops/linear-mcp-server/metrics"
)

const (
	// DefaultEndpoint is the public Linear GraphQL endpoint.
	DefaultEndpoint = "https://api.linear.app/graphql"

	// DefaultTimeout for API requests.
	DefaultTimeout = 30 * time.Second

	// maxConcurrentRequests limits parallel gateway calls.
	maxConcurrentRequests = 5

	userAgent = "linear-mcp-server/1.0"
)

// Client is the Linear GraphQL gateway client.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *slog.Logger
	breaker    *infra.Breaker
	semaphore  chan struct{}
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithEndpoint overrides the GraphQL endpoint. Used by tests to point at a
// fake gateway.
func WithEndpoint(url string) ClientOption {
	return func(c *Client) { c.endpoint = url }
}

// WithBreaker sets a custom circuit breaker.
func WithBreaker(b *infra.Breaker) ClientOption {
	return func(c *Client) { c.breaker = b }
}

// NewClient creates a gateway client authenticated with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		logger:     slog.Default(),
		breaker:    infra.NewBreaker(),
		semaphore:  make(chan struct{}, maxConcurrentRequests),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BreakerStats returns the current circuit breaker snapshot.
func (c *Client) BreakerStats() infra.BreakerStats {
	return c.breaker.Stats()
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do executes one GraphQL document and decodes the data object into out.
// operation names the upstream operation for logging, metrics, and error
// wrapping. GraphQL-level errors are mapped through the taxonomy: a
// structured ENTITY_NOT_FOUND code (or, failing that, a known not-found
// message fragment) becomes a NotFoundError; everything else surfaces as an
// UpstreamError preserving the upstream detail.
func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	if !c.breaker.Allow() {
		stats := c.breaker.Stats()
		return apierrors.NewUpstreamError(operation, infra.ErrBreakerOpen{
			RetryAt:  stats.LastFailure.Add(30 * time.Second),
			Failures: stats.ConsecutiveFails,
		})
	}

	select {
	case c.semaphore <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("waiting for request slot: %w", ctx.Err())
	}
	defer func() { <-c.semaphore }()

	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		c.breaker.RecordFailure()
		metrics.RecordGatewayCall(operation, duration, false, "transport")
		return apierrors.NewUpstreamError(operation, err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		c.breaker.RecordFailure()
		metrics.RecordGatewayCall(operation, duration, false, "transport")
		return apierrors.NewUpstreamError(operation, fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Bad credentials are the caller's problem, not a gateway outage.
		c.breaker.RecordSuccess()
		metrics.AuthFailures.WithLabelValues("api_key_rejected").Inc()
		metrics.RecordGatewayCall(operation, duration, false, "auth")
		return apierrors.NewAuthError("Linear rejected the API key; re-authenticate and try again")
	case resp.StatusCode >= 500:
		c.breaker.RecordFailure()
		metrics.RecordGatewayCall(operation, duration, false, fmt.Sprintf("http_%d", resp.StatusCode))
		return apierrors.NewUpstreamError(operation, fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(body), 200)))
	case resp.StatusCode != http.StatusOK:
		c.breaker.RecordSuccess()
		metrics.RecordGatewayCall(operation, duration, false, fmt.Sprintf("http_%d", resp.StatusCode))
		return apierrors.NewUpstreamError(operation, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var gql gqlResponse
	if err := json.Unmarshal(body, &gql); err != nil {
		c.breaker.RecordFailure()
		metrics.RecordGatewayCall(operation, duration, false, "decode")
		return apierrors.NewUpstreamError(operation, fmt.Errorf("decode response: %w", err))
	}

	if len(gql.Errors) > 0 {
		first := gql.Errors[0]
		c.breaker.RecordSuccess()
		metrics.RecordGatewayCall(operation, duration, false, first.Extensions.Code)
		c.logger.Warn("Linear API returned errors",
			"operation", operation,
			"request_id", requestID,
			"code", first.Extensions.Code,
			"message", first.Message,
		)
		return c.mapGraphQLError(operation, first)
	}

	if out != nil {
		if err := json.Unmarshal(gql.Data, out); err != nil {
			metrics.RecordGatewayCall(operation, duration, false, "decode")
			return apierrors.NewUpstreamError(operation, fmt.Errorf("decode data: %w", err))
		}
	}

	c.breaker.RecordSuccess()
	metrics.RecordGatewayCall(operation, duration, true, "")
	c.logger.Debug("Linear API call completed",
		"operation", operation,
		"request_id", requestID,
		"duration_seconds", duration,
	)
	return nil
}

// mapGraphQLError converts a GraphQL error entry into the taxonomy. The
// structured extensions.code is preferred; matching on message text is a
// fallback for errors the gateway does not code.
func (c *Client) mapGraphQLError(operation string, e gqlError) error {
	if e.Extensions.Code == "ENTITY_NOT_FOUND" {
		return apierrors.NewNotFoundError("entity", e.Message)
	}
	return &apierrors.UpstreamError{
		Operation: operation,
		Code:      e.Extensions.Code,
		Err:       fmt.Errorf("%s", e.Message),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
