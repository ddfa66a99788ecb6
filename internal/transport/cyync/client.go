// Package cyync is the outbound adapter for the CYYNC REST API.
package cyync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
	"github.com/kailas-cloud/cyync-lookup/internal/version"
)

// APIPrefix is joined between the instance URL and every endpoint.
const APIPrefix = "/api/v1/"

// FailureMessage is the message of every non-success response error.
const FailureMessage = "Request failed"

const (
	defaultTimeout   = 30 * time.Second
	defaultRateBurst = 10
	maxBodyBytes     = 32 << 20
)

// Config holds the CYYNC connection settings.
type Config struct {
	URL         string
	AccessToken string
	RoleID      string
	Timeout     time.Duration
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	RateBurst int
	// HTTPClient overrides the default client (tests, custom TLS).
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client executes planned search queries against one CYYNC instance.
type Client struct {
	baseURL string
	token   string
	roleID  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a CYYNC client.
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.AccessToken,
		roleID:  cfg.RoleID,
		http:    hc,
		limiter: rate.NewLimiter(limit, burst),
		logger:  log,
	}
}

// Execute runs one search query and returns the decoded response as
// {"status": <code>, "body": <json>}. Any status other than 200 or 201 is a
// *domain.TransportError carrying the raw body as its description.
func (c *Client) Execute(ctx context.Context, d query.Descriptor) (query.Envelope, error) {
	target := c.endpointURL(d.Endpoint)
	if q := d.Query(); len(q) > 0 {
		target += "?" + q.Encode()
	}

	status, body, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		c.logger.Debug("cyync request rejected",
			zap.String("url", target),
			zap.Int("status", status),
		)
		return nil, domain.NewTransportError(status, FailureMessage, string(body))
	}

	var decoded any
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, domain.NewTransportError(status, "Invalid JSON response", string(body))
		}
	}
	return query.Envelope{"status": status, "body": decoded}, nil
}

// Ping checks that the instance answers HTTP at all. Any response below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	status, _, err := c.get(ctx, c.endpointURL(""))
	if err != nil {
		return err
	}
	if status >= http.StatusInternalServerError {
		return domain.NewTransportError(status, "CYYNC unavailable", "")
	}
	return nil
}

func (c *Client) endpointURL(endpoint string) string {
	return c.baseURL + APIPrefix + strings.TrimPrefix(endpoint, "/")
}

func (c *Client) get(ctx context.Context, target string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, domain.NewTransportError(0, fmt.Sprintf("create request: %v", err), "")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if c.roleID != "" {
		req.Header.Set("Role-ID", c.roleID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return 0, nil, fmt.Errorf("cyync request: %w", ctxErr)
		}
		return 0, nil, domain.NewTransportError(0, err.Error(), "")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, domain.NewTransportError(resp.StatusCode, fmt.Sprintf("read response: %v", err), "")
	}

	c.logger.Debug("cyync request",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp.StatusCode, body, nil
}
