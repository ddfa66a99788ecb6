package cyync

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	url         string
	accessToken string
	roleID      string
	httpClient  *http.Client
	timeout     time.Duration
	rateLimit   float64

	concurrency      int
	keepEmpty        bool
	removePrivateIPs bool
	entityTypes      []string
	defaults         domain.Options

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithURL sets the CYYNC instance URL, including the scheme and without a trailing slash.
func WithURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.url = url
	})
}

// WithAccessToken sets the bearer token sent with every request.
func WithAccessToken(token string) Option {
	return optionFunc(func(c *clientConfig) {
		c.accessToken = token
	})
}

// WithRoleID sets the Role-ID header sent with every request.
func WithRoleID(roleID string) Option {
	return optionFunc(func(c *clientConfig) {
		c.roleID = roleID
	})
}

// WithHTTPClient replaces the HTTP client used for CYYNC requests.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout bounds each CYYNC request. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRateLimit caps outbound requests per second. Zero (default) disables limiting.
func WithRateLimit(perSecond float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.rateLimit = perSecond
	})
}

// WithConcurrency caps the number of CYYNC requests in flight. Default: 10.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithEmptyResults keeps queries that returned nothing in the pipeline.
func WithEmptyResults() Option {
	return optionFunc(func(c *clientConfig) {
		c.keepEmpty = true
	})
}

// WithRemovePrivateIPs skips searching private IPv4/IPv6 entities.
func WithRemovePrivateIPs() Option {
	return optionFunc(func(c *clientConfig) {
		c.removePrivateIPs = true
	})
}

// WithEntityTypes searches only entities carrying one of types.
func WithEntityTypes(types ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.entityTypes = types
	})
}

// WithWorkspaces sets the default workspaces searched by Lookup.
func WithWorkspaces(ids ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaults.WorkspaceIDs = domain.ParseWorkspaceIDs(joinIDs(ids))
	})
}

// WithSearchScopes sets the default scopes searched by Lookup.
// Unknown values are kept so that New can report them.
func WithSearchScopes(values ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaults.SearchScopes = SearchScopesOf(values...)
	})
}

// WithSearchLimit sets the default per-query result limit. Default: 50.
func WithSearchLimit(limit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaults.SearchLimit = limit
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
