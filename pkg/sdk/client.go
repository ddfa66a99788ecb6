package cyync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	cyynctransport "github.com/kailas-cloud/cyync-lookup/internal/transport/cyync"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/executor"
	healthuc "github.com/kailas-cloud/cyync-lookup/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/cyync-lookup/internal/usecase/lookup"
)

// lookupUseCase is the internal interface for the lookup pipeline.
type lookupUseCase interface {
	Lookup(ctx context.Context, entities []domain.Entity, opts domain.Options) ([]domain.LookupResult, error)
}

// Client is the CYYNC lookup SDK entry point. It is safe for concurrent use.
type Client struct {
	conn      domain.Connection
	defaults  domain.Options
	lookupSvc lookupUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. It fails with ErrInvalidOptions when the URL, access
// token or default options do not validate.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	conn := domain.Connection{URL: cfg.url, AccessToken: cfg.accessToken, RoleID: cfg.roleID}
	if err := validationError(domain.ValidateOptions(conn, cfg.defaults)); err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(conn, cfg, obs), nil
}

func wireClient(conn domain.Connection, cfg *clientConfig, obs *observer) *Client {
	transport := cyynctransport.New(&cyynctransport.Config{
		URL:         conn.URL,
		AccessToken: conn.AccessToken,
		RoleID:      conn.RoleID,
		Timeout:     cfg.timeout,
		RateLimit:   cfg.rateLimit,
		HTTPClient:  cfg.httpClient,
	})

	exec := executor.New(transport, zap.NewNop()).
		WithConcurrency(cfg.concurrency).
		WithOnlyReturnPopulated(!cfg.keepEmpty)

	lookupSvc := lookupuc.New(exec, zap.NewNop()).
		WithDefaults(cfg.defaults).
		WithRemovePrivateIPs(cfg.removePrivateIPs).
		WithEntityTypes(cfg.entityTypes...)

	return &Client{
		conn:      conn,
		defaults:  cfg.defaults,
		lookupSvc: lookupSvc,
		healthSvc: healthuc.New(nil).WithDependency("cyync", transport),
		obs:       obs,
	}
}

// Lookup searches every configured workspace and scope for each entity and
// returns one Result per entity in input order. Zero fields of opts fall
// back to the client defaults. Any failed remote query fails the whole call
// with a *LookupError.
func (c *Client) Lookup(ctx context.Context, entities []Entity, opts Options) (results []Result, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("lookup", start, err, "entities", len(entities), "matched", matched(results))
	}()
	c.obs.countEntities(len(entities))

	results, err = c.lookupSvc.Lookup(ctx, entities, opts)
	if err != nil {
		return nil, fmt.Errorf("cyync: lookup: %w", err)
	}
	return results, nil
}

// Validate checks per-call options against the client connection. An empty
// result means Lookup will accept them.
func (c *Client) Validate(opts Options) []ValidationError {
	return domain.ValidateOptions(c.conn, opts.Merge(c.defaults))
}

func matched(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Data != nil {
			n++
		}
	}
	return n
}

func validationError(errs []domain.ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Key+": "+e.Message)
	}
	return fmt.Errorf("cyync: %w: %s", domain.ErrInvalidOptions, strings.Join(msgs, "; "))
}

// AsLookupError extracts the LookupError behind a failed Lookup.
func AsLookupError(err error) (*LookupError, bool) {
	var le *LookupError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
