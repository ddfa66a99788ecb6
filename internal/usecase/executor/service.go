package executor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
	"github.com/kailas-cloud/cyync-lookup/internal/metrics"
)

// DefaultConcurrency caps simultaneous in-flight queries when none is configured.
const DefaultConcurrency = 10

// Slot is the outcome of one descriptor: the value found at its extraction path.
type Slot struct {
	Descriptor query.Descriptor
	Value      any
	Found      bool
}

// Items returns the extracted value as a list. ok is false for absent or
// non-list values.
func (s Slot) Items() ([]any, bool) {
	list, ok := s.Value.([]any)
	return list, ok
}

// Populated reports whether the slot holds a non-empty list.
func (s Slot) Populated() bool {
	list, ok := s.Items()
	return ok && len(list) > 0
}

// Service runs planned queries in parallel with a concurrency cap.
// The first failing query aborts the whole batch; no partial results are returned.
type Service struct {
	req           Requester
	limit         int
	onlyPopulated bool
	logger        *zap.Logger
}

// New creates an executor. Defaults: concurrency 10, only populated slots returned.
func New(req Requester, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		req:           req,
		limit:         DefaultConcurrency,
		onlyPopulated: true,
		logger:        logger,
	}
}

// WithConcurrency sets the in-flight query cap. Non-positive values are ignored.
func (s *Service) WithConcurrency(limit int) *Service {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// WithOnlyReturnPopulated controls whether empty or non-list slots are dropped.
// When false every descriptor yields exactly one slot, in input order.
func (s *Service) WithOnlyReturnPopulated(only bool) *Service {
	s.onlyPopulated = only
	return s
}

// Concurrency returns the in-flight query cap.
func (s *Service) Concurrency() int { return s.limit }

// Run executes descs and returns their slots in descriptor order, independent
// of completion order.
func (s *Service) Run(ctx context.Context, descs []query.Descriptor) ([]Slot, error) {
	if len(descs) == 0 {
		return nil, nil
	}

	slots := make([]Slot, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i, d := range descs {
		g.Go(func() error {
			// A sibling already failed; the batch result is decided.
			if err := gctx.Err(); err != nil {
				return err
			}
			env, err := s.execute(gctx, d)
			if err != nil {
				s.logger.Debug("query failed",
					zap.String("entity", d.ResultKey),
					zap.String("workspace_id", d.WorkspaceID),
					zap.String("scope", d.Scope),
					zap.Error(err),
				)
				return err
			}
			value, found := Extract(env, d.ExtractionPath)
			slots[i] = Slot{Descriptor: d, Value: value, Found: found}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // the remote error is surfaced verbatim
	}

	if !s.onlyPopulated {
		return slots, nil
	}
	populated := slots[:0]
	for _, slot := range slots {
		if slot.Populated() {
			populated = append(populated, slot)
		}
	}
	return populated, nil
}

func (s *Service) execute(ctx context.Context, d query.Descriptor) (query.Envelope, error) {
	metrics.QueriesInFlight.Inc()
	defer metrics.QueriesInFlight.Dec()

	start := time.Now()
	env, err := s.req.Execute(ctx, d)
	metrics.ObserveQuery(d.Scope, start, err)
	return env, err //nolint:wrapcheck // see Run
}
