package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/scope"
	"github.com/kailas-cloud/cyync-lookup/internal/logger"
	"github.com/kailas-cloud/cyync-lookup/internal/metrics"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/enrich"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/planner"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/summary"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/transform"
)

// Service runs the lookup pipeline: plan, execute, enrich, match, classify,
// normalize and summarize. It holds no state between invocations.
type Service struct {
	exec        Executor
	defaults    domain.Options
	privateIPs  bool
	entityTypes []string
	now         func() time.Time
	logger      *zap.Logger
}

// New creates a lookup service.
func New(exec Executor, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{exec: exec, now: time.Now, logger: log}
}

// WithDefaults sets the options used for any field a request leaves unset.
func (s *Service) WithDefaults(opts domain.Options) *Service {
	s.defaults = opts
	return s
}

// WithRemovePrivateIPs skips querying private IP entities. Skipped entities
// still appear in the output with no data.
func (s *Service) WithRemovePrivateIPs(remove bool) *Service {
	s.privateIPs = remove
	return s
}

// WithEntityTypes restricts querying to entities carrying one of types.
func (s *Service) WithEntityTypes(types ...string) *Service {
	s.entityTypes = types
	return s
}

// WithClock replaces the clock anchoring the recency window.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Lookup returns one result per input entity, in input order. Any remote
// failure fails the whole invocation with a *domain.LookupError.
func (s *Service) Lookup(ctx context.Context, entities []domain.Entity, opts domain.Options) ([]domain.LookupResult, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))
	ctx = logger.ContextWithLogger(ctx, log)

	results, err := s.lookup(ctx, entities, opts.Merge(s.defaults))
	metrics.ObserveLookup(len(entities), err)
	if err != nil {
		lerr := domain.NewLookupError(err)
		log.Error("lookup failed", zap.Int("entities", len(entities)), zap.Int("status", lerr.Status), zap.Error(err))
		return nil, lerr
	}
	return results, nil
}

func (s *Service) lookup(ctx context.Context, entities []domain.Entity, opts domain.Options) ([]domain.LookupResult, error) {
	log := logger.FromContext(ctx)

	planned := opts
	if planned.SearchScopes == nil {
		planned.SearchScopes = scope.Baseline()
	}
	for _, sc := range planned.SearchScopes {
		if _, ok := scope.Lookup(sc.Value); !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScope, sc.Value)
		}
	}

	log.Debug("entities", zap.Int("count", len(entities)))
	searched := entities
	if s.privateIPs {
		searched = domain.RemovePrivateIPs(searched)
	}
	searched = domain.FilterByTypes(searched, s.entityTypes...)
	if len(searched) != len(entities) {
		log.Debug("filtered entities", zap.Int("kept", len(searched)), zap.Int("dropped", len(entities)-len(searched)))
	}

	descs := planner.Plan(searched, planned)
	log.Debug("search requests planned",
		zap.Int("workspaces", len(planned.WorkspaceIDs)),
		zap.Strings("scopes", planned.SearchScopes.Values()),
		zap.Int("queries", len(descs)),
	)

	slots, err := s.exec.Run(ctx, descs)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped once by Lookup
	}
	items := enrich.Enrich(slots)
	log.Debug("search results retrieved", zap.Int("slots", len(slots)), zap.Int("items", len(items)))

	var scopes []string
	if opts.SearchScopes != nil {
		scopes = opts.SearchScopes.Values()
	}
	match := record.MatchOptions{Unique: opts.Unique(), OnlyOne: opts.OnlyOne()}
	now := s.now()

	out := make([]domain.LookupResult, 0, len(entities))
	matchedTotal := 0
	for _, e := range entities {
		matched := record.ForEntity(items, e.Value, match)
		res := domain.LookupResult{Entity: e}
		if len(matched) > 0 {
			matchedTotal++
			groups := record.GroupByType(matched)
			tree := transform.Organize(groups, now)
			tree.Metadata = summary.Metadata(matched, groups, scopes)
			res.Data = &domain.LookupData{Summary: summary.Tags(tree), Details: tree}
		}
		out = append(out, res)
	}

	log.Info("lookup completed",
		zap.Int("entities", len(entities)),
		zap.Int("queries", len(descs)),
		zap.Int("results", len(items)),
		zap.Int("matched_entities", matchedTotal),
	)
	return out, nil
}
