package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/enrich"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/executor"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/planner"
)

const sampleSize = 3

// entitySummary is written once per tested entity.
type entitySummary struct {
	Entity         string         `json:"entity"`
	EntityTypes    []string       `json:"entityTypes"`
	SearchScopes   []string       `json:"searchScopes"`
	Workspaces     []string       `json:"workspaces"`
	Duration       string         `json:"duration"`
	TotalResults   int            `json:"totalResults"`
	ResultsByScope map[string]int `json:"resultsByScope"`
	SampleResults  []record.Item  `json:"sampleResults"`
}

// entityOutcome is one line of the --all-entities summary.
type entityOutcome struct {
	EntityIndex int    `json:"entityIndex"`
	Entity      string `json:"entity"`
	Success     bool   `json:"success"`
	ResultCount int    `json:"resultCount,omitempty"`
	Error       string `json:"error,omitempty"`
}

type runSummary struct {
	TotalEntities int             `json:"totalEntities"`
	Successful    int             `json:"successful"`
	Failed        int             `json:"failed"`
	Results       []entityOutcome `json:"results"`
}

// runner plans, executes and enriches queries for sample entities.
type runner struct {
	exec  *executor.Service
	opts  domain.Options
	out   io.Writer
	file  *resultsFile
	now   func() time.Time
	pause time.Duration
}

func (r *runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, "[%s] %s\n", r.now().UTC().Format(time.RFC3339), fmt.Sprintf(format, args...))
}

// testEntity queries every workspace and scope for one entity.
func (r *runner) testEntity(ctx context.Context, entity domain.Entity) ([]record.Item, error) {
	r.logf("Testing Entity: %s (%s)", entity.Value, strings.Join(entity.Types, ", "))

	start := r.now()
	slots, err := r.exec.Run(ctx, planner.Plan([]domain.Entity{entity}, r.opts))
	if err != nil {
		return nil, err
	}
	items := enrich.Enrich(slots)
	duration := r.now().Sub(start)

	sample := items
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	r.logf("Search completed in %dms with %d total results", duration.Milliseconds(), len(items))
	err = r.file.Append(entitySummary{
		Entity:         entity.Value,
		EntityTypes:    entity.Types,
		SearchScopes:   r.opts.SearchScopes.Values(),
		Workspaces:     r.opts.WorkspaceIDs,
		Duration:       fmt.Sprintf("%dms", duration.Milliseconds()),
		TotalResults:   len(items),
		ResultsByScope: countByScope(items),
		SampleResults:  sample,
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// testAll runs every sample entity in turn. Individual failures are recorded, not returned.
func (r *runner) testAll(ctx context.Context, entities []domain.Entity) (runSummary, error) {
	r.logf("Testing all %d entities", len(entities))

	summary := runSummary{TotalEntities: len(entities)}
	for i, entity := range entities {
		r.logf("--- Testing Entity %d/%d ---", i+1, len(entities))

		items, err := r.testEntity(ctx, entity)
		if err != nil {
			r.logf("Failed to test entity %s: %v", entity.Value, err)
			summary.Failed++
			summary.Results = append(summary.Results, entityOutcome{
				EntityIndex: i, Entity: entity.Value, Error: err.Error(),
			})
		} else {
			summary.Successful++
			summary.Results = append(summary.Results, entityOutcome{
				EntityIndex: i, Entity: entity.Value, Success: true, ResultCount: len(items),
			})
		}

		if i < len(entities)-1 && r.pause > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(r.pause):
			}
		}
	}

	r.logf("--- Final Summary ---")
	r.logf("Successful: %d/%d", summary.Successful, summary.TotalEntities)
	r.logf("Failed: %d/%d", summary.Failed, summary.TotalEntities)

	return summary, r.file.Append(summary)
}

func countByScope(items []record.Item) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		if sc := it.Scope(); sc != "" {
			counts[sc]++
		}
	}
	return counts
}
