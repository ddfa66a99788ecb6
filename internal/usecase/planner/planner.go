package planner

import (
	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
)

// Plan emits one descriptor per (entity, workspace, scope) triple, in that
// nesting order. Duplicates are kept: callers rely on exactly one descriptor
// per triple. Empty workspaces or scopes yield no descriptors.
func Plan(entities []domain.Entity, opts domain.Options) []query.Descriptor {
	workspaces := opts.WorkspaceIDs
	scopes := opts.SearchScopes
	limit := opts.Limit()

	out := make([]query.Descriptor, 0, len(entities)*len(workspaces)*len(scopes))
	for _, e := range entities {
		for _, ws := range workspaces {
			for _, sc := range scopes {
				out = append(out, query.Descriptor{
					ResultKey:      e.Value,
					WorkspaceID:    ws,
					Scope:          sc.Value,
					ScopeDisplay:   sc.Display,
					EntityTypes:    e.Types,
					Endpoint:       query.Endpoint(ws, sc.Value),
					ExtractionPath: query.DefaultExtractionPath,
					Limit:          limit,
				})
			}
		}
	}
	return out
}
