package planner

import (
	"fmt"
	"testing"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
)

func TestPlan_CrossProduct(t *testing.T) {
	entities := []domain.Entity{
		{Value: "1.2.3.4", Types: []string{"IPv4"}},
		{Value: "evil.com", Types: []string{"domain"}},
		{Value: "a@b.io", Types: []string{"email"}},
	}
	opts := domain.Options{
		WorkspaceIDs: domain.WorkspaceIDs{"ws1", "ws2"},
		SearchScopes: domain.ParseSearchScopes("assets,forms,pages,tasks"),
	}

	descs := Plan(entities, opts)
	if len(descs) != 3*2*4 {
		t.Fatalf("expected 24 descriptors, got %d", len(descs))
	}

	seen := make(map[string]bool)
	for _, d := range descs {
		k := fmt.Sprintf("%s|%s|%s", d.ResultKey, d.WorkspaceID, d.Scope)
		if seen[k] {
			t.Errorf("duplicate triple %s", k)
		}
		seen[k] = true
	}

	first := descs[0]
	if first.ResultKey != "1.2.3.4" || first.WorkspaceID != "ws1" || first.Scope != "assets" {
		t.Errorf("unexpected first descriptor %+v", first)
	}
	if first.ScopeDisplay != "Assets" {
		t.Errorf("scopeDisplay = %q", first.ScopeDisplay)
	}
	if first.Endpoint != "workspaces/ws1/assets/" {
		t.Errorf("endpoint = %q", first.Endpoint)
	}
	if first.ExtractionPath != query.DefaultExtractionPath {
		t.Errorf("extraction path = %q", first.ExtractionPath)
	}
	if first.Limit != domain.DefaultSearchLimit {
		t.Errorf("limit = %d, want default", first.Limit)
	}
	// Nesting order: entity, then workspace, then scope.
	if descs[1].Scope != "forms" || descs[4].WorkspaceID != "ws2" || descs[8].ResultKey != "evil.com" {
		t.Error("descriptors not in entity/workspace/scope order")
	}
}

func TestPlan_KeepsDuplicates(t *testing.T) {
	entities := []domain.Entity{{Value: "x"}, {Value: "x"}}
	opts := domain.Options{
		WorkspaceIDs: domain.WorkspaceIDs{"ws1"},
		SearchScopes: domain.ParseSearchScopes("assets"),
	}
	if n := len(Plan(entities, opts)); n != 2 {
		t.Errorf("expected 2 descriptors, got %d", n)
	}
}

func TestPlan_EmptyDimensions(t *testing.T) {
	entities := []domain.Entity{{Value: "x"}}

	tests := []struct {
		name string
		opts domain.Options
	}{
		{"no workspaces", domain.Options{SearchScopes: domain.ParseSearchScopes("assets")}},
		{"no scopes", domain.Options{WorkspaceIDs: domain.WorkspaceIDs{"ws1"}, SearchScopes: domain.SearchScopes{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := len(Plan(entities, tt.opts)); n != 0 {
				t.Errorf("expected 0 descriptors, got %d", n)
			}
		})
	}
}

func TestPlan_SearchTermStaysOutOfPath(t *testing.T) {
	opts := domain.Options{
		WorkspaceIDs: domain.WorkspaceIDs{"team/a"},
		SearchScopes: domain.ParseSearchScopes("forms"),
		SearchLimit:  10,
	}
	d := Plan([]domain.Entity{{Value: "a+b@c.io/x"}}, opts)[0]

	if d.Endpoint != "workspaces/team%2Fa/forms/" {
		t.Errorf("endpoint = %q", d.Endpoint)
	}
	q := d.Query()
	if q.Get("search") != "a+b@c.io/x" {
		t.Errorf("search = %q", q.Get("search"))
	}
	if q.Get("limit") != "10" {
		t.Errorf("limit = %q", q.Get("limit"))
	}
	if !q.Has("type") {
		t.Error("expected empty type parameter")
	}
}
