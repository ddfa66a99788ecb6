package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/scope"
)

// DefaultSearchLimit is the per-query result limit when none is configured.
const DefaultSearchLimit = 50

// Options are the per-invocation lookup settings. Treated read-only by the pipeline.
type Options struct {
	WorkspaceIDs WorkspaceIDs `json:"workspaceIds,omitempty"`
	// SearchScopes is nil when unset; an empty, non-nil list queries nothing.
	SearchScopes SearchScopes `json:"searchScopes,omitempty"`
	SearchLimit  int          `json:"searchLimit,omitempty"`

	// UniqueResults drops deep-equal duplicates from an entity's matched set.
	// Nil defers to the configured default.
	UniqueResults *bool `json:"onlyReturnUniqueResults,omitempty"`
	// OnlyOneResult keeps only the first matched item per entity.
	OnlyOneResult *bool `json:"onlyOneResultExpected,omitempty"`
}

// Unique reports whether duplicate matches are dropped.
func (o Options) Unique() bool { return o.UniqueResults != nil && *o.UniqueResults }

// OnlyOne reports whether only the first match per entity is kept.
func (o Options) OnlyOne() bool { return o.OnlyOneResult != nil && *o.OnlyOneResult }

// Limit returns the effective search limit.
func (o Options) Limit() int {
	if o.SearchLimit <= 0 {
		return DefaultSearchLimit
	}
	return o.SearchLimit
}

// Merge fills unset fields of o from defaults. A flag set on o, true or
// false, wins over the default.
func (o Options) Merge(defaults Options) Options {
	if o.WorkspaceIDs == nil {
		o.WorkspaceIDs = defaults.WorkspaceIDs
	}
	if o.SearchScopes == nil {
		o.SearchScopes = defaults.SearchScopes
	}
	if o.SearchLimit <= 0 {
		o.SearchLimit = defaults.SearchLimit
	}
	if o.UniqueResults == nil {
		o.UniqueResults = defaults.UniqueResults
	}
	if o.OnlyOneResult == nil {
		o.OnlyOneResult = defaults.OnlyOneResult
	}
	return o
}

// WorkspaceIDs is a list of workspace identifiers. It decodes from either a
// comma-separated string or a list.
type WorkspaceIDs []string

// ParseWorkspaceIDs splits a comma-separated list, trimming blanks.
func ParseWorkspaceIDs(s string) WorkspaceIDs {
	ids := WorkspaceIDs{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// UnmarshalJSON accepts "a,b" or ["a","b"].
func (w *WorkspaceIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*w = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("workspaceIds: %w", err)
		}
		*w = ParseWorkspaceIDs(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("workspaceIds must be a string or a list: %w", ErrInvalidOptions)
	}
	*w = cleanIDs(list)
	return nil
}

// UnmarshalYAML accepts a scalar "a,b" or a sequence.
func (w *WorkspaceIDs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*w = ParseWorkspaceIDs(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("workspace_ids: %w", err)
		}
		*w = cleanIDs(list)
		return nil
	default:
		return fmt.Errorf("workspace_ids must be a string or a list: %w", ErrInvalidOptions)
	}
}

func cleanIDs(list []string) WorkspaceIDs {
	ids := make(WorkspaceIDs, 0, len(list))
	for _, id := range list {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SearchScopes is the selected scope list. It decodes from a list of
// {value, display} objects or a list of scope values.
type SearchScopes []scope.Scope

// Values returns the scope values in order.
func (s SearchScopes) Values() []string {
	out := make([]string, len(s))
	for i, sc := range s {
		out[i] = sc.Value
	}
	return out
}

// ParseSearchScopes resolves a comma-separated list of scope values against
// the registry, silently dropping unknown values.
func ParseSearchScopes(s string) SearchScopes {
	out := SearchScopes{}
	for _, part := range strings.Split(s, ",") {
		if sc, ok := scope.Lookup(strings.TrimSpace(part)); ok {
			out = append(out, sc)
		}
	}
	return out
}

// UnmarshalJSON rejects anything but a list.
func (s *SearchScopes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("searchScopes must be a list: %w", ErrInvalidOptions)
	}
	out := make(SearchScopes, 0, len(raw))
	for _, r := range raw {
		var value string
		if err := json.Unmarshal(r, &value); err == nil {
			out = append(out, scopeFromValue(value))
			continue
		}
		var sc scope.Scope
		if err := json.Unmarshal(r, &sc); err != nil {
			return fmt.Errorf("searchScopes entry %s: %w", string(r), ErrInvalidOptions)
		}
		if sc.Display == "" {
			sc.Display = scope.Display(sc.Value)
		}
		out = append(out, sc)
	}
	*s = out
	return nil
}

// UnmarshalYAML accepts a sequence of scope values or {value, display} maps.
func (s *SearchScopes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("search_scopes must be a list: %w", ErrInvalidOptions)
	}
	out := make(SearchScopes, 0, len(node.Content))
	for _, n := range node.Content {
		switch n.Kind {
		case yaml.ScalarNode:
			out = append(out, scopeFromValue(n.Value))
		case yaml.MappingNode:
			var sc scope.Scope
			if err := n.Decode(&sc); err != nil {
				return fmt.Errorf("search_scopes: %w", err)
			}
			if sc.Display == "" {
				sc.Display = scope.Display(sc.Value)
			}
			out = append(out, sc)
		default:
			return fmt.Errorf("search_scopes entry at line %d: %w", n.Line, ErrInvalidOptions)
		}
	}
	*s = out
	return nil
}

func scopeFromValue(value string) scope.Scope {
	if sc, ok := scope.Lookup(value); ok {
		return sc
	}
	return scope.Scope{Value: value, Display: value}
}
