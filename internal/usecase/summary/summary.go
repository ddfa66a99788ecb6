// Package summary builds the lookup metadata block and the human-readable tag list.
package summary

import (
	"fmt"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/details"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/scope"
)

// Metadata describes an entity's matched set. scopes are the configured search
// scope values; nil falls back to the full scope registry.
func Metadata(matched []record.Item, groups []record.Group, scopes []string) details.Metadata {
	if scopes == nil {
		scopes = scope.Values()
	}
	types := make([]string, 0, len(groups))
	for _, g := range groups {
		types = append(types, g.Type.Name())
	}
	return details.Metadata{
		TotalResults: len(matched),
		SearchScopes: scopes,
		ResultTypes:  types,
		Workspaces:   workspaces(matched),
	}
}

func workspaces(items []record.Item) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, it := range items {
		ws := it.WorkspaceID()
		if ws == "" {
			continue
		}
		if _, ok := seen[ws]; ok {
			continue
		}
		seen[ws] = struct{}{}
		out = append(out, ws)
	}
	return out
}

// Tags renders the summary tags: known types first (assets, forms, pages, tasks),
// each followed by its qualifying sub-metric, then discovered types in discovery order.
func Tags(tree details.Tree) []string {
	var tags []string
	if b := tree.Assets; b != nil {
		tags = append(tags, tag(record.Asset.Label(), b.Count))
		if b.Summary.HighRiskCount > 0 {
			tags = append(tags, tag("High Risk", b.Summary.HighRiskCount))
		}
	}
	if b := tree.Forms; b != nil {
		tags = append(tags, tag(record.Form.Label(), b.Count))
		if b.Summary.RecentForms > 0 {
			tags = append(tags, tag("Recent", b.Summary.RecentForms))
		}
	}
	if b := tree.Pages; b != nil {
		tags = append(tags, tag(record.Page.Label(), b.Count))
	}
	if b := tree.Tasks; b != nil {
		tags = append(tags, tag(record.Task.Label(), b.Count))
		if b.Summary.ActiveTasks > 0 {
			tags = append(tags, tag("Active", b.Summary.ActiveTasks))
		}
	}
	for _, b := range tree.Others {
		tags = append(tags, tag(record.Other(b.Type).Label(), b.Count))
	}
	return tags
}

func tag(label string, n int) string {
	return fmt.Sprintf("%s: %d", label, n)
}
