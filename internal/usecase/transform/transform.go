// Package transform normalizes classified result items into canonical
// per-type records and computes per-type statistics.
package transform

import (
	"time"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/details"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

// Organize builds the detail tree for one entity from its classified groups.
// now anchors the recency window. Metadata is left for the caller to fill.
func Organize(groups []record.Group, now time.Time) details.Tree {
	var tree details.Tree
	for _, g := range groups {
		switch g.Type.Kind() {
		case record.KindAsset:
			b := Assets(g.Items)
			tree.Assets = &b
		case record.KindForm:
			b := Forms(g.Items, now)
			tree.Forms = &b
		case record.KindPage:
			b := Pages(g.Items, now)
			tree.Pages = &b
		case record.KindTask:
			b := Tasks(g.Items)
			tree.Tasks = &b
		case record.KindOther:
			tree.Others = append(tree.Others, Generic(g.Type.Name(), g.Items))
		}
	}
	return tree
}

// distinct collects the first truthy alias of every item as text, dropping
// blanks and duplicates while keeping first-seen order.
func distinct(items []record.Item, keys ...string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, it := range items {
		v := it.String(keys...)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
