// Package details holds the per-entity detail tree: normalized records grouped
// by type, per-type statistics, and lookup metadata.
package details

import (
	"encoding/json"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

// MetadataKey is the reserved detail-tree key for Metadata when serialized.
const MetadataKey = "_metadata"

// Bucket groups the normalized records of one type with their statistics.
type Bucket[R, S any] struct {
	Count   int `json:"count"`
	Items   []R `json:"items"`
	Summary S   `json:"summary"`
}

// OtherBucket holds records of a discovered, unregistered type.
type OtherBucket struct {
	Type    string          `json:"type"`
	Count   int             `json:"count"`
	Items   []GenericRecord `json:"items"`
	Summary GenericSummary  `json:"summary"`
}

// Metadata describes the matched set an entity's tree was built from.
type Metadata struct {
	TotalResults int      `json:"totalResults"`
	SearchScopes []string `json:"searchScopes"`
	ResultTypes  []string `json:"resultTypes"`
	Workspaces   []string `json:"workspaces"`
}

// Tree is the detail tree for one entity. Known types have dedicated fields,
// discovered types live in Others in discovery order.
type Tree struct {
	Assets   *Bucket[AssetRecord, AssetSummary]
	Forms    *Bucket[FormRecord, FormSummary]
	Pages    *Bucket[PageRecord, PageSummary]
	Tasks    *Bucket[TaskRecord, TaskSummary]
	Others   []OtherBucket
	Metadata Metadata
}

// Other returns the bucket for a discovered type name.
func (t *Tree) Other(name string) (OtherBucket, bool) {
	for _, b := range t.Others {
		if b.Type == name {
			return b, true
		}
	}
	return OtherBucket{}, false
}

// Count returns the number of records classified under typ.
func (t *Tree) Count(typ record.Type) int {
	switch typ.Kind() {
	case record.KindAsset:
		if t.Assets != nil {
			return t.Assets.Count
		}
	case record.KindForm:
		if t.Forms != nil {
			return t.Forms.Count
		}
	case record.KindPage:
		if t.Pages != nil {
			return t.Pages.Count
		}
	case record.KindTask:
		if t.Tasks != nil {
			return t.Tasks.Count
		}
	case record.KindOther:
		if b, ok := t.Other(typ.Name()); ok {
			return b.Count
		}
	}
	return 0
}

// MarshalJSON flattens the tree into one object keyed by type name, with
// metadata under "_metadata".
func (t Tree) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Others)+5)
	if t.Assets != nil {
		out[record.Asset.Name()] = t.Assets
	}
	if t.Forms != nil {
		out[record.Form.Name()] = t.Forms
	}
	if t.Pages != nil {
		out[record.Page.Name()] = t.Pages
	}
	if t.Tasks != nil {
		out[record.Task.Name()] = t.Tasks
	}
	for _, b := range t.Others {
		out[b.Type] = b
	}
	out[MetadataKey] = t.Metadata
	return json.Marshal(out)
}
