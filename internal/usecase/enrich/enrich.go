// Package enrich stamps executor results with the provenance of the query that produced them.
package enrich

import (
	"maps"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/executor"
)

// Enrich flattens the list in every slot into one item sequence, stamping each
// item with its slot's scope, workspace and search key. Source items are copied,
// never mutated. Non-list slots contribute nothing.
func Enrich(slots []executor.Slot) []record.Item {
	var out []record.Item
	for _, slot := range slots {
		list, ok := slot.Items()
		if !ok {
			continue
		}
		d := slot.Descriptor
		for _, raw := range list {
			it := item(raw)
			it[record.KeyScope] = d.Scope
			it[record.KeyWorkspaceID] = d.WorkspaceID
			it[record.KeySearchEntity] = d.ResultKey
			out = append(out, it)
		}
	}
	return out
}

func item(raw any) record.Item {
	switch v := raw.(type) {
	case map[string]any:
		it := make(record.Item, len(v)+3)
		maps.Copy(it, v)
		return it
	case record.Item:
		it := make(record.Item, len(v)+3)
		maps.Copy(it, v)
		return it
	case nil:
		return make(record.Item, 3)
	default:
		return record.Item{record.KeyValue: v}
	}
}
