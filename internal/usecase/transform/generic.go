package transform

import (
	"github.com/kailas-cloud/cyync-lookup/internal/domain/details"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

// Generic normalizes a group of a discovered type with no dedicated transformer.
func Generic(typeName string, items []record.Item) details.OtherBucket {
	recs := make([]details.GenericRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, details.GenericRecord{
			ID:   it.String("id"),
			Name: it.String("name", "title"),
			Raw:  it,
		})
	}
	return details.OtherBucket{
		Type:    typeName,
		Count:   len(items),
		Items:   recs,
		Summary: details.GenericSummary{Total: len(items)},
	}
}
