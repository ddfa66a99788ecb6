package executor

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

// Extract walks a dotted path ("body.results", "data.0.items") into v.
// An empty path returns v itself. A missing step reports found=false.
func Extract(v any, path string) (any, bool) {
	if path == "" {
		return v, v != nil
	}
	cur := v
	for _, step := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case query.Envelope:
			cur = map[string]any(node)
		case record.Item:
			cur = map[string]any(node)
		}
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[step]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(step)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}
