package transform

import (
	"encoding/json"
	"time"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

// RecentWindow is how far back an item still counts as recent.
const RecentWindow = 7 * 24 * time.Hour

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// countRecent counts items whose first truthy date alias falls strictly after now-RecentWindow.
func countRecent(items []record.Item, now time.Time, keys ...string) int {
	cutoff := now.Add(-RecentWindow)
	n := 0
	for _, it := range items {
		v, ok := it.First(keys...)
		if !ok {
			continue
		}
		if ts, ok := parseTime(v); ok && ts.After(cutoff) {
			n++
		}
	}
	return n
}

// parseTime accepts ISO-8601 style strings and epoch milliseconds.
func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	case float64:
		return time.UnixMilli(int64(t)), true
	case int64:
		return time.UnixMilli(t), true
	case int:
		return time.UnixMilli(int64(t)), true
	case json.Number:
		if ms, err := t.Int64(); err == nil {
			return time.UnixMilli(ms), true
		}
	}
	return time.Time{}, false
}
