package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Provenance keys stamped onto every enriched item.
const (
	KeyScope        = "scope"
	KeyWorkspaceID  = "workspaceId"
	KeySearchEntity = "searchEntity"
	// KeyValue holds a non-object raw value that was enriched.
	KeyValue = "_value"
)

// Item is one enriched result record as decoded from the remote JSON.
// A nil Item stands for a null result and is safe to read from.
type Item map[string]any

// SearchEntity returns the search key the item was produced for.
func (it Item) SearchEntity() string { return it.String(KeySearchEntity) }

// WorkspaceID returns the originating workspace.
func (it Item) WorkspaceID() string { return it.String(KeyWorkspaceID) }

// Scope returns the originating scope.
func (it Item) Scope() string { return it.String(KeyScope) }

// First returns the first truthy value among keys: strings must be non-empty,
// numbers non-zero, booleans true. Maps and lists always count.
func (it Item) First(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := it[k]; ok && truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// String returns the first truthy alias rendered as text, or "".
func (it Item) String(keys ...string) string {
	v, ok := it.First(keys...)
	if !ok {
		return ""
	}
	return Text(v)
}

// Number returns the first truthy alias as a float when it is numeric.
// Numeric strings do not count.
func (it Item) Number(keys ...string) (float64, bool) {
	v, ok := it.First(keys...)
	if !ok {
		return 0, false
	}
	return numeric(v)
}

// Text renders a source value for display. Objects with a "title" or "name"
// (CYYNC nests status and type this way) collapse to that field.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		return Item(t).String("title", "name")
	case Item:
		return t.String("title", "name")
	default:
		return fmt.Sprint(t)
	}
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	default:
		if f, ok := numeric(v); ok {
			return f != 0
		}
		return true
	}
}
