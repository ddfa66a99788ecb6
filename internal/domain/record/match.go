package record

import "reflect"

// MatchOptions adjust the matched set for one entity.
type MatchOptions struct {
	Unique  bool // drop deep-equal duplicates, keeping the first
	OnlyOne bool // keep only the first matched item
}

// ForEntity selects the items whose search key equals value exactly.
func ForEntity(items []Item, value string, opts MatchOptions) []Item {
	var out []Item
	for _, it := range items {
		if it.SearchEntity() != value {
			continue
		}
		if opts.Unique && containsEqual(out, it) {
			continue
		}
		out = append(out, it)
		if opts.OnlyOne {
			break
		}
	}
	return out
}

func containsEqual(items []Item, it Item) bool {
	for _, seen := range items {
		if reflect.DeepEqual(seen, it) {
			return true
		}
	}
	return false
}
