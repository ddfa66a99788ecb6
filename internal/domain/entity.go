package domain

import (
	"net/netip"
	"strings"
)

// Entity is an input lookup key plus its recognized type tags.
// Matching against results is by exact, case-sensitive Value.
type Entity struct {
	Value string   `json:"value"`
	Types []string `json:"types"`
}

// IsIP reports whether the entity value parses as an IPv4 or IPv6 address.
func (e Entity) IsIP() bool {
	_, err := netip.ParseAddr(e.Value)
	return err == nil
}

// HasType reports whether the entity carries t, case-insensitively.
func (e Entity) HasType(t string) bool {
	for _, et := range e.Types {
		if strings.EqualFold(et, t) {
			return true
		}
	}
	return false
}

// RemovePrivateIPs drops IP entities with private addresses (RFC 1918, RFC 4193).
// Non-IP entities pass through unchanged.
func RemovePrivateIPs(entities []Entity) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if addr, err := netip.ParseAddr(e.Value); err == nil && addr.IsPrivate() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterByTypes keeps entities carrying at least one of types (case-insensitive).
// An empty types list keeps every entity.
func FilterByTypes(entities []Entity, types ...string) []Entity {
	if len(types) == 0 {
		return entities
	}
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		for _, t := range types {
			if e.HasType(t) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
