package cyync

import (
	"strings"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/scope"
)

// Entity is a lookup key (IP, domain, hash, email, url, keyword) with its type tags.
type Entity = domain.Entity

// Options override the client defaults for a single Lookup. Zero fields
// fall back to the defaults set with WithWorkspaces, WithSearchScopes and
// WithSearchLimit.
type Options = domain.Options

// Result pairs an input entity with its aggregated data, nil when nothing matched.
type Result = domain.LookupResult

// Data holds the summary tags and the per-type details of one entity.
type Data = domain.LookupData

// ValidationError is one problem found by Validate.
type ValidationError = domain.ValidationError

// Scope is a searchable CYYNC content category.
type Scope = scope.Scope

// Scopes lists every scope a lookup can search, in display order.
func Scopes() []Scope {
	return scope.All()
}

// SearchScopesOf builds an Options.SearchScopes value from scope values.
// Unknown values are kept; Lookup rejects them with ErrUnknownScope.
func SearchScopesOf(values ...string) domain.SearchScopes {
	scopes := make(domain.SearchScopes, 0, len(values))
	for _, v := range values {
		scopes = append(scopes, scopeOf(v))
	}
	return scopes
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func scopeOf(value string) Scope {
	value = strings.TrimSpace(value)
	if sc, ok := scope.Lookup(value); ok {
		return sc
	}
	return Scope{Value: value, Display: value}
}
