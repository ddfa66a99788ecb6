package cyync

import "github.com/kailas-cloud/cyync-lookup/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidOptions = domain.ErrInvalidOptions
	ErrUnknownScope   = domain.ErrUnknownScope
	ErrTransport      = domain.ErrTransport
)

// LookupError is the single failure a Lookup returns. Status carries the
// CYYNC response status when the failure came from a remote query.
type LookupError = domain.LookupError
