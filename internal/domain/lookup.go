package domain

import "github.com/kailas-cloud/cyync-lookup/internal/domain/details"

// LookupData is the summarized and detailed view of an entity's matched results.
type LookupData struct {
	Summary []string     `json:"summary"`
	Details details.Tree `json:"details"`
}

// LookupResult pairs an input entity with its data. Data is nil when nothing matched.
type LookupResult struct {
	Entity Entity      `json:"entity"`
	Data   *LookupData `json:"data"`
}
