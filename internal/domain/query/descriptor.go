package query

import (
	"net/url"
	"strconv"
)

// DefaultExtractionPath locates the result list in a CYYNC search response envelope.
const DefaultExtractionPath = "body.results"

// Descriptor is one planned (entity, workspace, scope) query.
type Descriptor struct {
	ResultKey      string   `json:"resultKey"`
	WorkspaceID    string   `json:"workspaceId"`
	Scope          string   `json:"scope"`
	ScopeDisplay   string   `json:"scopeDisplay"`
	EntityTypes    []string `json:"entityTypes"`
	Endpoint       string   `json:"endpoint"`
	ExtractionPath string   `json:"responseExtractionPath"`
	Limit          int      `json:"limit"`
}

// Endpoint builds the relative search route for a workspace and scope.
// The search term travels as a query parameter, never in the path.
func Endpoint(workspaceID, scope string) string {
	return "workspaces/" + url.PathEscape(workspaceID) + "/" + url.PathEscape(scope) + "/"
}

// Query returns the query parameters carrying the search term.
func (d Descriptor) Query() url.Values {
	q := url.Values{}
	q.Set("search", d.ResultKey)
	q.Set("type", "")
	if d.Limit > 0 {
		q.Set("limit", strconv.Itoa(d.Limit))
	}
	return q
}

// Envelope is the decoded response of one remote query. Only the value at a
// descriptor's extraction path is meaningful to the pipeline.
type Envelope map[string]any
