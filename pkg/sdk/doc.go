// Package cyync provides a Go client that searches a CYYNC instance for
// threat-intel entities and returns one normalized result per entity.
//
// Each entity is searched in every configured workspace and scope (assets,
// forms, pages, tasks). Matching records are grouped by type, normalized,
// and summarized into display tags such as "Assets: 3" or "High Risk: 1".
//
//	client, _ := cyync.New(
//	    cyync.WithURL("https://cyync.example.com"),
//	    cyync.WithAccessToken(token),
//	    cyync.WithWorkspaces("w1", "w2"),
//	    cyync.WithSearchScopes("assets", "forms", "tasks"),
//	)
//	results, err := client.Lookup(ctx, []cyync.Entity{
//	    {Value: "8.8.8.8", Types: []string{"IPv4"}},
//	}, cyync.Options{})
//
// A lookup either succeeds for every entity or fails as a whole with a
// *LookupError; entities without matches carry a nil Data.
package cyync
