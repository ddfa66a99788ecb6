package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/scope"
)

// Connection holds the remote CYYNC instance settings.
type Connection struct {
	URL         string `json:"url"`
	AccessToken string `json:"accessToken"`
	RoleID      string `json:"roleId"`
}

const requiredMessage = "* Required"

// ValidateOptions checks connection settings and lookup options, returning every
// problem found. An empty result means the options are usable.
func ValidateOptions(conn Connection, opts Options) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(conn.URL) == "" {
		errs = append(errs, ValidationError{Key: "url", Message: requiredMessage})
	} else if msg := checkURL(conn.URL); msg != "" {
		errs = append(errs, ValidationError{Key: "url", Message: msg})
	}
	if strings.TrimSpace(conn.AccessToken) == "" {
		errs = append(errs, ValidationError{Key: "accessToken", Message: requiredMessage})
	}

	var invalid []string
	for _, sc := range opts.SearchScopes {
		if _, ok := scope.Lookup(sc.Value); !ok {
			invalid = append(invalid, sc.Value)
		}
	}
	if len(invalid) > 0 {
		errs = append(errs, ValidationError{
			Key: "searchScopes",
			Message: fmt.Sprintf("Invalid search scopes: %s. Valid options are: %s",
				strings.Join(invalid, ", "), strings.Join(scope.Values(), ", ")),
		})
	}

	if opts.SearchLimit < 0 {
		errs = append(errs, ValidationError{Key: "searchLimit", Message: "Search limit must be a positive integer"})
	}
	return errs
}

func checkURL(raw string) string {
	if strings.HasSuffix(raw, "/") {
		return "Your Url must not end with a /"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "You must provide a valid Url, including the schema (i.e., https://)"
	}
	return ""
}
