package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
)

const minimalYAML = `
http:
  port: 8080
cyync:
  url: https://cyync.example
  access_token: tok
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("write timeout = %d, want 120", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Cyync.Timeout() != 30*time.Second {
		t.Errorf("cyync timeout = %v, want 30s", cfg.Cyync.Timeout())
	}
	if cfg.Cyync.RateBurst != 10 {
		t.Errorf("rate burst = %d, want 10", cfg.Cyync.RateBurst)
	}
	if got := strings.Join(cfg.Lookup.SearchScopes.Values(), ","); got != "assets,forms" {
		t.Errorf("search scopes = %q, want assets,forms", got)
	}
	if cfg.Lookup.SearchLimit != domain.DefaultSearchLimit {
		t.Errorf("search limit = %d", cfg.Lookup.SearchLimit)
	}
	if cfg.Lookup.Concurrency != 10 {
		t.Errorf("concurrency = %d, want 10", cfg.Lookup.Concurrency)
	}
	if !cfg.Lookup.PopulatedOnly() {
		t.Error("only_return_populated should default to true")
	}
}

func TestParse_LookupSection(t *testing.T) {
	data := minimalYAML + `
lookup:
  workspace_ids: " w1 , w2,, "
  search_scopes:
    - tasks
    - value: pages
      display: Wiki
  search_limit: 5
  only_return_populated: false
  unique_results: true
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := cfg.Lookup.Options()
	if got := strings.Join(opts.WorkspaceIDs, ","); got != "w1,w2" {
		t.Errorf("workspace ids = %q, want w1,w2", got)
	}
	if len(opts.SearchScopes) != 2 || opts.SearchScopes[0].Display != "Tasks" || opts.SearchScopes[1].Display != "Wiki" {
		t.Errorf("search scopes = %+v", opts.SearchScopes)
	}
	if opts.SearchLimit != 5 || !opts.Unique() {
		t.Errorf("options = %+v", opts)
	}
	if cfg.Lookup.PopulatedOnly() {
		t.Error("only_return_populated: false was ignored")
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_CYYNC_TOKEN", "from-env")
	t.Setenv("TEST_CYYNC_UNSET", "")

	data := `
http:
  port: ${TEST_CYYNC_PORT:-9090}
cyync:
  url: https://cyync.example
  access_token: ${TEST_CYYNC_TOKEN}
  role_id: ${TEST_CYYNC_UNSET:-analyst}
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Cyync.AccessToken != "from-env" {
		t.Errorf("access token = %q", cfg.Cyync.AccessToken)
	}
	if cfg.Cyync.Connection().RoleID != "analyst" {
		t.Errorf("role id = %q, want analyst", cfg.Cyync.RoleID)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "bad port",
			data: "cyync:\n  url: https://cyync.example\n  access_token: tok\n",
			want: "http.port must be between 1 and 65535, got 0",
		},
		{
			name: "negative rate limit",
			data: minimalYAML + "  rate_limit: -1\n",
			want: "cyync.rate_limit must not be negative",
		},
		{
			name: "missing token",
			data: "http:\n  port: 8080\ncyync:\n  url: https://cyync.example\n",
			want: "cyync.access_token: * Required",
		},
		{
			name: "trailing slash",
			data: "http:\n  port: 8080\ncyync:\n  url: https://cyync.example/\n  access_token: tok\n",
			want: "cyync.url: Your Url must not end with a /",
		},
		{
			name: "unknown scope",
			data: minimalYAML + "lookup:\n  search_scopes: [assets, incidents]\n",
			want: "lookup.search_scopes: Invalid search scopes: incidents.",
		},
		{
			name: "scopes not a list",
			data: minimalYAML + "lookup:\n  search_scopes: assets\n",
			want: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cyync.URL != "https://cyync.example" {
		t.Errorf("url = %q", cfg.Cyync.URL)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
