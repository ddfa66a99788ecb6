package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/scope"
)

// Config holds the cyync-lookup service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Cyync   CyyncConfig   `yaml:"cyync"`
	Lookup  LookupConfig  `yaml:"lookup"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds inbound API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CyyncConfig holds the remote CYYNC instance settings.
type CyyncConfig struct {
	URL         string  `yaml:"url"`
	AccessToken string  `yaml:"access_token"`
	RoleID      string  `yaml:"role_id"`
	TimeoutSec  int     `yaml:"timeout_sec"`
	RateLimit   float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst   int     `yaml:"rate_burst"`
}

// Timeout returns the per-request timeout.
func (c CyyncConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Connection returns the settings checked by option validation.
func (c CyyncConfig) Connection() domain.Connection {
	return domain.Connection{URL: c.URL, AccessToken: c.AccessToken, RoleID: c.RoleID}
}

// LookupConfig holds lookup pipeline defaults.
type LookupConfig struct {
	WorkspaceIDs        domain.WorkspaceIDs `yaml:"workspace_ids"` // "a,b" or a list
	SearchScopes        domain.SearchScopes `yaml:"search_scopes"`
	SearchLimit         int                 `yaml:"search_limit"`
	Concurrency         int                 `yaml:"concurrency"`
	OnlyReturnPopulated *bool               `yaml:"only_return_populated"` // default true
	RemovePrivateIPs    bool                `yaml:"remove_private_ips"`
	EntityTypes         []string            `yaml:"entity_types"`
	UniqueResults       bool                `yaml:"unique_results"`
	OnlyOneResult       bool                `yaml:"only_one_result"`
}

// Options returns the per-request defaults derived from the lookup section.
func (c LookupConfig) Options() domain.Options {
	return domain.Options{
		WorkspaceIDs:  c.WorkspaceIDs,
		SearchScopes:  c.SearchScopes,
		SearchLimit:   c.SearchLimit,
		UniqueResults: &c.UniqueResults,
		OnlyOneResult: &c.OnlyOneResult,
	}
}

// PopulatedOnly reports whether empty query results are discarded.
func (c LookupConfig) PopulatedOnly() bool {
	return c.OnlyReturnPopulated == nil || *c.OnlyReturnPopulated
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates raw YAML.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// A lookup can fan out to hundreds of remote queries.
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Cyync.TimeoutSec <= 0 {
		c.Cyync.TimeoutSec = 30
	}
	if c.Cyync.RateBurst <= 0 {
		c.Cyync.RateBurst = 10
	}
	if c.Lookup.SearchScopes == nil {
		c.Lookup.SearchScopes = scope.Baseline()
	}
	if c.Lookup.SearchLimit <= 0 {
		c.Lookup.SearchLimit = domain.DefaultSearchLimit
	}
	if c.Lookup.Concurrency <= 0 {
		c.Lookup.Concurrency = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Cyync.RateLimit < 0 {
		return fmt.Errorf("cyync.rate_limit must not be negative, got %v", c.Cyync.RateLimit)
	}
	if errs := domain.ValidateOptions(c.Cyync.Connection(), c.Lookup.Options()); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, configKey(e.Key)+": "+e.Message)
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

var configKeys = map[string]string{
	"url":          "cyync.url",
	"accessToken":  "cyync.access_token",
	"searchScopes": "lookup.search_scopes",
	"searchLimit":  "lookup.search_limit",
}

func configKey(optionKey string) string {
	if k, ok := configKeys[optionKey]; ok {
		return k
	}
	return optionKey
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
