// Package config loads Linkdeck client configuration from config.yaml in
// the resolved configuration directory.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	KeyAPIURL            = "api_url"
	KeyDataDir           = "data_dir"
	KeyHTTPTimeoutMS     = "http.timeout_ms"
	KeyCacheTTLMS        = "cache.ttl_ms"
	KeySearchDebounceMS  = "search.debounce_ms"
	KeySearchMinQueryLen = "search.min_query_len"
	KeySearchLimit       = "search.limit"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
)

// Defaults applied when config.yaml omits a key.
const (
	DefaultAPIURL            = "https://api.linkdeck.app"
	DefaultHTTPTimeout       = 15 * time.Second
	DefaultCacheTTL          = 30 * time.Second
	DefaultSearchDebounce    = 500 * time.Millisecond
	DefaultSearchMinQueryLen = 3
	DefaultSearchLimit       = 10
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Linkdeck client configuration.

# Base URL of the Linkdeck API.
api_url: https://api.linkdeck.app

# Data directory for the local session store (optional; overridable
# by --data-dir flag).
# data_dir:

search:
  debounce_ms: 500
  min_query_len: 3
  limit: 10

cache:
  ttl_ms: 30000

http:
  timeout_ms: 15000

log:
  level: info
  format: text
`

// Config validation errors.
var (
	ErrAPIURLEmpty     = errors.New("api_url must not be empty")
	ErrAPIURLInvalid   = errors.New("api_url must be an absolute http(s) URL")
	ErrTimeoutInvalid  = errors.New("http.timeout_ms must be positive")
	ErrTTLInvalid      = errors.New("cache.ttl_ms must be positive")
	ErrDebounceInvalid = errors.New("search.debounce_ms must be positive")
	ErrMinQueryInvalid = errors.New("search.min_query_len must be positive")
)

// Config holds the resolved client configuration.
type Config struct {
	APIURL            string
	DataDir           string
	HTTPTimeout       time.Duration
	CacheTTL          time.Duration
	SearchDebounce    time.Duration
	SearchMinQueryLen int
	SearchLimit       int
	LogLevel          string
	LogFormat         string
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return ErrAPIURLEmpty
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrAPIURLInvalid
	}
	if c.HTTPTimeout <= 0 {
		return ErrTimeoutInvalid
	}
	if c.CacheTTL <= 0 {
		return ErrTTLInvalid
	}
	if c.SearchDebounce <= 0 {
		return ErrDebounceInvalid
	}
	if c.SearchMinQueryLen <= 0 {
		return ErrMinQueryInvalid
	}
	return nil
}

// Load reads config.yaml from configDir using Viper, creating the directory
// and a default config.yaml on first run. A missing config.yaml is not an
// error; defaults apply.
func Load(configDir string) (Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyHTTPTimeoutMS, int(DefaultHTTPTimeout/time.Millisecond))
	v.SetDefault(KeyCacheTTLMS, int(DefaultCacheTTL/time.Millisecond))
	v.SetDefault(KeySearchDebounceMS, int(DefaultSearchDebounce/time.Millisecond))
	v.SetDefault(KeySearchMinQueryLen, DefaultSearchMinQueryLen)
	v.SetDefault(KeySearchLimit, DefaultSearchLimit)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		APIURL:            v.GetString(KeyAPIURL),
		DataDir:           v.GetString(KeyDataDir),
		HTTPTimeout:       time.Duration(v.GetInt(KeyHTTPTimeoutMS)) * time.Millisecond,
		CacheTTL:          time.Duration(v.GetInt(KeyCacheTTLMS)) * time.Millisecond,
		SearchDebounce:    time.Duration(v.GetInt(KeySearchDebounceMS)) * time.Millisecond,
		SearchMinQueryLen: v.GetInt(KeySearchMinQueryLen),
		SearchLimit:       v.GetInt(KeySearchLimit),
		LogLevel:          v.GetString(KeyLogLevel),
		LogFormat:         v.GetString(KeyLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// ensureDefaultConfigFile writes the default config.yaml on first run.
// An existing file is never overwritten.
func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileName+"."+configFileType)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
