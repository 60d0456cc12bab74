package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hollowbrook/sitesearch/internal/domain/search/options"
)

// Config holds the sitesearch server configuration.
type Config struct {
	BaseURL         string                    `yaml:"baseURL"`
	DefaultLanguage string                    `yaml:"defaultLanguage"`
	ContentDir      string                    `yaml:"contentDir"`
	HTTP            HTTPConfig                `yaml:"http"`
	Logging         LoggingConfig             `yaml:"logging"`
	Search          SearchConfig              `yaml:"search"`
	Languages       map[string]LanguageConfig `yaml:"languages"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// LanguageConfig holds one site language, optionally overriding the
// site-wide search settings for that locale.
type LanguageConfig struct {
	Title  string        `yaml:"title"`
	Weight int           `yaml:"weight"`
	Search *SearchConfig `yaml:"search"`
}

// SearchConfig mirrors the host site's search-options block. Pointer fields
// distinguish "not set" from an explicit zero so per-language overrides only
// replace what they name.
type SearchConfig struct {
	IsCaseSensitive    *bool    `yaml:"isCaseSensitive"`
	ShouldSort         *bool    `yaml:"shouldSort"`
	Location           *int     `yaml:"location"`
	Distance           *int     `yaml:"distance"`
	Threshold          *float64 `yaml:"threshold"`
	MinMatchCharLength *int     `yaml:"minMatchCharLength"`
	Limit              *int     `yaml:"limit"`
	Keys               []string `yaml:"keys"`
}

// apply overlays the set fields onto p.
func (s *SearchConfig) apply(p *options.Params) {
	if s == nil {
		return
	}
	if s.IsCaseSensitive != nil {
		p.CaseSensitive = *s.IsCaseSensitive
	}
	if s.ShouldSort != nil {
		p.SortResults = *s.ShouldSort
	}
	if s.Location != nil {
		p.Location = *s.Location
	}
	if s.Distance != nil {
		p.Distance = *s.Distance
	}
	if s.Threshold != nil {
		p.Threshold = *s.Threshold
	}
	if s.MinMatchCharLength != nil {
		p.MinMatchCharLength = *s.MinMatchCharLength
	}
	if s.Limit != nil {
		p.Limit = *s.Limit
	}
	if len(s.Keys) > 0 {
		p.Keys = append([]string(nil), s.Keys...)
	}
}

// Load reads configuration from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

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
func MustLoad(path string) Config {
	cfg, err := Load(path)
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
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
}

// Validate checks the configuration for correctness. Search option ranges
// are validated per locale so a bad override fails at startup, not mid-query.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return fmt.Errorf("baseURL %q: %w", c.BaseURL, err)
		}
	}
	if len(c.Languages) > 0 {
		if _, ok := c.Languages[c.DefaultLanguage]; !ok {
			return fmt.Errorf("defaultLanguage %q is not in languages", c.DefaultLanguage)
		}
	}
	for _, locale := range c.Locales() {
		if _, err := c.ResolveSearch(locale); err != nil {
			return fmt.Errorf("language %q: %w", locale, err)
		}
	}
	return nil
}

// Locales returns the configured language codes, sorted, falling back to
// the default language when no languages block is present.
func (c *Config) Locales() []string {
	if len(c.Languages) == 0 {
		return []string{c.DefaultLanguage}
	}
	locales := make([]string, 0, len(c.Languages))
	for code := range c.Languages {
		locales = append(locales, code)
	}
	sort.Strings(locales)
	return locales
}

// ResolveSearch computes the effective search options for one locale:
// documented defaults, overlaid with the site-wide block, overlaid with the
// language's own block. The result is validated once here; queries never
// re-validate.
func (c *Config) ResolveSearch(locale string) (options.Options, error) {
	p := options.DefaultParams()
	c.Search.apply(&p)
	if lang, ok := c.Languages[locale]; ok {
		lang.Search.apply(&p)
	}
	return options.New(p)
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
