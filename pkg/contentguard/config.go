package contentguard

import (
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultForbiddenPattern matches markup, shell and control characters:
// < > & " ' / \ { } [ ] ( ) ; : = + * ? % # @ ! $ ^ ` ~ | CR LF TAB
const DefaultForbiddenPattern = "[<>&\"'/\\\\{}\\[\\]();:=+*?%#@!$^`~|\\r\\n\\t]"

// DefaultMaxDepth bounds how deep the scanner descends into nested values.
const DefaultMaxDepth = 64

// DefaultExcludedPathSubstrings lists field name fragments that are never scanned.
var DefaultExcludedPathSubstrings = []string{"password", "token", "signature", "hash", "key", "secret"}

// Config controls forbidden content scanning.
// It is loaded once at startup and must not be mutated afterwards.
//
// Fields are pre-filled by DefaultConfig; environment variables only override
// values that are set, so the usual way to load it is:
//
//	cfg := contentguard.DefaultConfig()
//	config.MustLoad(&cfg)
type Config struct {
	ForbiddenPattern       string   `env:"CONTENT_GUARD_FORBIDDEN_PATTERN" yaml:"forbidden_pattern"`
	ExcludedPathSubstrings []string `env:"CONTENT_GUARD_EXCLUDED_PATHS" envSeparator:"," yaml:"excluded_path_substrings"`
	DetailedMessages       bool     `env:"CONTENT_GUARD_DETAILED_MESSAGES" yaml:"detailed_messages"`
	Enabled                bool     `env:"CONTENT_GUARD_ENABLED" yaml:"enabled"`
	MaxDepth               int      `env:"CONTENT_GUARD_MAX_DEPTH" yaml:"max_depth"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ForbiddenPattern:       DefaultForbiddenPattern,
		ExcludedPathSubstrings: slices.Clone(DefaultExcludedPathSubstrings),
		DetailedMessages:       true,
		Enabled:                true,
		MaxDepth:               DefaultMaxDepth,
	}
}

// Validate checks that the forbidden pattern compiles and limits are sane.
func (c Config) Validate() error {
	if _, err := regexp.Compile(c.ForbiddenPattern); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// fileConfig mirrors Config with optional fields so that keys missing from
// the file keep their defaults.
type fileConfig struct {
	ForbiddenPattern       *string  `yaml:"forbidden_pattern"`
	ExcludedPathSubstrings []string `yaml:"excluded_path_substrings"`
	DetailedMessages       *bool    `yaml:"detailed_messages"`
	Enabled                *bool    `yaml:"enabled"`
	MaxDepth               *int     `yaml:"max_depth"`
}

// ParseYAML builds a Config from a YAML document. Missing keys fall back to
// DefaultConfig; an explicit empty exclusion list disables all exclusions.
//
// Example:
//
//	enabled: true
//	detailed_messages: false
//	forbidden_pattern: "[<>]"
//	excluded_path_substrings: [password, secret]
func ParseYAML(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	if fc.ForbiddenPattern != nil {
		cfg.ForbiddenPattern = *fc.ForbiddenPattern
	}
	if fc.ExcludedPathSubstrings != nil {
		cfg.ExcludedPathSubstrings = fc.ExcludedPathSubstrings
	}
	if fc.DetailedMessages != nil {
		cfg.DetailedMessages = *fc.DetailedMessages
	}
	if fc.Enabled != nil {
		cfg.Enabled = *fc.Enabled
	}
	if fc.MaxDepth != nil {
		cfg.MaxDepth = *fc.MaxDepth
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML policy file. See ParseYAML for the format.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return ParseYAML(data)
}
