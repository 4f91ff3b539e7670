package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultAllowedRadii is the corner-radius scale of the design system.
var DefaultAllowedRadii = []float64{0, 2, 4, 8, 16}

const (
	DefaultStorageKey = "storedErrorsToIgnore"
	DefaultStorageDir = ".designlint"
)

// Config holds project-level configuration loaded from .designlint.yaml.
type Config struct {
	AllowedRadii  []float64 `yaml:"allowed_radii"  json:"allowed_radii,omitempty"`
	DisabledRules []string  `yaml:"disabled_rules" json:"disabled_rules,omitempty"`
	// IsolateSiblingChildren gives every flat record only its own children.
	// When false, records at one level share the level's accumulated child list.
	IsolateSiblingChildren bool   `yaml:"isolate_sibling_children" json:"isolate_sibling_children,omitempty"`
	StorageKey             string `yaml:"storage_key"              json:"storage_key,omitempty"`
	StorageDir             string `yaml:"storage_dir"              json:"storage_dir,omitempty"`
	LogLevel               string `yaml:"log_level"                json:"log_level,omitempty"`
	LogFormat              string `yaml:"log_format"               json:"log_format,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		AllowedRadii: append([]float64(nil), DefaultAllowedRadii...),
		StorageKey:   DefaultStorageKey,
		StorageDir:   DefaultStorageDir,
	}
}

// WithDefaults fills unset fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.AllowedRadii == nil {
		c.AllowedRadii = d.AllowedRadii
	}
	if c.StorageKey == "" {
		c.StorageKey = d.StorageKey
	}
	if c.StorageDir == "" {
		c.StorageDir = d.StorageDir
	}
	return c
}

// IsRuleDisabled reports whether the rule for category is switched off.
func (c Config) IsRuleDisabled(category Category) bool {
	for _, r := range c.DisabledRules {
		if r == string(category) {
			return true
		}
	}
	return false
}

var validLogFormats = []string{"", "CONSOLE", "JSON", "PRETTY", "console", "json", "pretty"}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.AllowedRadii != nil && len(c.AllowedRadii) == 0 {
		return fmt.Errorf("%w: allowed_radii must not be empty", ErrInvalidConfig)
	}
	for _, r := range c.AllowedRadii {
		if r < 0 {
			return fmt.Errorf("%w: allowed_radii contains negative radius %v", ErrInvalidConfig, r)
		}
	}

	for _, r := range c.DisabledRules {
		if !IsValidCategory(r) {
			return fmt.Errorf("%w: unknown rule %q in disabled_rules (valid: fill, stroke, effects, text, radius, component)", ErrInvalidConfig, r)
		}
	}
	if len(c.DisabledRules) >= len(ValidCategories) {
		return fmt.Errorf("%w: cannot disable all rules", ErrInvalidConfig)
	}

	valid := false
	for _, f := range validLogFormats {
		if c.LogFormat == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown log_format %q (valid: console, json, pretty)", ErrInvalidConfig, c.LogFormat)
	}

	return nil
}
