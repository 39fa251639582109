package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the strata.yaml deployment configuration.
type Config struct {
	// Validation selects the dispatch entry points: "checked" validates every
	// pointer and slot type before calling an implementation, "unchecked"
	// skips validation and leaves malformed input undefined.
	// Defaults to "checked".
	Validation string `yaml:"validation,omitempty"`

	// MemoryLimit caps the bytes of live value slots. 0 means unlimited.
	MemoryLimit int64 `yaml:"memory_limit,omitempty"`

	// TypeNameCapacity is the buffer size used by the `type` method,
	// terminator included. Defaults to TypeNameCapacity (16).
	TypeNameCapacity int `yaml:"type_name_capacity,omitempty"`

	// Types lists the builtin types to publish by display name.
	// Empty publishes every builtin type.
	Types []string `yaml:"types,omitempty"`

	// Verbose logs strategy publication to stderr.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Default returns the configuration used when no strata.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Checked reports whether dispatch runs through the validating entry points.
func (c *Config) Checked() bool {
	return c.Validation != ValidationUnchecked
}

// LoadConfig reads and parses a strata.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses strata.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for strata.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file, or empty string if none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Validation {
	case "", ValidationChecked, ValidationUnchecked:
	default:
		return fmt.Errorf("%s: validation must be %q or %q, got %q",
			path, ValidationChecked, ValidationUnchecked, c.Validation)
	}

	if c.MemoryLimit < 0 {
		return fmt.Errorf("%s: memory_limit must not be negative", path)
	}

	// One byte of content plus the terminator.
	if c.TypeNameCapacity != 0 && c.TypeNameCapacity < 2 {
		return fmt.Errorf("%s: type_name_capacity must be at least 2, got %d", path, c.TypeNameCapacity)
	}

	seen := make(map[string]bool)
	for i, name := range c.Types {
		if name == "" {
			return fmt.Errorf("%s: types[%d]: empty type name", path, i)
		}
		if seen[name] {
			return fmt.Errorf("%s: types[%d]: %q listed twice", path, i, name)
		}
		seen[name] = true
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Validation == "" {
		c.Validation = ValidationChecked
	}
	if c.TypeNameCapacity == 0 {
		c.TypeNameCapacity = TypeNameCapacity
	}
}
