// Package config provides configuration loading and management for archgov.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/archgov/decision"
	"github.com/c360studio/archgov/relations"
	"github.com/c360studio/archgov/repository"
)

// Config represents the complete archgov configuration
type Config struct {
	Docs       DocsConfig       `yaml:"docs"`
	Validation ValidationConfig `yaml:"validation"`
	// Decision replaces the built-in keyword table when set.
	Decision *decision.Config `yaml:"decision,omitempty"`
	Watch    WatchConfig      `yaml:"watch"`
	Cache    CacheConfig      `yaml:"cache"`
	Rules    RulesConfig      `yaml:"rules"`
}

// DocsConfig configures where decision documents live
type DocsConfig struct {
	// Root is the documents directory. Relative roots are resolved against
	// the directory of the project config file, or the working directory.
	Root string `yaml:"root"`
	// Pattern is a doublestar glob relative to Root
	Pattern string `yaml:"pattern"`
	// QuickScanLines bounds quick front matter extraction
	QuickScanLines int `yaml:"quick_scan_lines"`
	// ExcludeDirs lists directory names skipped during discovery, on top
	// of .git, node_modules and dot-directories which are always skipped.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// ValidationConfig selects the relationship checks
type ValidationConfig struct {
	relations.Options `yaml:",inline"`
	// FailOnViolation makes validate exit non-zero on any violation
	FailOnViolation bool `yaml:"fail_on_violation"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is the quiet period before a change batch is processed
	Debounce time.Duration `yaml:"debounce"`
	// MetricsAddr serves /metrics when non-empty (e.g. ":9464")
	MetricsAddr string `yaml:"metrics_addr"`
}

// CacheConfig configures the loader parse cache
type CacheConfig struct {
	Size int `yaml:"size"`
}

// RulesConfig configures the rule-set catalog
type RulesConfig struct {
	// CatalogDir holds extra rule-set YAML files loaded on top of the
	// built-in catalog. Empty means built-in only.
	CatalogDir string `yaml:"catalog_dir"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Docs: DocsConfig{
			Root:           "docs/adr",
			Pattern:        repository.DefaultPattern,
			QuickScanLines: 50,
			ExcludeDirs:    []string{".git", "node_modules"},
		},
		Validation: ValidationConfig{
			Options:         relations.DefaultOptions(),
			FailOnViolation: true,
		},
		Watch: WatchConfig{
			Debounce: repository.DefaultDebounce,
		},
		Cache: CacheConfig{
			Size: repository.DefaultCacheSize,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Docs.Root == "" {
		return fmt.Errorf("docs.root is required")
	}
	if c.Docs.Pattern == "" {
		return fmt.Errorf("docs.pattern is required")
	}
	if c.Docs.QuickScanLines <= 0 {
		return fmt.Errorf("docs.quick_scan_lines must be positive")
	}
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive")
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative")
	}
	if c.Decision != nil {
		if err := c.Decision.Validate(); err != nil {
			return fmt.Errorf("decision: %w", err)
		}
	}
	return nil
}

// LoaderOptions converts the docs and cache sections for repository.NewLoader.
func (c *Config) LoaderOptions() repository.Options {
	opts := repository.DefaultOptions(c.Docs.Root)
	opts.Pattern = c.Docs.Pattern
	opts.ExcludeDirs = c.Docs.ExcludeDirs
	opts.CacheSize = c.Cache.Size
	return opts
}

// WatchOptions converts the watch section for repository.NewWatcher.
func (c *Config) WatchOptions() repository.WatchConfig {
	return repository.WatchConfig{
		Debounce:    c.Watch.Debounce,
		Pattern:     c.Docs.Pattern,
		ExcludeDirs: c.Docs.ExcludeDirs,
	}
}

// DecisionConfig returns the configured keyword table or the default one.
func (c *Config) DecisionConfig() decision.Config {
	if c.Decision == nil {
		return decision.DefaultConfig()
	}
	return *c.Decision
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// decodeFile overlays the keys present in path onto config. Absent keys
// keep their current values, so false booleans in a later layer still
// switch a check off.
func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Validation switches are left alone since false is indistinguishable from unset.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Docs
	if other.Docs.Root != "" {
		c.Docs.Root = other.Docs.Root
	}
	if other.Docs.Pattern != "" {
		c.Docs.Pattern = other.Docs.Pattern
	}
	if other.Docs.QuickScanLines != 0 {
		c.Docs.QuickScanLines = other.Docs.QuickScanLines
	}
	if len(other.Docs.ExcludeDirs) > 0 {
		c.Docs.ExcludeDirs = other.Docs.ExcludeDirs
	}

	if other.Decision != nil {
		c.Decision = other.Decision
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.MetricsAddr != "" {
		c.Watch.MetricsAddr = other.Watch.MetricsAddr
	}

	if other.Cache.Size != 0 {
		c.Cache.Size = other.Cache.Size
	}
	if other.Rules.CatalogDir != "" {
		c.Rules.CatalogDir = other.Rules.CatalogDir
	}
}
