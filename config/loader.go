package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "archgov.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/archgov"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvFile is read from the working directory before env overrides apply
	EnvFile = ".env"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "ARCHGOV_"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger

	workDir   string
	homeDir   string
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger, lookupEnv: os.LookupEnv}
	if cwd, err := os.Getwd(); err == nil {
		l.workDir = cwd
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.homeDir = home
	}
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/archgov/config.yaml)
// 3. Project config (archgov.yaml in current or parent directories)
// 4. Environment variables (ARCHGOV_*), with .env filling unset ones
func (l *Loader) Load() (*Config, error) {
	return l.load(l.findProjectConfig())
}

// LoadFile is Load with an explicit project config file in place of the
// directory search. A missing file is an error.
func (l *Loader) LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return l.load(path)
}

func (l *Loader) load(projectConfigPath string) (*Config, error) {
	config := DefaultConfig()

	// User config
	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		if err := decodeFile(userConfigPath, config); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	// Project config
	base := l.workDir
	if projectConfigPath != "" {
		if err := decodeFile(projectConfigPath, config); err != nil {
			return nil, fmt.Errorf("project config %s: %w", projectConfigPath, err)
		}
		l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
		base = filepath.Dir(projectConfigPath)
	} else {
		l.logger.Debug("No project config found")
	}

	if err := l.applyEnv(config); err != nil {
		return nil, err
	}

	if config.Docs.Root != "" && !filepath.IsAbs(config.Docs.Root) && base != "" {
		config.Docs.Root = filepath.Join(base, config.Docs.Root)
	}
	if config.Rules.CatalogDir != "" && !filepath.IsAbs(config.Rules.CatalogDir) && base != "" {
		config.Rules.CatalogDir = filepath.Join(base, config.Rules.CatalogDir)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overlays ARCHGOV_* variables. Values from .env in the working
// directory are used only for variables the process environment lacks.
func (l *Loader) applyEnv(config *Config) error {
	dotenv := map[string]string{}
	if l.workDir != "" {
		envPath := filepath.Join(l.workDir, EnvFile)
		if vars, err := godotenv.Read(envPath); err == nil {
			dotenv = vars
			l.logger.Debug("Loaded env file", slog.String("path", envPath))
		} else if !os.IsNotExist(err) {
			l.logger.Warn("Failed to read env file", slog.String("path", envPath), slog.String("error", err.Error()))
		}
	}

	lookup := func(name string) (string, bool) {
		key := EnvPrefix + name
		if l.lookupEnv != nil {
			if v, ok := l.lookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup("DOCS_ROOT"); ok {
		config.Docs.Root = v
	}
	if v, ok := lookup("DOCS_PATTERN"); ok {
		config.Docs.Pattern = v
	}
	if v, ok := lookup("EXCLUDE_DIRS"); ok {
		config.Docs.ExcludeDirs = splitList(v)
	}
	if v, ok := lookup("QUICK_SCAN_LINES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sQUICK_SCAN_LINES: %w", EnvPrefix, err)
		}
		config.Docs.QuickScanLines = n
	}
	if v, ok := lookup("CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_SIZE: %w", EnvPrefix, err)
		}
		config.Cache.Size = n
	}
	if v, ok := lookup("WATCH_DEBOUNCE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sWATCH_DEBOUNCE: %w", EnvPrefix, err)
		}
		config.Watch.Debounce = d
	}
	if v, ok := lookup("METRICS_ADDR"); ok {
		config.Watch.MetricsAddr = v
	}
	if v, ok := lookup("FAIL_ON_VIOLATION"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sFAIL_ON_VIOLATION: %w", EnvPrefix, err)
		}
		config.Validation.FailOnViolation = b
	}
	if v, ok := lookup("RULES_CATALOG_DIR"); ok {
		config.Rules.CatalogDir = v
	}
	return nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()
	if userConfigPath == "" {
		return fmt.Errorf("home directory unknown")
	}

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	if l.homeDir == "" {
		return ""
	}
	return filepath.Join(l.homeDir, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for archgov.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	if l.workDir == "" {
		return ""
	}

	dir := l.workDir
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
