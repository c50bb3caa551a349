package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/archgov/decision"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Docs.Root != "docs/adr" {
		t.Errorf("expected default root docs/adr, got %s", cfg.Docs.Root)
	}
	if cfg.Docs.Pattern != "**/ADR-*.md" {
		t.Errorf("expected default pattern **/ADR-*.md, got %s", cfg.Docs.Pattern)
	}
	if cfg.Docs.QuickScanLines != 50 {
		t.Errorf("expected 50 quick scan lines, got %d", cfg.Docs.QuickScanLines)
	}
	if !cfg.Validation.Bidirectional || !cfg.Validation.Related || !cfg.Validation.Cycles {
		t.Errorf("expected graph checks enabled by default, got %+v", cfg.Validation.Options)
	}
	if cfg.Validation.Sections {
		t.Error("expected section check disabled by default")
	}
	if !cfg.Validation.FailOnViolation {
		t.Error("expected fail_on_violation by default")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Cache.Size != 1024 {
		t.Errorf("expected cache size 1024, got %d", cfg.Cache.Size)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing root",
			modify:  func(c *Config) { c.Docs.Root = "" },
			wantErr: true,
		},
		{
			name:    "missing pattern",
			modify:  func(c *Config) { c.Docs.Pattern = "" },
			wantErr: true,
		},
		{
			name:    "zero scan lines",
			modify:  func(c *Config) { c.Docs.QuickScanLines = 0 },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
		{
			name:    "negative cache size",
			modify:  func(c *Config) { c.Cache.Size = -1 },
			wantErr: true,
		},
		{
			name: "decision override without rules",
			modify: func(c *Config) {
				c.Decision = &decision.Config{}
			},
			wantErr: true,
		},
		{
			name: "decision override",
			modify: func(c *Config) {
				d := decision.DefaultConfig()
				c.Decision = &d
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
docs:
  root: "/srv/adr"
  quick_scan_lines: 20
validation:
  check_cycles: false
  check_sections: true
watch:
  debounce: 2s
  metrics_addr: ":9464"
decision:
  rules:
    - level: must
      keywords: ["must"]
      blocking: true
  negation_prefixes: ["not "]
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Docs.Root != "/srv/adr" {
		t.Errorf("expected root /srv/adr, got %s", cfg.Docs.Root)
	}
	if cfg.Docs.QuickScanLines != 20 {
		t.Errorf("expected 20 scan lines, got %d", cfg.Docs.QuickScanLines)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Docs.Pattern != "**/ADR-*.md" {
		t.Errorf("expected default pattern, got %s", cfg.Docs.Pattern)
	}
	if !cfg.Validation.Bidirectional {
		t.Error("expected check_bidirectional to stay enabled")
	}
	if cfg.Validation.Cycles {
		t.Error("expected check_cycles disabled")
	}
	if !cfg.Validation.Sections {
		t.Error("expected check_sections enabled")
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.MetricsAddr != ":9464" {
		t.Errorf("expected metrics addr :9464, got %s", cfg.Watch.MetricsAddr)
	}

	dc := cfg.DecisionConfig()
	if len(dc.Rules) != 1 || dc.Rules[0].Level != decision.LevelMust {
		t.Fatalf("expected one must rule, got %+v", dc.Rules)
	}
	if _, err := decision.NewClassifier(dc); err != nil {
		t.Errorf("decision override rejected: %v", err)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("docs: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Docs: DocsConfig{
			Root: "/override/adr",
		},
		Watch: WatchConfig{
			MetricsAddr: ":9000",
		},
	}

	base.Merge(override)
	base.Merge(nil)

	if base.Docs.Root != "/override/adr" {
		t.Errorf("expected root /override/adr, got %s", base.Docs.Root)
	}
	// Pattern should remain from base since override didn't set it
	if base.Docs.Pattern != "**/ADR-*.md" {
		t.Errorf("expected pattern to remain default, got %s", base.Docs.Pattern)
	}
	if base.Watch.MetricsAddr != ":9000" {
		t.Errorf("expected metrics addr :9000, got %s", base.Watch.MetricsAddr)
	}
	if !base.Validation.Cycles {
		t.Error("merge must not clear validation switches")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Docs.Root = "/saved/adr"
	cfg.Validation.Related = false

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Docs.Root != "/saved/adr" {
		t.Errorf("expected root /saved/adr, got %s", loaded.Docs.Root)
	}
	if loaded.Validation.Related {
		t.Error("expected check_related to stay disabled")
	}
	if loaded.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", loaded.Watch.Debounce)
	}
}

func TestConfigConversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Docs.Root = "/repo/docs/adr"
	cfg.Docs.ExcludeDirs = []string{"archive"}
	cfg.Cache.Size = 16

	opts := cfg.LoaderOptions()
	if opts.Root != "/repo/docs/adr" || opts.CacheSize != 16 {
		t.Errorf("unexpected loader options %+v", opts)
	}
	if len(opts.ExcludeDirs) != 1 || opts.ExcludeDirs[0] != "archive" {
		t.Errorf("unexpected excludes %v", opts.ExcludeDirs)
	}

	wc := cfg.WatchOptions()
	if wc.Debounce != 500*time.Millisecond || wc.Pattern != cfg.Docs.Pattern {
		t.Errorf("unexpected watch options %+v", wc)
	}

	if got := cfg.DecisionConfig(); len(got.Rules) != len(decision.DefaultConfig().Rules) {
		t.Errorf("expected default decision table, got %d rules", len(got.Rules))
	}
}

func mapEnv(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func testLoader(workDir, homeDir string, env map[string]string) *Loader {
	return &Loader{
		logger:    slog.Default(),
		workDir:   workDir,
		homeDir:   homeDir,
		lookupEnv: mapEnv(env),
	}
}

func TestLoaderPrecedence(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	workDir := filepath.Join(project, "services", "api")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
docs:
  pattern: "decisions/**/ADR-*.md"
cache:
  size: 10
`)
	writeFile(t, filepath.Join(project, ProjectConfigFile), `
docs:
  root: adrs
cache:
  size: 20
validation:
  check_related: false
`)

	cfg, err := testLoader(workDir, home, map[string]string{"ARCHGOV_CACHE_SIZE": "30"}).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Docs.Pattern != "decisions/**/ADR-*.md" {
		t.Errorf("expected user pattern, got %s", cfg.Docs.Pattern)
	}
	if want := filepath.Join(project, "adrs"); cfg.Docs.Root != want {
		t.Errorf("expected root %s, got %s", want, cfg.Docs.Root)
	}
	if cfg.Cache.Size != 30 {
		t.Errorf("expected env cache size 30, got %d", cfg.Cache.Size)
	}
	if cfg.Validation.Related {
		t.Error("expected project config to disable check_related")
	}
}

func TestLoaderDefaultsWithoutFiles(t *testing.T) {
	workDir := t.TempDir()

	cfg, err := testLoader(workDir, "", nil).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(workDir, "docs", "adr"); cfg.Docs.Root != want {
		t.Errorf("expected root %s, got %s", want, cfg.Docs.Root)
	}
}

func TestLoaderEnvFile(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, EnvFile), `
ARCHGOV_METRICS_ADDR=:9464
ARCHGOV_WATCH_DEBOUNCE=1s
ARCHGOV_EXCLUDE_DIRS=archive, drafts
ARCHGOV_FAIL_ON_VIOLATION=false
`)

	env := map[string]string{"ARCHGOV_WATCH_DEBOUNCE": "2s", "ARCHGOV_DOCS_ROOT": "/abs/adr"}
	cfg, err := testLoader(workDir, "", env).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Watch.MetricsAddr != ":9464" {
		t.Errorf("expected metrics addr from .env, got %q", cfg.Watch.MetricsAddr)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected process env to win over .env, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Docs.ExcludeDirs) != 2 || cfg.Docs.ExcludeDirs[1] != "drafts" {
		t.Errorf("unexpected excludes %v", cfg.Docs.ExcludeDirs)
	}
	if cfg.Validation.FailOnViolation {
		t.Error("expected fail_on_violation disabled")
	}
	if cfg.Docs.Root != "/abs/adr" {
		t.Errorf("expected absolute root untouched, got %s", cfg.Docs.Root)
	}
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		setup func(t *testing.T, dir string)
	}{
		{
			name: "bad scan lines",
			env:  map[string]string{"ARCHGOV_QUICK_SCAN_LINES": "many"},
		},
		{
			name: "bad debounce",
			env:  map[string]string{"ARCHGOV_WATCH_DEBOUNCE": "soon"},
		},
		{
			name: "bad bool",
			env:  map[string]string{"ARCHGOV_FAIL_ON_VIOLATION": "maybe"},
		},
		{
			name: "invalid after env",
			env:  map[string]string{"ARCHGOV_QUICK_SCAN_LINES": "0"},
		},
		{
			name: "malformed project config",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, ProjectConfigFile), "docs: [unclosed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			if _, err := testLoader(dir, "", tt.env).Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoaderLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "docs:\n  root: governance\n")

	l := testLoader(t.TempDir(), "", nil)
	cfg, err := l.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := filepath.Join(dir, "governance"); cfg.Docs.Root != want {
		t.Errorf("expected root %s, got %s", want, cfg.Docs.Root)
	}

	if _, err := l.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	l := testLoader(t.TempDir(), home, nil)

	if err := l.EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig() error = %v", err)
	}
	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("user config not created: %v", err)
	}
	// Second call leaves the file alone.
	if err := l.EnsureUserConfig(); err != nil {
		t.Errorf("second EnsureUserConfig() error = %v", err)
	}

	if err := testLoader(t.TempDir(), "", nil).EnsureUserConfig(); err == nil {
		t.Error("expected error without home directory")
	}
}
