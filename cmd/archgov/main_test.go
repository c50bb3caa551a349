package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/archgov/export"
	"github.com/c360studio/archgov/relations"
	"github.com/c360studio/archgov/repository"
)

const docADR001 = `---
adr: ADR-001
status: Final
---

# ADR-001 Modular monolith

## Relationships

**Depended By**:
- [ADR-002](./ADR-002-bootstrap.md)

## Decision

模块之间禁止直接引用。
`

const docADR002 = `# ADR-002 Bootstrap

## Relationships（关系声明）

**Depends On（依赖）**：
- [ADR-001](./ADR-001-modular.md)
`

const docGuide = `---
type: guide
---

# ADR-902 writing guide
`

func writeDoc(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// project writes an archgov.yaml next to a docs tree and returns the
// config path and the docs root.
func project(t *testing.T, docs map[string]string, extraConfig string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "docs", "adr")
	require.NoError(t, os.MkdirAll(root, 0o755))
	for rel, content := range docs {
		writeDoc(t, root, rel, content)
	}
	cfgPath := writeDoc(t, dir, "archgov.yaml", "docs:\n  root: docs/adr\n"+extraConfig)
	return cfgPath, root
}

func consistentProject(t *testing.T) (string, string) {
	return project(t, map[string]string{
		"ADR-001-modular.md":   docADR001,
		"ADR-002-bootstrap.md": docADR002,
		"ADR-902-guide.md":     docGuide,
	}, "")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "archgov version "+Version)
}

func TestValidate_Passes(t *testing.T) {
	cfg, _ := consistentProject(t)

	out, err := execute(t, "", "validate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "2 documents checked, no violations")
}

func TestValidate_Violations(t *testing.T) {
	cfg, _ := project(t, map[string]string{
		"ADR-001-modular.md": docADR001,
		"ADR-003-broken.md":  "# ADR-003\n\n## Relationships\n\n**Depends On**:\n- ADR-404\n",
	}, "")

	out, err := execute(t, "", "validate", "--config", cfg)
	require.ErrorIs(t, err, errViolations)
	assert.Contains(t, out, "ADR-003 declares Depends On ADR-404, but ADR-404 does not exist")
	assert.Contains(t, out, "2 documents checked, 1 violations")

	// fail_on_violation: false still prints but exits zero.
	cfg, _ = project(t, map[string]string{
		"ADR-003-broken.md": "# ADR-003\n\n## Relationships\n\n**Depends On**:\n- ADR-404\n",
	}, "validation:\n  fail_on_violation: false\n")
	out, err = execute(t, "", "validate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ADR-404")
}

func TestValidate_JSON(t *testing.T) {
	cfg, _ := consistentProject(t)

	out, err := execute(t, "", "validate", "--json", "--config", cfg)
	require.NoError(t, err)

	var report relations.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Documents)
	assert.Empty(t, report.Violations)
	assert.NotEmpty(t, report.ID)
}

func TestValidate_RootOverrideAndMissingRoot(t *testing.T) {
	cfg, root := consistentProject(t)

	_, err := execute(t, "", "validate", "--config", cfg, "--root", filepath.Join(root, "missing"))
	require.ErrorIs(t, err, repository.ErrRootNotFound)

	empty := t.TempDir()
	_, err = execute(t, "", "validate", "--config", cfg, "--root", empty)
	require.ErrorIs(t, err, repository.ErrNoDocuments)
}

func TestCycles(t *testing.T) {
	cfg, _ := consistentProject(t)
	out, err := execute(t, "", "cycles", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "no dependency cycles in 2 documents")

	cfg, _ = project(t, map[string]string{
		"ADR-001-a.md": "# ADR-001\n\n## Relationships\n\n**Depends On**:\n- ADR-002\n",
		"ADR-002-b.md": "# ADR-002\n\n## Relationships\n\n**Depends On**:\n- ADR-001\n",
	}, "")
	out, err = execute(t, "", "cycles", "--config", cfg)
	require.ErrorIs(t, err, errViolations)
	assert.Contains(t, out, "ADR-001 → ADR-002 → ADR-001")
	assert.Contains(t, out, "1 cycles")
}

func TestClassify(t *testing.T) {
	cfg, root := consistentProject(t)

	out, err := execute(t, "", "classify", "--config", cfg,
		filepath.Join(root, "ADR-001-modular.md"),
		filepath.Join(root, "ADR-902-guide.md"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\tgoverned\tadr=ADR-001")
	assert.Contains(t, lines[1], "\tnot governed\tadr= type=guide")

	_, err = execute(t, "", "classify", "--config", cfg, filepath.Join(root, "nope.md"))
	require.Error(t, err)
}

func TestScan(t *testing.T) {
	cfg, root := consistentProject(t)

	out, err := execute(t, "所有模块必须独立部署。建议使用统一日志。\n这是背景说明。\n", "scan", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "-:1: blocked must: 所有模块必须独立部署")
	assert.Contains(t, out, "-:1: warning should: 建议使用统一日志")
	assert.Contains(t, out, "2 findings: 1 blocked, 1 warning")

	out, err = execute(t, "", "scan", "--fail-on-blocked", "--config", cfg, filepath.Join(root, "ADR-001-modular.md"))
	require.ErrorIs(t, err, errViolations)
	assert.Contains(t, out, "blocked must_not")
}

func TestRules(t *testing.T) {
	cfg, _ := consistentProject(t)

	out, err := execute(t, "", "rules", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ADR-001\t")
	assert.Contains(t, out, "ADR-907\tArchitectureTests 执法治理体系")

	out, err = execute(t, "", "rules", "--tier", "structure", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ADR-120")
	assert.Contains(t, out, "ADR-124")
	assert.NotContains(t, out, "ADR-001")

	out, err = execute(t, "", "rules", "adr-907", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ADR-907_3_2")
	assert.Contains(t, out, "每个测试方法只能映射一个ADR子规则")

	_, err = execute(t, "", "rules", "--tier", "cosmic", "--config", cfg)
	require.Error(t, err)

	_, err = execute(t, "", "rules", "ADR-555", "--config", cfg)
	require.Error(t, err)
}

func TestRules_CatalogDir(t *testing.T) {
	cfg, _ := project(t, map[string]string{"ADR-001-a.md": docADR001}, "rules:\n  catalog_dir: catalog\n")
	writeDoc(t, filepath.Dir(cfg), "catalog/adr-301.yaml", `adr: 301
title: Logging
rules:
  - rule: 1
    summary: structured logs only
    severity: technical
    scope: module
    clauses:
      - clause: 1
        condition: use slog
        enforcement: grep for fmt.Println
`)

	out, err := execute(t, "", "rules", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ADR-301\tLogging\trules=1 clauses=1")
	assert.Contains(t, out, "ADR-907")
}

func TestRuleID(t *testing.T) {
	cfg, _ := consistentProject(t)

	out, err := execute(t, "", "ruleid", "--config", cfg, "907.3.2", "ADR-001_1", "ADR-555_1")
	require.NoError(t, err)
	assert.Contains(t, out, "907.3.2\tADR-907_3_2\tclause\t每个测试方法只能映射一个ADR子规则")
	assert.Contains(t, out, "ADR-001_1\tADR-001_1\trule\t")
	assert.Contains(t, out, "ADR-555_1\tADR-555_1\trule\t(not in catalog)")

	out, err = execute(t, "", "ruleid", "--config", cfg, "ADR-001_1-1")
	require.Error(t, err)
	assert.Contains(t, out, "invalid")
}

func TestExport(t *testing.T) {
	cfg, root := consistentProject(t)

	out, err := execute(t, "", "export", "--config", cfg, "--no-rules")
	require.NoError(t, err)
	assert.Contains(t, out, "@prefix archgov:")
	assert.Contains(t, out, "<https://archgov.dev/entity/adr/ADR-002>")
	assert.NotContains(t, out, "ruleset/")

	out, err = execute(t, "", "export", "--config", cfg, "--format", "json", "--all")
	require.NoError(t, err)
	var model export.Model
	require.NoError(t, json.Unmarshal([]byte(out), &model))
	require.Len(t, model.Documents, 3)
	assert.Equal(t, "ADR-902", model.Documents[2].ID)
	assert.False(t, model.Documents[2].IsAdr)
	assert.NotEmpty(t, model.RuleSets)

	target := filepath.Join(root, "..", "out", "graph.nt")
	out, err = execute(t, "", "export", "--config", cfg, "-f", "ntriples", "--profile", "cco", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CommonCoreOntologies")

	target = filepath.Join(root, "..", "out", "graph.jsonld")
	_, err = execute(t, "", "export", "--config", cfg, "--no-rules", "-o", target)
	require.NoError(t, err)
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"@context"`)

	_, err = execute(t, "", "export", "--config", cfg, "--format", "xml")
	require.Error(t, err)
	_, err = execute(t, "", "export", "--config", cfg, "--profile", "owl")
	require.Error(t, err)
}

func TestMap(t *testing.T) {
	cfg, _ := consistentProject(t)

	out, err := execute(t, "", "map", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "# ADR Relationship Map")
	assert.Contains(t, out, "- **Documents**: 2")
	assert.Contains(t, out, "#### ADR-001")
}

// lockedBuffer is written by the watch loop while the test polls it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_RevalidatesOnChange(t *testing.T) {
	cfg, root := consistentProject(t)
	t.Setenv("HOME", t.TempDir())
	writeDoc(t, filepath.Dir(cfg), "archgov.yaml", "docs:\n  root: docs/adr\nwatch:\n  debounce: 50ms\n")

	app, err := newApp(&globalFlags{configPath: cfg, logLevel: "error"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() { done <- app.Watch(ctx, out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "2 documents checked, no violations")
	}, 5*time.Second, 10*time.Millisecond)

	// A new document with a dangling reference is picked up.
	tmp := filepath.Join(root, "draft.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("# ADR-003\n\n## Relationships\n\n**Depends On**:\n- ADR-404\n"), 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(root, "ADR-003-new.md")))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "3 documents checked, 1 violations")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
