package rules

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/archgov/decision"
)

//go:embed catalog/*.yaml
var builtinCatalog embed.FS

// catalogFile is the YAML shape of one rule set.
type catalogFile struct {
	Adr   int           `yaml:"adr"`
	Title string        `yaml:"title"`
	Rules []catalogRule `yaml:"rules"`
}

type catalogRule struct {
	Rule     int             `yaml:"rule"`
	Summary  string          `yaml:"summary"`
	Decision string          `yaml:"decision"`
	Severity string          `yaml:"severity"`
	Scope    string          `yaml:"scope"`
	Clauses  []catalogClause `yaml:"clauses"`
}

type catalogClause struct {
	Clause      int    `yaml:"clause"`
	Condition   string `yaml:"condition"`
	Enforcement string `yaml:"enforcement"`
	Execution   string `yaml:"execution"`
}

// ParseRuleSet decodes one YAML rule set and validates its completeness.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}

	rs, err := NewRuleSet(f.Adr, f.Title)
	if err != nil {
		return nil, err
	}

	for _, r := range f.Rules {
		level := decision.Level("")
		if r.Decision != "" {
			if level, err = decision.ParseLevel(r.Decision); err != nil {
				return nil, fmt.Errorf("%s rule %d: %w", rs.AdrID(), r.Rule, err)
			}
		}
		severity, err := ParseSeverity(r.Severity)
		if err != nil {
			return nil, fmt.Errorf("%s rule %d: %w", rs.AdrID(), r.Rule, err)
		}
		scope, err := ParseScope(r.Scope)
		if err != nil {
			return nil, fmt.Errorf("%s rule %d: %w", rs.AdrID(), r.Rule, err)
		}
		if err := rs.AddRule(r.Rule, r.Summary, level, severity, scope); err != nil {
			return nil, err
		}

		for _, c := range r.Clauses {
			exec := ExecutionType("")
			if c.Execution != "" {
				if exec, err = ParseExecutionType(c.Execution); err != nil {
					return nil, fmt.Errorf("%s clause %d.%d: %w", rs.AdrID(), r.Rule, c.Clause, err)
				}
			}
			if err := rs.AddClause(r.Rule, c.Clause, c.Condition, c.Enforcement, exec); err != nil {
				return nil, err
			}
		}
	}

	if err := rs.ValidateCompleteness(); err != nil {
		return nil, err
	}
	return rs, nil
}

// LoadCatalog registers every *.yaml rule set found at the top of fsys.
func LoadCatalog(reg *Registry, fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	slices.Sort(names)

	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		rs, err := ParseRuleSet(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := reg.Register(rs); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// LoadCatalogDir registers every *.yaml rule set in dir.
func LoadCatalogDir(reg *Registry, dir string) error {
	return LoadCatalog(reg, os.DirFS(dir))
}

// NewDefaultRegistry builds a registry from the built-in catalog.
func NewDefaultRegistry() (*Registry, error) {
	sub, err := fs.Sub(builtinCatalog, "catalog")
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	if err := LoadCatalog(reg, sub); err != nil {
		return nil, fmt.Errorf("load built-in catalog: %w", err)
	}
	return reg, nil
}
