// Package rules holds the typed rule catalog: one RuleSet per ADR, each
// with ordered Rules that own Clauses, plus the registry that indexes them.
package rules

import (
	"fmt"
	"strings"

	"github.com/c360studio/archgov/decision"
	"github.com/c360studio/archgov/ruleid"
)

// Severity is how binding a rule is.
type Severity string

// Severities.
const (
	SeverityConstitutional Severity = "constitutional"
	SeverityGovernance     Severity = "governance"
	SeverityTechnical      Severity = "technical"
	SeverityRuntime        Severity = "runtime"
	SeverityStructure      Severity = "structure"
)

// Scope is what a rule applies to.
type Scope string

// Scopes.
const (
	ScopeModule        Scope = "module"
	ScopeTest          Scope = "test"
	ScopeDocument      Scope = "document"
	ScopeDocumentation Scope = "documentation"
	ScopeSolution      Scope = "solution"
	ScopeType          Scope = "type"
)

// ExecutionType is how a clause is checked.
type ExecutionType string

// Execution types.
const (
	ExecStaticAnalysis ExecutionType = "static_analysis"
	ExecConvention     ExecutionType = "convention"
	ExecRuntimeCheck   ExecutionType = "runtime_check"
	ExecManualReview   ExecutionType = "manual_review"
)

var (
	severities     = []Severity{SeverityConstitutional, SeverityGovernance, SeverityTechnical, SeverityRuntime, SeverityStructure}
	scopes         = []Scope{ScopeModule, ScopeTest, ScopeDocument, ScopeDocumentation, ScopeSolution, ScopeType}
	executionTypes = []ExecutionType{ExecStaticAnalysis, ExecConvention, ExecRuntimeCheck, ExecManualReview}
)

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	return parseEnum(s, severities, "severity")
}

// ParseScope parses a scope name case-insensitively.
func ParseScope(s string) (Scope, error) {
	return parseEnum(s, scopes, "scope")
}

// ParseExecutionType parses an execution type case-insensitively.
// "StaticAnalysis" and "static-analysis" are accepted as well.
func ParseExecutionType(s string) (ExecutionType, error) {
	return parseEnum(s, executionTypes, "execution type")
}

func parseEnum[T ~string](s string, values []T, what string) (T, error) {
	norm := normalizeEnum(s)
	for _, v := range values {
		if normalizeEnum(string(v)) == norm {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown %s %q", what, s)
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// Definition is a Rule within an ADR.
type Definition struct {
	ID       ruleid.RuleID  `json:"id"`
	Summary  string         `json:"summary"`
	Decision decision.Level `json:"decision"`
	Severity Severity       `json:"severity"`
	Scope    Scope          `json:"scope"`
}

// ClauseDefinition is a checkable sub-constraint of a Rule.
type ClauseDefinition struct {
	ID ruleid.RuleID `json:"id"`
	// Condition is what must hold.
	Condition string `json:"condition"`
	// Enforcement is how it is checked.
	Enforcement   string        `json:"enforcement"`
	ExecutionType ExecutionType `json:"execution_type"`
}

// RuleID returns the id of the Rule that owns the clause.
func (c ClauseDefinition) RuleID() ruleid.RuleID {
	return c.ID.Parent()
}

// Label renders "ADR-907_3_2 condition" for test names and reports.
func (c ClauseDefinition) Label() string {
	return c.ID.String() + " " + c.Condition
}
