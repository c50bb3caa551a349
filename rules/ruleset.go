package rules

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/c360studio/archgov/adrerr"
	"github.com/c360studio/archgov/decision"
	"github.com/c360studio/archgov/ruleid"
)

// RuleSet holds the Rules and Clauses of one ADR. It is built once and
// then only read; mutation is not synchronized.
type RuleSet struct {
	adr     int
	title   string
	rules   map[ruleid.RuleID]Definition
	clauses map[ruleid.RuleID]ClauseDefinition
}

// NewRuleSet creates an empty rule set for adr, which must be positive.
func NewRuleSet(adr int, title string) (*RuleSet, error) {
	if adr <= 0 {
		return nil, adrerr.InvalidArgument("rules.NewRuleSet", fmt.Sprintf("adr number must be positive, got %d", adr))
	}
	return &RuleSet{
		adr:     adr,
		title:   title,
		rules:   make(map[ruleid.RuleID]Definition),
		clauses: make(map[ruleid.RuleID]ClauseDefinition),
	}, nil
}

// Adr returns the ADR number.
func (rs *RuleSet) Adr() int { return rs.adr }

// AdrID returns the document id, e.g. "ADR-907".
func (rs *RuleSet) AdrID() string { return ruleid.FormatAdr(rs.adr) }

// Title returns the ADR title, which may be empty.
func (rs *RuleSet) Title() string { return rs.title }

// AddRule adds Rule number rule. An empty decision level defaults to Must.
func (rs *RuleSet) AddRule(rule int, summary string, level decision.Level, severity Severity, scope Scope) error {
	const op = "rules.AddRule"

	id, err := ruleid.Rule(rs.adr, rule)
	if err != nil {
		return err
	}
	if strings.TrimSpace(summary) == "" {
		return adrerr.InvalidArgument(op, fmt.Sprintf("%s: summary must not be empty", id))
	}
	if level == "" {
		level = decision.LevelMust
	}
	if !level.Valid() {
		return adrerr.InvalidArgument(op, fmt.Sprintf("%s: unknown decision level %q", id, level))
	}
	if _, dup := rs.rules[id]; dup {
		return adrerr.AlreadyExists(op, id.String(), "rule already defined")
	}

	rs.rules[id] = Definition{ID: id, Summary: summary, Decision: level, Severity: severity, Scope: scope}
	return nil
}

// AddClause adds Clause clause to Rule rule. The Rule does not have to
// exist yet; ValidateCompleteness checks the set as a whole. An empty
// execution type defaults to StaticAnalysis.
func (rs *RuleSet) AddClause(rule, clause int, condition, enforcement string, exec ExecutionType) error {
	const op = "rules.AddClause"

	id, err := ruleid.Clause(rs.adr, rule, clause)
	if err != nil {
		return err
	}
	if strings.TrimSpace(condition) == "" {
		return adrerr.InvalidArgument(op, fmt.Sprintf("%s: condition must not be empty", id))
	}
	if strings.TrimSpace(enforcement) == "" {
		return adrerr.InvalidArgument(op, fmt.Sprintf("%s: enforcement must not be empty", id))
	}
	if exec == "" {
		exec = ExecStaticAnalysis
	}
	if _, dup := rs.clauses[id]; dup {
		return adrerr.AlreadyExists(op, id.String(), "clause already defined")
	}

	rs.clauses[id] = ClauseDefinition{ID: id, Condition: condition, Enforcement: enforcement, ExecutionType: exec}
	return nil
}

// Rule returns Rule number rule.
func (rs *RuleSet) Rule(rule int) (Definition, bool) {
	id, err := ruleid.Rule(rs.adr, rule)
	if err != nil {
		return Definition{}, false
	}
	def, ok := rs.rules[id]
	return def, ok
}

// Clause returns Clause clause of Rule rule.
func (rs *RuleSet) Clause(rule, clause int) (ClauseDefinition, bool) {
	id, err := ruleid.Clause(rs.adr, rule, clause)
	if err != nil {
		return ClauseDefinition{}, false
	}
	def, ok := rs.clauses[id]
	return def, ok
}

// HasRule reports whether Rule number rule exists.
func (rs *RuleSet) HasRule(rule int) bool {
	_, ok := rs.Rule(rule)
	return ok
}

// HasClause reports whether the clause exists.
func (rs *RuleSet) HasClause(rule, clause int) bool {
	_, ok := rs.Clause(rule, clause)
	return ok
}

// Rules returns every Rule ordered by id.
func (rs *RuleSet) Rules() []Definition {
	return slices.SortedFunc(maps.Values(rs.rules), func(a, b Definition) int { return a.ID.Compare(b.ID) })
}

// Clauses returns every Clause ordered by id.
func (rs *RuleSet) Clauses() []ClauseDefinition {
	return slices.SortedFunc(maps.Values(rs.clauses), func(a, b ClauseDefinition) int { return a.ID.Compare(b.ID) })
}

// ClausesOf returns the Clauses of Rule number rule ordered by id.
func (rs *RuleSet) ClausesOf(rule int) []ClauseDefinition {
	var out []ClauseDefinition
	for _, c := range rs.Clauses() {
		if c.ID.RuleNumber() == rule {
			out = append(out, c)
		}
	}
	return out
}

// RuleCount returns the number of Rules.
func (rs *RuleSet) RuleCount() int { return len(rs.rules) }

// ClauseCount returns the number of Clauses.
func (rs *RuleSet) ClauseCount() int { return len(rs.clauses) }

// HasSeverity reports whether any Rule has severity s.
func (rs *RuleSet) HasSeverity(s Severity) bool {
	for _, r := range rs.rules {
		if r.Severity == s {
			return true
		}
	}
	return false
}

// HasScope reports whether any Rule has scope s.
func (rs *RuleSet) HasScope(s Scope) bool {
	for _, r := range rs.rules {
		if r.Scope == s {
			return true
		}
	}
	return false
}

// IncompleteError lists Rules that own no Clauses.
type IncompleteError struct {
	Adr     int
	Missing []ruleid.RuleID
}

// Error implements error.
func (e *IncompleteError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: rules without clauses: %s", ruleid.FormatAdr(e.Adr), strings.Join(ids, ", "))
}

// Unwrap lets errors.Is match adrerr.ErrInvalidArgument.
func (e *IncompleteError) Unwrap() error {
	return adrerr.ErrInvalidArgument
}

// ValidateCompleteness fails with an *IncompleteError naming every Rule
// that owns zero Clauses. An empty set passes.
func (rs *RuleSet) ValidateCompleteness() error {
	owned := make(map[ruleid.RuleID]bool, len(rs.clauses))
	for id := range rs.clauses {
		owned[id.Parent()] = true
	}

	var missing []ruleid.RuleID
	for _, r := range rs.Rules() {
		if !owned[r.ID] {
			missing = append(missing, r.ID)
		}
	}
	if len(missing) > 0 {
		return &IncompleteError{Adr: rs.adr, Missing: missing}
	}
	return nil
}

// OrphanClauses returns Clauses whose Rule is not defined.
func (rs *RuleSet) OrphanClauses() []ClauseDefinition {
	var out []ClauseDefinition
	for _, c := range rs.Clauses() {
		if _, ok := rs.rules[c.RuleID()]; !ok {
			out = append(out, c)
		}
	}
	return out
}
