package rules

import (
	"github.com/c360studio/archgov/ruleid"
)

// Index looks up Rule and Clause definitions by RuleId string across a registry.
type Index struct {
	reg *Registry
}

// NewIndex creates an index over reg.
func NewIndex(reg *Registry) *Index {
	return &Index{reg: reg}
}

// Rule returns the Rule named by a Rule-level id such as "ADR-907_3".
// Clause-level and malformed ids are not found.
func (x *Index) Rule(id string) (Definition, bool) {
	rid, ok := ruleid.TryParse(id)
	if !ok || !rid.IsRule() {
		return Definition{}, false
	}
	rs := x.reg.Get(rid.Adr())
	if rs == nil {
		return Definition{}, false
	}
	return rs.Rule(rid.RuleNumber())
}

// Clause returns the Clause named by a Clause-level id such as "ADR-907_3_2".
func (x *Index) Clause(id string) (ClauseDefinition, bool) {
	rid, ok := ruleid.TryParse(id)
	if !ok || !rid.IsClause() {
		return ClauseDefinition{}, false
	}
	rs := x.reg.Get(rid.Adr())
	if rs == nil {
		return ClauseDefinition{}, false
	}
	n, _ := rid.ClauseNumber()
	return rs.Clause(rid.RuleNumber(), n)
}

// RuleExists reports whether id names a defined Rule.
func (x *Index) RuleExists(id string) bool {
	_, ok := x.Rule(id)
	return ok
}

// ClauseExists reports whether id names a defined Clause.
func (x *Index) ClauseExists(id string) bool {
	_, ok := x.Clause(id)
	return ok
}

// RulesOf returns the Rules of one ADR, or nil.
func (x *Index) RulesOf(adr int) []Definition {
	if rs := x.reg.Get(adr); rs != nil {
		return rs.Rules()
	}
	return nil
}

// ClausesOf returns the Clauses of one ADR, or nil.
func (x *Index) ClausesOf(adr int) []ClauseDefinition {
	if rs := x.reg.Get(adr); rs != nil {
		return rs.Clauses()
	}
	return nil
}

// ClausesByRule returns the Clauses of the Rule named by a Rule-level id.
func (x *Index) ClausesByRule(id string) []ClauseDefinition {
	rid, ok := ruleid.TryParse(id)
	if !ok || !rid.IsRule() {
		return nil
	}
	rs := x.reg.Get(rid.Adr())
	if rs == nil {
		return nil
	}
	return rs.ClausesOf(rid.RuleNumber())
}

// AllClauses returns every Clause in the registry in id order.
// Data-driven checks generate one case per entry.
func (x *Index) AllClauses() []ClauseDefinition {
	var out []ClauseDefinition
	for _, rs := range x.reg.All() {
		out = append(out, rs.Clauses()...)
	}
	return out
}
