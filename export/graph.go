package export

import (
	"github.com/c360studio/archgov/adr"
	"github.com/c360studio/archgov/rules"
	"github.com/c360studio/archgov/vocabulary"
)

// DocumentEntity converts one document. Relation targets are emitted in
// relation type order, each type's targets sorted.
func DocumentEntity(doc *adr.Document) Entity {
	triples := []Triple{{Predicate: vocabulary.DocID, Object: doc.ID}}
	if doc.FilePath != "" {
		triples = append(triples, Triple{Predicate: vocabulary.DocFilePath, Object: doc.FilePath})
	}
	for _, f := range []struct{ pred, value string }{
		{vocabulary.DocStatus, doc.Status},
		{vocabulary.DocLevel, doc.Level},
		{vocabulary.DocType, doc.Type},
	} {
		if f.value != "" {
			triples = append(triples, Triple{Predicate: f.pred, Object: f.value})
		}
	}
	triples = append(triples, Triple{Predicate: vocabulary.DocCategory, Object: string(adr.CategoryOf(doc.Number()))})

	for _, rt := range adr.RelationTypes {
		for _, target := range doc.Targets(rt).Sorted() {
			triples = append(triples, Triple{
				Predicate: vocabulary.RelationPredicate(rt),
				Object:    IRI(vocabulary.DocumentIRI(target)),
			})
		}
	}

	return Entity{
		IRI:     vocabulary.DocumentIRI(doc.ID),
		Type:    vocabulary.EntityTypeDocument,
		Triples: triples,
	}
}

// DocumentEntities converts documents in the order given.
func DocumentEntities(docs []*adr.Document) []Entity {
	out := make([]Entity, 0, len(docs))
	for _, doc := range docs {
		out = append(out, DocumentEntity(doc))
	}
	return out
}

// RuleSetEntities converts a rule set into one rule set entity followed by
// its Rules and Clauses in id order.
func RuleSetEntities(rs *rules.RuleSet) []Entity {
	set := Entity{
		IRI:  vocabulary.RuleSetIRI(rs.Adr()),
		Type: vocabulary.EntityTypeRuleSet,
		Triples: []Triple{
			{Predicate: vocabulary.DocID, Object: rs.AdrID()},
		},
	}
	if rs.Title() != "" {
		set.Triples = append(set.Triples, Triple{Predicate: vocabulary.DocTitle, Object: rs.Title()})
	}

	var out []Entity
	var ruleEntities []Entity
	for _, r := range rs.Rules() {
		set.Triples = append(set.Triples, Triple{Predicate: vocabulary.RelHasRule, Object: IRI(vocabulary.RuleIRI(r.ID))})

		rule := Entity{
			IRI:  vocabulary.RuleIRI(r.ID),
			Type: vocabulary.EntityTypeRule,
			Triples: []Triple{
				{Predicate: vocabulary.RuleID, Object: r.ID.String()},
				{Predicate: vocabulary.RuleSummary, Object: r.Summary},
				{Predicate: vocabulary.RuleDecision, Object: string(r.Decision)},
				{Predicate: vocabulary.RuleSeverity, Object: string(r.Severity)},
				{Predicate: vocabulary.RuleScope, Object: string(r.Scope)},
			},
		}
		var clauses []Entity
		for _, c := range rs.ClausesOf(r.ID.RuleNumber()) {
			rule.Triples = append(rule.Triples, Triple{Predicate: vocabulary.RelHasClause, Object: IRI(vocabulary.RuleIRI(c.ID))})
			clauses = append(clauses, Entity{
				IRI:  vocabulary.RuleIRI(c.ID),
				Type: vocabulary.EntityTypeClause,
				Triples: []Triple{
					{Predicate: vocabulary.ClauseID, Object: c.ID.String()},
					{Predicate: vocabulary.ClauseCondition, Object: c.Condition},
					{Predicate: vocabulary.ClauseEnforcement, Object: c.Enforcement},
					{Predicate: vocabulary.ClauseExecution, Object: string(c.ExecutionType)},
				},
			})
		}
		ruleEntities = append(ruleEntities, rule)
		ruleEntities = append(ruleEntities, clauses...)
	}

	out = append(out, set)
	return append(out, ruleEntities...)
}

// NewGraphExporter builds an exporter over documents and rule sets.
func NewGraphExporter(profile Profile, docs []*adr.Document, sets []*rules.RuleSet) *RDFExporter {
	e := NewRDFExporter(profile)
	e.AddEntities(DocumentEntities(docs)...)
	for _, rs := range sets {
		e.AddEntities(RuleSetEntities(rs)...)
	}
	return e
}
