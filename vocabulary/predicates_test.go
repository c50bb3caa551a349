package vocabulary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/archgov/adr"
	"github.com/c360studio/archgov/ruleid"
)

func TestPredicatesRegistered(t *testing.T) {
	predicates := []string{
		DocID, DocFilePath, DocStatus, DocLevel, DocType, DocCategory, DocTitle,
		RelDependsOn, RelDependedBy, RelSupersedes, RelSupersededBy, RelRelated,
		RelHasRule, RelHasClause,
		RuleID, RuleSummary, RuleDecision, RuleSeverity, RuleScope,
		ClauseID, ClauseCondition, ClauseEnforcement, ClauseExecution,
	}

	for _, pred := range predicates {
		t.Run(pred, func(t *testing.T) {
			meta := GetPredicateMetadata(pred)
			assert.NotEmpty(t, meta.Description, "predicate %s not registered or missing description", pred)
			assert.NotEmpty(t, meta.DataType)
			assert.True(t, strings.HasPrefix(meta.IRI, "http"), meta.IRI)
		})
	}

	assert.Len(t, Predicates(), len(predicates))
}

func TestRelationPredicate(t *testing.T) {
	for _, rt := range adr.RelationTypes {
		pred := RelationPredicate(rt)
		assert.NotEmpty(t, pred, rt)
		assert.Equal(t, "entity_id", GetPredicateMetadata(pred).DataType)
	}
}

func TestGetPredicateIRI_Fallback(t *testing.T) {
	assert.Equal(t, PropDependsOn, GetPredicateIRI(RelDependsOn))
	assert.Equal(t, Namespace+"adr.unknown", GetPredicateIRI("adr.unknown"))
}

func TestGetTypesForEntity(t *testing.T) {
	tests := []struct {
		profile string
		want    []string
	}{
		{ProfileMinimal, []string{ClassRule, SkosConcept}},
		{ProfileBFO, []string{ClassRule, SkosConcept, BfoGenericallyDependentContinuant}},
		{ProfileCCO, []string{ClassRule, SkosConcept, BfoGenericallyDependentContinuant, CcoDirectiveInformationContentEntity}},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			assert.Equal(t, tt.want, GetTypesForEntity(EntityTypeRule, tt.profile))
		})
	}
}

func TestEntityIRIs(t *testing.T) {
	assert.Equal(t, EntityNamespace+"adr/ADR-907", DocumentIRI("adr-907"))
	assert.Equal(t, EntityNamespace+"ruleset/ADR-007", RuleSetIRI(7))
	assert.Equal(t, EntityNamespace+"rule/ADR-907_3", RuleIRI(ruleid.MustRule(907, 3)))
	assert.Equal(t, EntityNamespace+"clause/ADR-907_3_2", RuleIRI(ruleid.MustClause(907, 3, 2)))
}
