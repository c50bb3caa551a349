package vocabulary

import (
	"strings"

	"github.com/c360studio/archgov/ruleid"
)

// EntityType is the kind of a governance entity for mapping purposes.
type EntityType string

// Entity types.
const (
	EntityTypeDocument EntityType = "document"
	EntityTypeRuleSet  EntityType = "rule_set"
	EntityTypeRule     EntityType = "rule"
	EntityTypeClause   EntityType = "clause"
)

// Profile names accepted by GetTypesForEntity.
const (
	ProfileMinimal = "minimal"
	ProfileBFO     = "bfo"
	ProfileCCO     = "cco"
)

// ClassMap maps entity types to archgov class IRIs.
var ClassMap = map[EntityType]string{
	EntityTypeDocument: ClassDecisionRecord,
	EntityTypeRuleSet:  ClassRuleSet,
	EntityTypeRule:     ClassRule,
	EntityTypeClause:   ClassClause,
}

// AlignmentClassMap maps entity types to the PROV-O or SKOS class every
// profile asserts.
var AlignmentClassMap = map[EntityType]string{
	EntityTypeDocument: ProvEntity,
	EntityTypeRuleSet:  ProvEntity,
	EntityTypeRule:     SkosConcept,
	EntityTypeClause:   SkosConcept,
}

// CCOClassMap maps entity types to CCO class IRIs.
var CCOClassMap = map[EntityType]string{
	EntityTypeDocument: CcoInformationContentEntity,
	EntityTypeRuleSet:  CcoInformationContentEntity,
	EntityTypeRule:     CcoDirectiveInformationContentEntity,
	EntityTypeClause:   CcoDirectiveInformationContentEntity,
}

// GetTypesForEntity returns the type IRIs asserted for an entity under a
// profile. bfo adds the BFO class; cco adds the BFO and CCO classes.
func GetTypesForEntity(t EntityType, profile string) []string {
	types := make([]string, 0, 4)

	if class, ok := ClassMap[t]; ok {
		types = append(types, class)
	}
	if class, ok := AlignmentClassMap[t]; ok {
		types = append(types, class)
	}

	if profile == ProfileBFO || profile == ProfileCCO {
		types = append(types, BfoGenericallyDependentContinuant)
	}
	if profile == ProfileCCO {
		if class, ok := CCOClassMap[t]; ok {
			types = append(types, class)
		}
	}
	return types
}

// DocumentIRI returns the entity IRI of a decision document.
func DocumentIRI(id string) string {
	return EntityNamespace + "adr/" + strings.ToUpper(id)
}

// RuleSetIRI returns the entity IRI of the rule set of decision adr.
func RuleSetIRI(adr int) string {
	return EntityNamespace + "ruleset/" + ruleid.FormatAdr(adr)
}

// RuleIRI returns the entity IRI of a Rule or Clause id.
func RuleIRI(id ruleid.RuleID) string {
	if id.IsClause() {
		return EntityNamespace + "clause/" + id.String()
	}
	return EntityNamespace + "rule/" + id.String()
}
