package vocabulary

// Namespace is the base IRI prefix for archgov vocabulary terms.
const Namespace = "https://archgov.dev/ontology/"

// EntityNamespace is the base IRI for document, rule and clause instances.
const EntityNamespace = "https://archgov.dev/entity/"

// Standard ontology IRI constants for mappings.
const (
	DcTitle        = "http://purl.org/dc/terms/title"
	DcCreated      = "http://purl.org/dc/terms/created"
	DcIdentifier   = "http://purl.org/dc/terms/identifier"
	DcReplaces     = "http://purl.org/dc/terms/replaces"
	DcIsReplacedBy = "http://purl.org/dc/terms/isReplacedBy"
	DcRequires     = "http://purl.org/dc/terms/requires"
	DcIsRequiredBy = "http://purl.org/dc/terms/isRequiredBy"
	DcRelation     = "http://purl.org/dc/terms/relation"

	ProvEntity  = "http://www.w3.org/ns/prov#Entity"
	SkosConcept = "http://www.w3.org/2004/02/skos/core#Concept"

	// BfoGenericallyDependentContinuant is BFO_0000031.
	BfoGenericallyDependentContinuant = "http://purl.obolibrary.org/obo/BFO_0000031"

	CcoInformationContentEntity          = "http://www.ontologyrepository.com/CommonCoreOntologies/InformationContentEntity"
	CcoDirectiveInformationContentEntity = "http://www.ontologyrepository.com/CommonCoreOntologies/DirectiveInformationContentEntity"
)

// Class IRIs define the types of governance entities.
const (
	// ClassDecisionRecord is a governed architecture decision document.
	// Extends: cco:InformationContentEntity
	ClassDecisionRecord = Namespace + "DecisionRecord"

	// ClassRuleSet is the set of Rules defined by one decision.
	ClassRuleSet = Namespace + "RuleSet"

	// ClassRule is a numbered Rule within a decision.
	// Extends: cco:DirectiveInformationContentEntity
	ClassRule = Namespace + "Rule"

	// ClassClause is a single checkable condition under a Rule.
	// Extends: cco:DirectiveInformationContentEntity
	ClassClause = Namespace + "Clause"
)

// Object Property IRIs define relationships between governance entities.
const (
	PropDependsOn    = Namespace + "dependsOn"
	PropDependedBy   = Namespace + "dependedBy"
	PropSupersedes   = Namespace + "supersedes"
	PropSupersededBy = Namespace + "supersededBy"
	PropRelated      = Namespace + "related"

	// PropHasRule links a decision to its Rules.
	PropHasRule = Namespace + "hasRule"

	// PropHasClause links a Rule to its Clauses.
	PropHasClause = Namespace + "hasClause"
)
