package vocabulary

import "github.com/c360studio/archgov/adr"

// Document predicates.
const (
	// DocID is the decision identifier, e.g. "ADR-907".
	DocID = "adr.meta.id"

	// DocFilePath is the source file of the document.
	DocFilePath = "adr.meta.file_path"

	// DocStatus is the front matter status (Draft, Final, ...).
	DocStatus = "adr.meta.status"

	// DocLevel is the front matter enforcement level.
	DocLevel = "adr.meta.level"

	// DocType is the front matter document type.
	DocType = "adr.meta.type"

	// DocCategory is the tier derived from the decision number.
	// Values: constitutional, structure, runtime, technical, governance
	DocCategory = "adr.meta.category"

	// DocTitle is the rule set title.
	DocTitle = "adr.meta.title"
)

// Relationship predicates between decisions.
const (
	RelDependsOn    = "adr.rel.depends_on"
	RelDependedBy   = "adr.rel.depended_by"
	RelSupersedes   = "adr.rel.supersedes"
	RelSupersededBy = "adr.rel.superseded_by"
	RelRelated      = "adr.rel.related"

	// RelHasRule links a decision to its Rules.
	RelHasRule = "adr.rel.has_rule"

	// RelHasClause links a Rule to its Clauses.
	RelHasClause = "adr.rel.has_clause"
)

// Rule predicates.
const (
	RuleID       = "adr.rule.id"
	RuleSummary  = "adr.rule.summary"
	RuleDecision = "adr.rule.decision"
	RuleSeverity = "adr.rule.severity"
	RuleScope    = "adr.rule.scope"
)

// Clause predicates.
const (
	ClauseID          = "adr.clause.id"
	ClauseCondition   = "adr.clause.condition"
	ClauseEnforcement = "adr.clause.enforcement"
	ClauseExecution   = "adr.clause.execution"
)

var relationPredicates = map[adr.RelationType]string{
	adr.DependsOn:    RelDependsOn,
	adr.DependedBy:   RelDependedBy,
	adr.Supersedes:   RelSupersedes,
	adr.SupersededBy: RelSupersededBy,
	adr.Related:      RelRelated,
}

// RelationPredicate returns the predicate for a relation type.
func RelationPredicate(t adr.RelationType) string {
	return relationPredicates[t]
}

func init() {
	Register(DocID,
		WithDescription("Decision identifier, e.g. ADR-907"),
		WithDataType("string"),
		WithIRI(DcIdentifier))

	Register(DocFilePath,
		WithDescription("Source file path of the decision document"),
		WithDataType("string"),
		WithIRI(Namespace+"filePath"))

	Register(DocStatus,
		WithDescription("Front matter status"),
		WithDataType("string"),
		WithIRI(Namespace+"status"))

	Register(DocLevel,
		WithDescription("Front matter enforcement level"),
		WithDataType("string"),
		WithIRI(Namespace+"level"))

	Register(DocType,
		WithDescription("Front matter document type"),
		WithDataType("string"),
		WithIRI(Namespace+"documentType"))

	Register(DocCategory,
		WithDescription("Tier derived from the decision number"),
		WithDataType("string"),
		WithIRI(Namespace+"category"))

	Register(DocTitle,
		WithDescription("Decision title"),
		WithDataType("string"),
		WithIRI(DcTitle))

	Register(RelDependsOn,
		WithDescription("Decision this one depends on"),
		WithDataType("entity_id"),
		WithIRI(PropDependsOn))

	Register(RelDependedBy,
		WithDescription("Decision that depends on this one"),
		WithDataType("entity_id"),
		WithIRI(PropDependedBy))

	Register(RelSupersedes,
		WithDescription("Decision this one replaces"),
		WithDataType("entity_id"),
		WithIRI(PropSupersedes))

	Register(RelSupersededBy,
		WithDescription("Decision that replaces this one"),
		WithDataType("entity_id"),
		WithIRI(PropSupersededBy))

	Register(RelRelated,
		WithDescription("Related decision, declared by both sides"),
		WithDataType("entity_id"),
		WithIRI(PropRelated))

	Register(RelHasRule,
		WithDescription("Links a decision to its Rules"),
		WithDataType("entity_id"),
		WithIRI(PropHasRule))

	Register(RelHasClause,
		WithDescription("Links a Rule to its Clauses"),
		WithDataType("entity_id"),
		WithIRI(PropHasClause))

	Register(RuleID,
		WithDescription("Rule identifier, e.g. ADR-907_3"),
		WithDataType("string"),
		WithIRI(DcIdentifier))

	Register(RuleSummary,
		WithDescription("One-line Rule summary"),
		WithDataType("string"),
		WithIRI(DcTitle))

	Register(RuleDecision,
		WithDescription("Decision level: must, must_not or should"),
		WithDataType("string"),
		WithIRI(Namespace+"decisionLevel"))

	Register(RuleSeverity,
		WithDescription("How binding the Rule is"),
		WithDataType("string"),
		WithIRI(Namespace+"severity"))

	Register(RuleScope,
		WithDescription("What the Rule applies to"),
		WithDataType("string"),
		WithIRI(Namespace+"scope"))

	Register(ClauseID,
		WithDescription("Clause identifier, e.g. ADR-907_3_2"),
		WithDataType("string"),
		WithIRI(DcIdentifier))

	Register(ClauseCondition,
		WithDescription("Condition the Clause requires"),
		WithDataType("string"),
		WithIRI(Namespace+"condition"))

	Register(ClauseEnforcement,
		WithDescription("How the Clause is checked"),
		WithDataType("string"),
		WithIRI(Namespace+"enforcement"))

	Register(ClauseExecution,
		WithDescription("Execution type of the check"),
		WithDataType("string"),
		WithIRI(Namespace+"executionType"))
}
