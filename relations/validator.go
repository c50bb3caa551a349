package relations

import (
	"slices"

	"github.com/c360studio/archgov/adr"
)

// Pair is a forward relation and the backward relation its target must declare.
type Pair struct {
	Forward  adr.RelationType
	Backward adr.RelationType
}

// BidirectionalPairs are the relation pairs checked for reciprocity.
var BidirectionalPairs = []Pair{
	{Forward: adr.DependsOn, Backward: adr.DependedBy},
	{Forward: adr.Supersedes, Backward: adr.SupersededBy},
}

// ValidateBidirectional checks every forward edge in docs. A target that
// is not in docs is a dangling reference; a target that exists but does
// not list the origin under backward is an asymmetry. All violations are
// returned, ordered by origin id then target id.
func ValidateBidirectional(docs map[string]*adr.Document, forward, backward adr.RelationType) []Violation {
	var violations []Violation
	for _, id := range sortedIDs(docs) {
		doc := docs[id]
		for _, target := range doc.Targets(forward).Sorted() {
			other, ok := docs[target]
			if !ok {
				violations = append(violations, danglingViolation(doc, forward, target))
				continue
			}
			if !other.Targets(backward).Has(doc.ID) {
				violations = append(violations, asymmetryViolation(doc, forward, backward, target))
			}
		}
	}
	return violations
}

// ValidateSymmetric checks that every rel edge is declared by both ends.
func ValidateSymmetric(docs map[string]*adr.Document, rel adr.RelationType) []Violation {
	return ValidateBidirectional(docs, rel, rel)
}

// DetectCycles finds cycles in the DependsOn graph with a depth-first
// search. Edges to ids that are not in docs are skipped. Each back edge
// found yields one cycle, listed from the re-entered node along the
// current path; a self dependency is a one-element cycle. Traversal order
// is sorted so results are deterministic.
func DetectCycles(docs map[string]*adr.Document) [][]string {
	var cycles [][]string
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var path []string

	var visit func(id string)
	visit = func(id string) {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, dep := range docs[id].DependsOn().Sorted() {
			if _, ok := docs[dep]; !ok {
				continue
			}
			if onStack[dep] {
				start := slices.Index(path, dep)
				cycles = append(cycles, slices.Clone(path[start:]))
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		path = path[:len(path)-1]
		onStack[id] = false
	}

	for _, id := range sortedIDs(docs) {
		if !visited[id] {
			visit(id)
		}
	}
	return cycles
}

// Options selects the checks Validate runs.
type Options struct {
	Bidirectional bool `yaml:"check_bidirectional" json:"check_bidirectional"`
	Related       bool `yaml:"check_related" json:"check_related"`
	Cycles        bool `yaml:"check_cycles" json:"check_cycles"`
	// Sections flags governed documents without a relationships heading.
	// It needs HasSection data, so it is off by default.
	Sections bool `yaml:"check_sections" json:"check_sections"`
}

// DefaultOptions enables the graph checks.
func DefaultOptions() Options {
	return Options{Bidirectional: true, Related: true, Cycles: true}
}

// Validator runs the configured checks over a document collection.
type Validator struct {
	opts Options
}

// NewValidator creates a validator.
func NewValidator(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Validate runs every enabled check and collects all violations.
// missingSection lists the ids of documents without a relationships
// heading; it is only consulted when Options.Sections is set.
func (v *Validator) Validate(docs map[string]*adr.Document, missingSection []string) *Report {
	report := newReport(len(docs))

	if v.opts.Bidirectional {
		for _, p := range BidirectionalPairs {
			report.add(ValidateBidirectional(docs, p.Forward, p.Backward)...)
		}
	}
	if v.opts.Related {
		report.add(ValidateSymmetric(docs, adr.Related)...)
	}
	if v.opts.Cycles {
		for _, c := range DetectCycles(docs) {
			report.add(cycleViolation(c))
		}
	}
	if v.opts.Sections {
		ids := slices.Clone(missingSection)
		slices.Sort(ids)
		for _, id := range ids {
			if doc, ok := docs[id]; ok {
				report.add(missingSectionViolation(doc))
			}
		}
	}

	return report
}

func sortedIDs(docs map[string]*adr.Document) []string {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
