// Package adr models governed architecture decision documents and decides
// which Markdown files count as one.
package adr

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// IDPattern matches an ADR identifier token such as ADR-007 or ADR-1200.
var IDPattern = regexp.MustCompile(`ADR-\d{3,4}`)

// idOnly matches a string that is exactly an ADR identifier.
var idOnly = regexp.MustCompile(`^ADR-\d{3,4}$`)

// IsID reports whether s is exactly an ADR identifier.
func IsID(s string) bool {
	return idOnly.MatchString(s)
}

// IDFromFilename returns the first ADR identifier in a file name, or "".
func IDFromFilename(name string) string {
	return IDPattern.FindString(name)
}

// Number returns the numeric part of an ADR identifier.
func Number(id string) (int, error) {
	if !IsID(id) {
		return 0, fmt.Errorf("not an adr id: %q", id)
	}
	return strconv.Atoi(strings.TrimPrefix(id, "ADR-"))
}

// RelationType is one of the five declared relationships between documents.
type RelationType string

// Relation types.
const (
	DependsOn    RelationType = "depends_on"
	DependedBy   RelationType = "depended_by"
	Supersedes   RelationType = "supersedes"
	SupersededBy RelationType = "superseded_by"
	Related      RelationType = "related"
)

// RelationTypes lists every relation type in declaration order.
var RelationTypes = []RelationType{DependsOn, DependedBy, Supersedes, SupersededBy, Related}

// Label returns the English heading label of t, e.g. "Depends On".
func (t RelationType) Label() string {
	switch t {
	case DependsOn:
		return "Depends On"
	case DependedBy:
		return "Depended By"
	case Supersedes:
		return "Supersedes"
	case SupersededBy:
		return "Superseded By"
	case Related:
		return "Related"
	}
	return string(t)
}

// IDSet is an unordered set of document identifiers.
type IDSet map[string]struct{}

// NewIDSet creates a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Has reports whether id is present. A nil set has no members.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Relations holds one IDSet per relation type.
type Relations map[RelationType]IDSet

// NewRelations creates an empty Relations with every set allocated.
func NewRelations() Relations {
	r := make(Relations, len(RelationTypes))
	for _, t := range RelationTypes {
		r[t] = IDSet{}
	}
	return r
}

// Add records target under t.
func (r Relations) Add(t RelationType, target string) {
	set, ok := r[t]
	if !ok {
		set = IDSet{}
		r[t] = set
	}
	set.Add(target)
}

// Clone returns a deep copy.
func (r Relations) Clone() Relations {
	out := NewRelations()
	for t, set := range r {
		for id := range set {
			out.Add(t, id)
		}
	}
	return out
}

// Total returns the number of relation entries across all types.
func (r Relations) Total() int {
	n := 0
	for _, set := range r {
		n += len(set)
	}
	return n
}

// Document is one loaded decision document.
type Document struct {
	ID       string
	FilePath string

	Relations Relations

	Status string
	Level  string
	Type   string

	// HasFrontMatter is true when a front matter block was found.
	HasFrontMatter bool
	// IsAdr is the classifier's verdict for the file.
	IsAdr bool
}

// NewDocument creates a document with empty relation sets.
func NewDocument(id, filePath string) *Document {
	return &Document{ID: id, FilePath: filePath, Relations: NewRelations()}
}

// Targets returns the set of ids declared under t. The result is never nil.
func (d *Document) Targets(t RelationType) IDSet {
	if set, ok := d.Relations[t]; ok {
		return set
	}
	return IDSet{}
}

// DependsOn returns the ids this document depends on.
func (d *Document) DependsOn() IDSet { return d.Targets(DependsOn) }

// DependedBy returns the ids that depend on this document.
func (d *Document) DependedBy() IDSet { return d.Targets(DependedBy) }

// Supersedes returns the ids this document replaces.
func (d *Document) Supersedes() IDSet { return d.Targets(Supersedes) }

// SupersededBy returns the ids that replace this document.
func (d *Document) SupersededBy() IDSet { return d.Targets(SupersededBy) }

// Related returns the ids declared as related.
func (d *Document) Related() IDSet { return d.Targets(Related) }

// Number returns the document's ADR number, or 0 when the id is not numeric.
func (d *Document) Number() int {
	n, err := Number(d.ID)
	if err != nil {
		return 0
	}
	return n
}
