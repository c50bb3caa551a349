package export

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/c360studio/archgov/adr"
	"github.com/c360studio/archgov/relations"
	"github.com/c360studio/archgov/rules"
)

// DocumentRecord is the JSON form of a document.
type DocumentRecord struct {
	ID       string       `json:"id"`
	FilePath string       `json:"file_path"`
	Status   string       `json:"status,omitempty"`
	Level    string       `json:"level,omitempty"`
	Type     string       `json:"type,omitempty"`
	IsAdr    bool         `json:"is_adr"`
	Category adr.Category `json:"category"`
	// Relations lists sorted targets for every relation type, empty
	// types included.
	Relations map[adr.RelationType][]string `json:"relations"`
}

// RuleRecord is a Rule with its Clauses.
type RuleRecord struct {
	rules.Definition
	Clauses []rules.ClauseDefinition `json:"clauses"`
}

// RuleSetRecord is the JSON form of a rule set.
type RuleSetRecord struct {
	Adr   string       `json:"adr"`
	Title string       `json:"title,omitempty"`
	Rules []RuleRecord `json:"rules"`
}

// Model is the JSON export of a document collection and its rule sets.
type Model struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Documents   []DocumentRecord `json:"documents"`
	Stats       relations.Stats  `json:"stats"`
	RuleSets    []RuleSetRecord  `json:"rule_sets,omitempty"`
}

// NewDocumentRecord converts a document.
func NewDocumentRecord(doc *adr.Document) DocumentRecord {
	rels := make(map[adr.RelationType][]string, len(adr.RelationTypes))
	for _, rt := range adr.RelationTypes {
		rels[rt] = doc.Targets(rt).Sorted()
	}
	return DocumentRecord{
		ID:        doc.ID,
		FilePath:  doc.FilePath,
		Status:    doc.Status,
		Level:     doc.Level,
		Type:      doc.Type,
		IsAdr:     doc.IsAdr,
		Category:  adr.CategoryOf(doc.Number()),
		Relations: rels,
	}
}

// NewRuleSetRecord converts a rule set.
func NewRuleSetRecord(rs *rules.RuleSet) RuleSetRecord {
	rec := RuleSetRecord{Adr: rs.AdrID(), Title: rs.Title(), Rules: []RuleRecord{}}
	for _, r := range rs.Rules() {
		clauses := rs.ClausesOf(r.ID.RuleNumber())
		if clauses == nil {
			clauses = []rules.ClauseDefinition{}
		}
		rec.Rules = append(rec.Rules, RuleRecord{Definition: r, Clauses: clauses})
	}
	return rec
}

// BuildModel assembles the model. docs is keyed by id; records are
// ordered by id.
func BuildModel(docs map[string]*adr.Document, sets []*rules.RuleSet, now time.Time) Model {
	m := Model{
		GeneratedAt: now.UTC(),
		Documents:   []DocumentRecord{},
		Stats:       relations.ComputeStats(docs),
	}
	for _, id := range slices.Sorted(maps.Keys(docs)) {
		m.Documents = append(m.Documents, NewDocumentRecord(docs[id]))
	}
	for _, rs := range sets {
		m.RuleSets = append(m.RuleSets, NewRuleSetRecord(rs))
	}
	return m
}

// WriteJSON writes m as indented JSON.
func WriteJSON(w io.Writer, m Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}
