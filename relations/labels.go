// Package relations extracts the declared relationship graph from ADR
// documents and validates it across the whole collection.
package relations

import (
	"slices"
	"strings"

	"github.com/c360studio/archgov/adr"
)

// TypeLabel maps paragraph labels to a relation type. A paragraph selects
// Type when it contains any Match label and none of the Exclude labels.
type TypeLabel struct {
	Type    adr.RelationType `yaml:"type" json:"type"`
	Match   []string         `yaml:"match" json:"match"`
	Exclude []string         `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Labels is the bilingual vocabulary the extractor matches against.
// Matching is case-insensitive.
type Labels struct {
	// Section labels identify the level-2 heading that opens the region.
	Section []string `yaml:"section" json:"section"`
	// Types are tried in order; the first match wins.
	Types []TypeLabel `yaml:"types" json:"types"`
}

// DefaultLabels returns the English and Chinese labels.
//
// "被依赖" contains "依赖" and "被替代" contains "替代", so the forward
// types exclude their backward labels.
func DefaultLabels() Labels {
	return Labels{
		Section: []string{"Relationships", "关系声明"},
		Types: []TypeLabel{
			{Type: adr.DependsOn, Match: []string{"Depends On", "依赖"}, Exclude: []string{"Depended By", "被依赖"}},
			{Type: adr.DependedBy, Match: []string{"Depended By", "被依赖"}},
			{Type: adr.Supersedes, Match: []string{"Supersedes", "替代"}, Exclude: []string{"Superseded By", "被替代"}},
			{Type: adr.SupersededBy, Match: []string{"Superseded By", "被替代"}},
			{Type: adr.Related, Match: []string{"Related", "相关"}},
		},
	}
}

// clone deep-copies l.
func (l Labels) clone() Labels {
	out := Labels{Section: slices.Clone(l.Section), Types: make([]TypeLabel, len(l.Types))}
	for i, t := range l.Types {
		out.Types[i] = TypeLabel{Type: t.Type, Match: slices.Clone(t.Match), Exclude: slices.Clone(t.Exclude)}
	}
	return out
}

// IsSection reports whether heading text opens the relationships region.
func (l Labels) IsSection(text string) bool {
	return containsAnyFold(text, l.Section)
}

// TypeOf returns the relation type selected by paragraph text.
func (l Labels) TypeOf(text string) (adr.RelationType, bool) {
	for _, t := range l.Types {
		if containsAnyFold(text, t.Match) && !containsAnyFold(text, t.Exclude) {
			return t.Type, true
		}
	}
	return "", false
}

func containsAnyFold(s string, subs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if sub != "" && strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
