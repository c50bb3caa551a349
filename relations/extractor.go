package relations

import (
	"github.com/c360studio/archgov/adr"
	"github.com/c360studio/archgov/mdtree"
)

// Extractor reads declared relationships out of a parsed document.
// It holds only immutable configuration and is safe for concurrent use.
type Extractor struct {
	labels Labels
}

// NewExtractor creates an extractor using labels.
func NewExtractor(labels Labels) *Extractor {
	return &Extractor{labels: labels.clone()}
}

// DefaultExtractor creates an extractor using DefaultLabels.
func DefaultExtractor() *Extractor {
	return NewExtractor(DefaultLabels())
}

// Extract returns the relationships declared in tree.
//
// Only blocks between a level-2 heading matching a section label and the
// next level-2 heading are read. Inside that region a paragraph whose
// text matches a type label sets the current relation type; other
// paragraphs leave it unchanged. Every ADR identifier in a list item is
// recorded under the current type. List items before any label are ignored.
func (e *Extractor) Extract(tree *mdtree.Tree) adr.Relations {
	rels := adr.NewRelations()
	if tree == nil {
		return rels
	}

	inRegion := false
	var current adr.RelationType

	for _, b := range tree.Blocks {
		if b.Kind == mdtree.KindHeading && b.Level == 2 {
			if inRegion {
				break
			}
			inRegion = e.labels.IsSection(b.Text)
			continue
		}
		if !inRegion {
			continue
		}

		switch b.Kind {
		case mdtree.KindParagraph:
			if t, ok := e.labels.TypeOf(b.Text); ok {
				current = t
			}
		case mdtree.KindListItem:
			if current == "" {
				continue
			}
			for _, id := range adr.IDPattern.FindAllString(b.Text, -1) {
				rels.Add(current, id)
			}
		}
	}

	return rels
}

// ExtractInto fills doc's relation sets from tree.
func (e *Extractor) ExtractInto(doc *adr.Document, tree *mdtree.Tree) {
	doc.Relations = e.Extract(tree)
}

// HasSection reports whether tree contains a relationships heading.
func (e *Extractor) HasSection(tree *mdtree.Tree) bool {
	if tree == nil {
		return false
	}
	for _, b := range tree.Blocks {
		if b.Kind == mdtree.KindHeading && b.Level == 2 && e.labels.IsSection(b.Text) {
			return true
		}
	}
	return false
}
