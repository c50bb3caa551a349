package repository

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/c360studio/archgov/adr"
	"github.com/c360studio/archgov/adrerr"
)

// Collection is the result of one load pass, keyed by document id.
type Collection struct {
	root           string
	byID           map[string]*adr.Document
	folded         map[string]*adr.Document
	missingSection []string
	skipped        []string
}

func newCollection(root string) *Collection {
	return &Collection{
		root:   root,
		byID:   make(map[string]*adr.Document),
		folded: make(map[string]*adr.Document),
	}
}

// NewCollection builds a collection from already loaded documents.
// Later documents with a duplicate id are dropped.
func NewCollection(root string, docs ...*adr.Document) *Collection {
	c := newCollection(root)
	for _, doc := range docs {
		c.add(doc)
	}
	return c
}

func (c *Collection) add(doc *adr.Document) bool {
	if _, dup := c.byID[doc.ID]; dup {
		return false
	}
	c.byID[doc.ID] = doc
	c.folded[strings.ToUpper(doc.ID)] = doc
	return true
}

// Root returns the directory the collection was loaded from.
func (c *Collection) Root() string { return c.root }

// Len returns the number of documents.
func (c *Collection) Len() int { return len(c.byID) }

// Map returns the id-keyed documents. The map is shared; do not modify it.
func (c *Collection) Map() map[string]*adr.Document { return c.byID }

// IDs returns the document ids in ascending order.
func (c *Collection) IDs() []string {
	return slices.Sorted(maps.Keys(c.byID))
}

// Documents returns the documents ordered by id.
func (c *Collection) Documents() []*adr.Document {
	out := make([]*adr.Document, 0, len(c.byID))
	for _, id := range c.IDs() {
		out = append(out, c.byID[id])
	}
	return out
}

// Lookup finds a document by id, ignoring case.
func (c *Collection) Lookup(id string) (*adr.Document, bool) {
	doc, ok := c.folded[strings.ToUpper(strings.TrimSpace(id))]
	return doc, ok
}

// Get is Lookup that fails with a NotFound error listing the known ids.
func (c *Collection) Get(id string) (*adr.Document, error) {
	if doc, ok := c.Lookup(id); ok {
		return doc, nil
	}
	return nil, adrerr.NotFound("repository.Get", id, "no document with this id", c.IDs())
}

// MissingSection returns the governed documents without a relationships
// heading, in ascending id order.
func (c *Collection) MissingSection() []string {
	out := slices.Clone(c.missingSection)
	slices.Sort(out)
	return out
}

// Skipped returns the paths that could not be read.
func (c *Collection) Skipped() []string { return c.skipped }

// Require returns ErrNoDocuments when the collection is empty.
func (c *Collection) Require() error {
	if c.Len() == 0 {
		return fmt.Errorf("%w under %s; check the path and that files match ADR-*.md", ErrNoDocuments, c.root)
	}
	return nil
}
