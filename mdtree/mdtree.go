// Package mdtree reduces a Markdown document to the flat sequence of
// blocks the relationship extractor reads: headings, paragraphs and list
// items, in document order.
//
// The Block model does not depend on any Markdown engine. Parse builds it
// with goldmark; tests and other callers can construct Trees by hand.
package mdtree

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind is the block type.
type Kind int

// Block kinds.
const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindListItem
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindListItem:
		return "list_item"
	}
	return "unknown"
}

// Block is one structural element with its inline text flattened.
type Block struct {
	Kind Kind
	// Level is the heading level, 0 for other kinds.
	Level int
	Text  string
}

// Tree is a document as an ordered list of blocks.
type Tree struct {
	Blocks []Block
}

// Heading appends a heading block and returns t for chaining.
func (t *Tree) Heading(level int, s string) *Tree {
	t.Blocks = append(t.Blocks, Block{Kind: KindHeading, Level: level, Text: s})
	return t
}

// Paragraph appends a paragraph block.
func (t *Tree) Paragraph(s string) *Tree {
	t.Blocks = append(t.Blocks, Block{Kind: KindParagraph, Text: s})
	return t
}

// ListItem appends a list item block.
func (t *Tree) ListItem(s string) *Tree {
	t.Blocks = append(t.Blocks, Block{Kind: KindListItem, Text: s})
	return t
}

// Parse parses CommonMark source into a Tree.
//
// A list item yields one block holding the text of its own paragraphs;
// those paragraphs are not emitted again. Nested list items yield their
// own blocks after their parent.
func Parse(source []byte) *Tree {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	tree := &Tree{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			tree.Heading(node.Level, inlineText(node, source))
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			tree.ListItem(listItemText(node, source))
			return ast.WalkContinue, nil
		case *ast.Paragraph, *ast.TextBlock:
			if !insideListItem(node) {
				tree.Paragraph(inlineText(node, source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return tree
}

// listItemText joins the text of the item's direct text children,
// leaving nested lists to their own blocks.
func listItemText(item *ast.ListItem, source []byte) string {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			if s := inlineText(c, source); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " ")
}

func insideListItem(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.ListItem); ok {
			return true
		}
	}
	return false
}

// inlineText concatenates the literal text below n.
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(node.Value)
		case *ast.AutoLink:
			sb.Write(node.Label(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
