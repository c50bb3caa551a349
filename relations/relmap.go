package relations

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/archgov/adr"
)

// sectionTitles are the per-relation headings used in the map.
var sectionTitles = map[adr.RelationType]string{
	adr.DependsOn:    "依赖（Depends On）",
	adr.DependedBy:   "被依赖（Depended By）",
	adr.Supersedes:   "替代（Supersedes）",
	adr.SupersededBy: "被替代（Superseded By）",
	adr.Related:      "相关（Related）",
}

// RenderMap renders the relationship map of docs as Markdown, grouped by
// category and sorted by id. now stamps the header.
func RenderMap(docs map[string]*adr.Document, now time.Time) string {
	stats := ComputeStats(docs)

	var sb strings.Builder
	sb.WriteString("# ADR Relationship Map\n\n")
	sb.WriteString("> Generated file, do not edit by hand.\n")
	fmt.Fprintf(&sb, "> Generated at: %s\n\n", now.Format("2006-01-02 15:04:05"))

	sb.WriteString("## Statistics\n\n")
	fmt.Fprintf(&sb, "- **Documents**: %d\n", stats.Documents)
	fmt.Fprintf(&sb, "- **Dependencies**: %d\n", stats.Dependencies)
	fmt.Fprintf(&sb, "- **Supersedes**: %d\n", stats.Supersedes)
	fmt.Fprintf(&sb, "- **Isolated**: %d\n\n", len(stats.Isolated))

	groups := map[adr.Category][]*adr.Document{}
	for _, id := range sortedIDs(docs) {
		doc := docs[id]
		c := adr.CategoryOf(doc.Number())
		groups[c] = append(groups[c], doc)
	}

	sb.WriteString("## Documents\n\n")
	for _, c := range adr.Categories {
		group := groups[c]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "### %s\n\n", c.Title())
		for _, doc := range group {
			writeMapEntry(&sb, doc)
		}
	}

	return sb.String()
}

func writeMapEntry(sb *strings.Builder, doc *adr.Document) {
	fmt.Fprintf(sb, "#### %s\n\n", doc.ID)
	fmt.Fprintf(sb, "**File**: `%s`\n\n", filepath.Base(doc.FilePath))
	for _, t := range adr.RelationTypes {
		targets := doc.Targets(t).Sorted()
		if len(targets) == 0 {
			continue
		}
		fmt.Fprintf(sb, "**%s**:\n", sectionTitles[t])
		for _, target := range targets {
			fmt.Fprintf(sb, "- %s\n", target)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("---\n\n")
}
