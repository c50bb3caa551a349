package adr

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/c360studio/archgov/frontmatter"
)

// excludedTypes are front matter types that mark companion documents.
var excludedTypes = []string{"checklist", "guide", "template", "proposal"}

// IsGovernedDocument decides whether filePath is a governed decision
// document rather than a companion artifact. fm may be nil when front
// matter was not read; that is treated the same as a file without a block.
//
// The checks run in a fixed order. An explicit adr field in front matter
// wins over a companion type such as checklist (a checklist that declares
// adr: ADR-901 is governed), but not over the README, TEMPLATE and
// proposals exclusions that come before it.
func IsGovernedDocument(filePath string, fm *frontmatter.Data) bool {
	name := filepath.Base(filePath)

	if name == "README.md" || strings.Contains(name, "TEMPLATE") {
		return false
	}

	if hasSegment(filePath, "proposals") {
		return false
	}

	if fm == nil || !fm.HasFrontMatter {
		lower := strings.ToLower(name)
		return !strings.Contains(lower, "checklist") && !strings.Contains(lower, "guide")
	}

	if strings.TrimSpace(fm.Adr) != "" {
		return true
	}

	docType := strings.ToLower(strings.TrimSpace(fm.Type))
	if slices.Contains(excludedTypes, docType) {
		return false
	}
	return docType == "" || docType == "adr"
}

// hasSegment reports whether any directory segment of path equals seg.
// Both separators are accepted so paths from other platforms classify the same.
func hasSegment(path, seg string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	return slices.Contains(strings.Split(normalized, "/"), seg)
}
