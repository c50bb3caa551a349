package adr

import (
	"testing"

	"github.com/c360studio/archgov/frontmatter"
	"github.com/stretchr/testify/assert"
)

func TestIsGovernedDocument(t *testing.T) {
	withFM := func(adrField, docType string) *frontmatter.Data {
		return &frontmatter.Data{HasFrontMatter: true, Adr: adrField, Type: docType}
	}

	tests := []struct {
		name string
		path string
		fm   *frontmatter.Data
		want bool
	}{
		{"readme", "docs/adr/README.md", nil, false},
		{"readme with adr field", "docs/adr/README.md", withFM("ADR-001", "adr"), false},
		{"template", "docs/adr/ADR-TEMPLATE.md", nil, false},
		{"proposals dir", "docs/adr/proposals/ADR-950-new.md", withFM("ADR-950", "adr"), false},
		{"proposals windows path", `docs\adr\proposals\ADR-950.md`, nil, false},
		{"proposals as name part only", "docs/adr/proposals-archive/ADR-950.md", nil, true},
		{"plain no front matter", "docs/adr/ADR-001-modules.md", nil, true},
		{"empty front matter data", "docs/adr/ADR-001-modules.md", &frontmatter.Data{}, true},
		{"checklist by filename", "docs/adr/ADR-901-Checklist.md", nil, false},
		{"guide by filename", "docs/adr/ADR-002-guide.md", nil, false},
		{"checklist type", "docs/adr/ADR-901-review.md", withFM("", "checklist"), false},
		{"checklist type with adr", "docs/adr/ADR-901-review.md", withFM("ADR-901", "checklist"), true},
		{"guide type uppercase", "docs/adr/ADR-010.md", withFM("", "GUIDE"), false},
		{"template type", "docs/adr/ADR-010.md", withFM("", "template"), false},
		{"proposal type", "docs/adr/ADR-010.md", withFM("", "proposal"), false},
		{"adr type", "docs/adr/ADR-010.md", withFM("", "ADR"), true},
		{"no type", "docs/adr/ADR-010.md", withFM("", ""), true},
		{"other type", "docs/adr/ADR-010.md", withFM("", "note"), false},
		{"other type with adr", "docs/adr/ADR-010.md", withFM("ADR-010", "note"), true},
		{"guide filename with front matter", "docs/adr/ADR-010-guide.md", withFM("", "adr"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGovernedDocument(tt.path, tt.fm))
		})
	}
}

func TestIsGovernedDocument_ChecklistScenario(t *testing.T) {
	path := "docs/adr/governance/ADR-901-checklist.md"

	fm := frontmatter.Extract("---\ntype: checklist\n---\n")
	assert.False(t, IsGovernedDocument(path, &fm))

	fm = frontmatter.Extract("---\ntype: checklist\nadr: ADR-901\n---\n")
	assert.True(t, IsGovernedDocument(path, &fm))
}
