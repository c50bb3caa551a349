package frontmatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_AllFields(t *testing.T) {
	text := `---
adr: ADR-907
Type: adr
status: "Accepted"
LEVEL: 'Constitutional'
date:   2024-01-20
owner: platform
---
# ADR-907
`
	got := Extract(text)

	assert.Equal(t, Data{
		HasFrontMatter: true,
		Adr:            "ADR-907",
		Type:           "adr",
		Status:         "Accepted",
		Level:          "Constitutional",
		Date:           "2024-01-20",
	}, got)
}

func TestExtract_NoFrontMatter(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"plain markdown", "# Title\n\nadr: ADR-001\n"},
		{"delimiter not on first line", "\n---\nadr: ADR-001\n---\n"},
		{"missing closing delimiter", "---\nadr: ADR-001\ntype: adr\n# Title\n"},
		{"delimiter with text", "--- x\nadr: ADR-001\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, Empty, got)
			assert.False(t, got.HasFrontMatter)
		})
	}
}

func TestExtract_MalformedLinesSkipped(t *testing.T) {
	text := "---\nthis line has no colon\n: orphan value\nadr: ADR-001\n  - list item\ntype: checklist\n---\n"

	got := Extract(text)
	assert.True(t, got.HasFrontMatter)
	assert.Equal(t, "ADR-001", got.Adr)
	assert.Equal(t, "checklist", got.Type)
}

func TestExtract_EmptyBlockIsStillPresent(t *testing.T) {
	got := Extract("---\n---\n# Title")
	assert.True(t, got.HasFrontMatter)
	assert.Empty(t, got.Adr)
	assert.Empty(t, got.Type)
}

func TestExtract_CRLFAndBOM(t *testing.T) {
	got := Extract("\ufeff---\r\nadr: ADR-002\r\ntype: guide\r\n---\r\nbody")
	assert.True(t, got.HasFrontMatter)
	assert.Equal(t, "ADR-002", got.Adr)
	assert.Equal(t, "guide", got.Type)
}

func TestExtract_ValueWithColon(t *testing.T) {
	got := Extract("---\ndate: 2024-01-20T10:00:00Z\n---\n")
	assert.Equal(t, "2024-01-20T10:00:00Z", got.Date)
}

func TestUnquote_OnlyMatchingPairs(t *testing.T) {
	assert.Equal(t, "adr", unquote(`"adr"`))
	assert.Equal(t, "adr", unquote(`'adr'`))
	assert.Equal(t, `"adr'`, unquote(`"adr'`))
	assert.Equal(t, `"`, unquote(`"`))
	assert.Equal(t, "", unquote(`""`))
}

func TestExtractQuick_OnlyClassificationKeys(t *testing.T) {
	text := "---\nstatus: Accepted\ntype: guide\nadr: ADR-005\nlevel: Technical\n---\n"

	got := ExtractQuick(text)
	assert.True(t, got.HasFrontMatter)
	assert.Equal(t, "ADR-005", got.Adr)
	assert.Equal(t, "guide", got.Type)
	assert.Empty(t, got.Status)
	assert.Empty(t, got.Level)
}

func TestExtractQuick_ClosingOutsideWindow(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("---\nadr: ADR-001\n")
	for i := 0; i < DefaultQuickLines; i++ {
		fmt.Fprintf(&sb, "k%d: v\n", i)
	}
	sb.WriteString("---\n")

	assert.Equal(t, Empty, ExtractQuick(sb.String()))
	assert.True(t, Extract(sb.String()).HasFrontMatter)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ADR-901-checklist.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntype: checklist\nadr: ADR-901\n---\n# Checklist\n"), 0o644))

	got, err := ExtractFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "ADR-901", got.Adr)
	assert.Equal(t, "checklist", got.Type)

	_, err = ExtractFile(filepath.Join(dir, "missing.md"), 0)
	assert.Error(t, err)
}

func TestBody(t *testing.T) {
	assert.Equal(t, "# Title\nText", Body("---\nadr: ADR-001\n---\n# Title\nText"))
	assert.Equal(t, "# Title", Body("# Title"))
	assert.Equal(t, "---\nadr: ADR-001\n", Body("---\nadr: ADR-001\n"))
}
