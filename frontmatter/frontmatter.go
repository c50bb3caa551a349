// Package frontmatter extracts the leading ---delimited metadata block of
// a governance document.
//
// Only flat key: value lines are understood and only five keys are kept
// (adr, type, status, level, date). Anything else in the block, including
// nested YAML, is ignored line by line rather than rejected, so a block
// with one bad line still yields the fields around it.
package frontmatter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultQuickLines is the number of leading lines scanned by quick extraction.
const DefaultQuickLines = 50

// Delimiter opens and closes a front matter block.
const Delimiter = "---"

// Recognised keys.
const (
	KeyAdr    = "adr"
	KeyType   = "type"
	KeyStatus = "status"
	KeyLevel  = "level"
	KeyDate   = "date"
)

// Data holds the recognised front matter fields.
// The zero value means no front matter was found.
type Data struct {
	HasFrontMatter bool   `json:"has_front_matter"`
	Adr            string `json:"adr,omitempty"`
	Type           string `json:"type,omitempty"`
	Status         string `json:"status,omitempty"`
	Level          string `json:"level,omitempty"`
	Date           string `json:"date,omitempty"`
}

// Empty is the result for a document without a front matter block.
var Empty = Data{}

// Extract parses the front matter block of text and returns all five fields.
func Extract(text string) Data {
	return ExtractLines(splitLines(text), 0, false)
}

// ExtractQuick scans at most DefaultQuickLines lines and stops as soon as
// both adr and type are known. Status, level and date are not populated.
func ExtractQuick(text string) Data {
	return ExtractLines(splitLines(text), DefaultQuickLines, true)
}

// ExtractLines parses lines. maxLines <= 0 scans every line. In quick mode
// only adr and type are read and parsing stops once both are set.
//
// The closing delimiter must appear within the scanned window; otherwise
// the result is Empty.
func ExtractLines(lines []string, maxLines int, quick bool) Data {
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		return Empty
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return Empty
	}

	data := Data{HasFrontMatter: true}
	for _, line := range lines[1:end] {
		key, value, ok := splitField(line)
		if !ok {
			continue
		}
		switch key {
		case KeyAdr:
			data.Adr = value
		case KeyType:
			data.Type = value
		case KeyStatus:
			if !quick {
				data.Status = value
			}
		case KeyLevel:
			if !quick {
				data.Level = value
			}
		case KeyDate:
			if !quick {
				data.Date = value
			}
		}
		if quick && data.Adr != "" && data.Type != "" {
			break
		}
	}
	return data
}

// ExtractFile reads at most maxLines lines of path and runs quick extraction.
// maxLines <= 0 uses DefaultQuickLines.
func ExtractFile(path string, maxLines int) (Data, error) {
	if maxLines <= 0 {
		maxLines = DefaultQuickLines
	}

	f, err := os.Open(path)
	if err != nil {
		return Empty, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	lines := make([]string, 0, maxLines)
	scanner := bufio.NewScanner(f)
	for len(lines) < maxLines && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Empty, fmt.Errorf("read %s: %w", path, err)
	}

	return ExtractLines(lines, maxLines, true), nil
}

// splitField splits "key: value". Lines without a colon, or with nothing
// before it, are rejected. Keys are lowercased.
func splitField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(line[idx+1:])), true
}

// unquote strips one pair of matching single or double quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			return strings.TrimSpace(v[1 : len(v)-1])
		}
	}
	return v
}

func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Body returns text with a leading front matter block removed. Text
// without a complete block is returned unchanged.
func Body(text string) string {
	lines := splitLines(text)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		return text
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			return strings.Join(lines[i+1:], "\n")
		}
	}
	return text
}
