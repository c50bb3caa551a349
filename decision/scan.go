package decision

import (
	"strings"
	"unicode"
)

// Finding is one classified sentence inside a larger text.
type Finding struct {
	Line     int    `json:"line"`
	Sentence string `json:"sentence"`
	Result   Result `json:"result"`
}

// Outcome returns the finding's enforcement outcome.
func (f Finding) Outcome() Outcome {
	return f.Result.Outcome()
}

// sentenceEnds terminate a sentence in addition to line breaks.
const sentenceEnds = "。！？；!?;"

// ScanText splits text into sentences and returns a Finding for every
// sentence that carries decision language. Line numbers start at 1.
func (c *Classifier) ScanText(text string) []Finding {
	var findings []Finding
	for i, line := range strings.Split(text, "\n") {
		for _, sentence := range splitSentences(line) {
			r := c.Parse(sentence)
			if !r.IsDecision() {
				continue
			}
			findings = append(findings, Finding{Line: i + 1, Sentence: sentence, Result: r})
		}
	}
	return findings
}

// Summary counts findings by outcome.
func Summary(findings []Finding) map[Outcome]int {
	out := map[Outcome]int{}
	for _, f := range findings {
		out[f.Outcome()]++
	}
	return out
}

func splitSentences(line string) []string {
	var out []string
	var sb strings.Builder
	flush := func() {
		s := strings.TrimFunc(sb.String(), func(r rune) bool {
			return unicode.IsSpace(r) || r == '-' || r == '*' || r == '>' || r == '#'
		})
		if s != "" {
			out = append(out, s)
		}
		sb.Reset()
	}
	for _, r := range line {
		sb.WriteRune(r)
		if strings.ContainsRune(sentenceEnds, r) {
			flush()
		}
	}
	flush()
	return out
}
