package relations

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report aggregates the violations of one validation run.
type Report struct {
	// ID identifies the run in logs and exported results.
	ID          string      `json:"id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Documents   int         `json:"documents"`
	Violations  []Violation `json:"violations"`
}

func newReport(documents int) *Report {
	return &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Documents:   documents,
		Violations:  []Violation{},
	}
}

func (r *Report) add(v ...Violation) {
	r.Violations = append(r.Violations, v...)
}

// Passed reports whether no violations were found.
func (r *Report) Passed() bool {
	return len(r.Violations) == 0
}

// Counts returns the number of violations per check.
func (r *Report) Counts() map[Check]int {
	out := map[Check]int{}
	for _, v := range r.Violations {
		out[v.Check]++
	}
	return out
}

// ByCheck returns the violations of one check in report order.
func (r *Report) ByCheck(c Check) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Check == c {
			out = append(out, v)
		}
	}
	return out
}

// Cycles returns the cycle paths in the report.
func (r *Report) Cycles() [][]string {
	var out [][]string
	for _, v := range r.ByCheck(CheckCycle) {
		out = append(out, v.Cycle)
	}
	return out
}

// Summary renders every violation message followed by a count line.
func (r *Report) Summary() string {
	if r.Passed() {
		return fmt.Sprintf("%d documents checked, no violations\n", r.Documents)
	}
	var sb strings.Builder
	for _, v := range r.Violations {
		sb.WriteString("✗ ")
		sb.WriteString(v.Message)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "%d documents checked, %d violations\n", r.Documents, len(r.Violations))
	return sb.String()
}
