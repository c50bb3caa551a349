package relations

import (
	"fmt"
	"strings"

	"github.com/c360studio/archgov/adr"
)

// Check names a validation check.
type Check string

// Checks.
const (
	CheckDangling       Check = "dangling"
	CheckAsymmetry      Check = "asymmetry"
	CheckCycle          Check = "cycle"
	CheckMissingSection Check = "missing_section"
)

// Checks lists every check in report order.
var Checks = []Check{CheckDangling, CheckAsymmetry, CheckCycle, CheckMissingSection}

// Violation is one governance finding.
type Violation struct {
	Check    Check            `json:"check"`
	Relation adr.RelationType `json:"relation,omitempty"`
	// Inverse is the relation expected on Target, for asymmetry findings.
	Inverse  adr.RelationType `json:"inverse,omitempty"`
	Source   string           `json:"source"`
	Target   string           `json:"target,omitempty"`
	FilePath string           `json:"file_path,omitempty"`
	// Cycle is the dependency path, for cycle findings.
	Cycle   []string `json:"cycle,omitempty"`
	Message string   `json:"message"`
}

// String returns the message.
func (v Violation) String() string { return v.Message }

func danglingViolation(doc *adr.Document, rel adr.RelationType, target string) Violation {
	return Violation{
		Check:    CheckDangling,
		Relation: rel,
		Source:   doc.ID,
		Target:   target,
		FilePath: doc.FilePath,
		Message: fmt.Sprintf("%s declares %s %s, but %s does not exist\n   file: %s\n   fix: remove the reference to %s or create that ADR",
			doc.ID, rel.Label(), target, target, doc.FilePath, target),
	}
}

func asymmetryViolation(doc *adr.Document, forward, backward adr.RelationType, target string) Violation {
	return Violation{
		Check:    CheckAsymmetry,
		Relation: forward,
		Inverse:  backward,
		Source:   doc.ID,
		Target:   target,
		FilePath: doc.FilePath,
		Message: fmt.Sprintf("inconsistent %s relationship:\n   %s → %s (declares %s)\n   but %s does not declare %s %s\n   fix: add %s: %s to %s.md",
			forward.Label(), doc.ID, target, forward.Label(), target, backward.Label(), doc.ID, backward.Label(), doc.ID, target),
	}
}

func cycleViolation(cycle []string) Violation {
	return Violation{
		Check:   CheckCycle,
		Source:  cycle[0],
		Cycle:   cycle,
		Message: "dependency cycle detected:\n   " + FormatCycle(cycle),
	}
}

func missingSectionViolation(doc *adr.Document) Violation {
	return Violation{
		Check:    CheckMissingSection,
		Source:   doc.ID,
		FilePath: doc.FilePath,
		Message: fmt.Sprintf("%s has no Relationships section\n   file: %s\n   fix: add a \"## Relationships\" heading listing its dependencies",
			doc.ID, doc.FilePath),
	}
}

// FormatCycle renders a cycle closed back to its first node: A → B → C → A.
func FormatCycle(cycle []string) string {
	if len(cycle) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, cycle...), cycle[0]), " → ")
}
