// Package ruleid implements the hierarchical ADR → Rule → Clause identifier.
//
// A RuleID is a comparable value: use it directly as a map key or compare
// with ==. The canonical string form is ADR-007_2 for a Rule and
// ADR-007_2_1 for a Clause; parsing also accepts the legacy dotted form
// (ADR-007.2.1), a bare ADR prefix and unprefixed numbers (7_2_1).
package ruleid

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/c360studio/archgov/adrerr"
)

// RuleID identifies a Rule or a Clause inside an ADR.
// The zero value is not a valid identifier; use Rule or Clause.
type RuleID struct {
	adr    int
	rule   int
	clause int // 0 means Rule-level
}

// Rule creates a Rule-level identifier. Both numbers must be positive.
func Rule(adr, rule int) (RuleID, error) {
	if adr <= 0 {
		return RuleID{}, adrerr.InvalidArgument("ruleid.Rule", fmt.Sprintf("adr number must be positive, got %d", adr))
	}
	if rule <= 0 {
		return RuleID{}, adrerr.InvalidArgument("ruleid.Rule", fmt.Sprintf("rule number must be positive, got %d", rule))
	}
	return RuleID{adr: adr, rule: rule}, nil
}

// Clause creates a Clause-level identifier. All numbers must be positive.
func Clause(adr, rule, clause int) (RuleID, error) {
	id, err := Rule(adr, rule)
	if err != nil {
		return RuleID{}, err
	}
	if clause <= 0 {
		return RuleID{}, adrerr.InvalidArgument("ruleid.Clause", fmt.Sprintf("clause number must be positive, got %d", clause))
	}
	id.clause = clause
	return id, nil
}

// MustRule is like Rule but panics on invalid input.
// Intended for hardcoded identifiers in catalogs and tests.
func MustRule(adr, rule int) RuleID {
	id, err := Rule(adr, rule)
	if err != nil {
		panic(err)
	}
	return id
}

// MustClause is like Clause but panics on invalid input.
func MustClause(adr, rule, clause int) RuleID {
	id, err := Clause(adr, rule, clause)
	if err != nil {
		panic(err)
	}
	return id
}

// Adr returns the ADR number.
func (id RuleID) Adr() int { return id.adr }

// RuleNumber returns the Rule number.
func (id RuleID) RuleNumber() int { return id.rule }

// ClauseNumber returns the Clause number and whether one is present.
func (id RuleID) ClauseNumber() (int, bool) {
	return id.clause, id.clause > 0
}

// IsRule reports whether id is Rule-level.
func (id RuleID) IsRule() bool { return id.clause == 0 }

// IsClause reports whether id is Clause-level.
func (id RuleID) IsClause() bool { return id.clause > 0 }

// IsZero reports whether id is the zero value.
func (id RuleID) IsZero() bool { return id == RuleID{} }

// Parent returns the Rule-level identifier that owns a Clause.
// For a Rule-level id it returns id itself.
func (id RuleID) Parent() RuleID {
	return RuleID{adr: id.adr, rule: id.rule}
}

// AdrID returns the document identifier of the owning ADR, e.g. "ADR-907".
func (id RuleID) AdrID() string {
	return FormatAdr(id.adr)
}

// String renders the canonical form.
func (id RuleID) String() string {
	if id.IsClause() {
		return fmt.Sprintf("ADR-%03d_%d_%d", id.adr, id.rule, id.clause)
	}
	return fmt.Sprintf("ADR-%03d_%d", id.adr, id.rule)
}

// Compare orders by ADR, then Rule, then Clause with an absent Clause first,
// so a Rule sorts immediately before its own Clauses.
func (id RuleID) Compare(other RuleID) int {
	if c := cmp.Compare(id.adr, other.adr); c != 0 {
		return c
	}
	if c := cmp.Compare(id.rule, other.rule); c != 0 {
		return c
	}
	return cmp.Compare(id.clause, other.clause)
}

// Less reports whether id sorts before other.
func (id RuleID) Less(other RuleID) bool {
	return id.Compare(other) < 0
}

// Sort orders ids in place.
func Sort(ids []RuleID) {
	slices.SortFunc(ids, RuleID.Compare)
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (id RuleID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with strict parsing.
func (id *RuleID) UnmarshalText(text []byte) error {
	parsed, err := ParseStrict(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// FormatAdr renders an ADR number as a document identifier with at least three digits.
func FormatAdr(n int) string {
	return fmt.Sprintf("ADR-%03d", n)
}

// prefixPattern matches an optional leading ADR- or ADR, case-insensitively.
var prefixPattern = regexp.MustCompile(`(?i)^adr-?`)

// TryParse parses s and reports success. It never fails loudly.
func TryParse(s string) (RuleID, bool) {
	id, err := parse(s)
	return id, err == nil
}

// ParseStrict parses s, returning an EmptyInput error for blank input and
// an InvalidFormat error naming s for anything else that does not parse.
func ParseStrict(s string) (RuleID, error) {
	if strings.TrimSpace(s) == "" {
		return RuleID{}, adrerr.EmptyInput("ruleid.ParseStrict", "rule id must not be blank")
	}
	id, err := parse(s)
	if err != nil {
		return RuleID{}, adrerr.InvalidFormat("ruleid.ParseStrict", s,
			"invalid rule id; expected ADR-001_1, ADR-001_1_1, ADR-001.1, ADR-001.1.1, 001_1 or 001_1_1")
	}
	return id, nil
}

// MustParse is like ParseStrict but panics on error.
func MustParse(s string) RuleID {
	id, err := ParseStrict(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValid reports whether s parses as a RuleID.
func IsValid(s string) bool {
	_, ok := TryParse(s)
	return ok
}

func parse(s string) (RuleID, error) {
	body := prefixPattern.ReplaceAllString(strings.TrimSpace(s), "")
	if body == "" {
		return RuleID{}, errSyntax
	}

	sep := "_"
	if !strings.Contains(body, "_") {
		sep = "."
	}
	parts := strings.Split(body, sep)
	if len(parts) != 2 && len(parts) != 3 {
		return RuleID{}, errSyntax
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := parseNumber(p)
		if err != nil {
			return RuleID{}, err
		}
		nums[i] = n
	}

	if len(nums) == 3 {
		return Clause(nums[0], nums[1], nums[2])
	}
	return Rule(nums[0], nums[1])
}

var errSyntax = adrerr.InvalidFormat("ruleid.parse", "", "malformed rule id")

// parseNumber accepts only ASCII digits, so signs and inner spaces are rejected.
func parseNumber(p string) (int, error) {
	if p == "" {
		return 0, errSyntax
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return 0, errSyntax
		}
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return 0, errSyntax
	}
	return n, nil
}

// ParseAdrNumber parses an ADR reference such as "ADR-907", "adr907",
// "0907" or "907". It returns an EmptyInput or InvalidFormat error.
func ParseAdrNumber(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, adrerr.EmptyInput("ruleid.ParseAdrNumber", "adr id must not be blank")
	}
	body := prefixPattern.ReplaceAllString(strings.TrimSpace(s), "")
	n, err := parseNumber(body)
	if err != nil || n <= 0 {
		return 0, adrerr.InvalidFormat("ruleid.ParseAdrNumber", s, "invalid adr id; expected ADR-001, ADR001 or 001")
	}
	return n, nil
}
