// Package decision classifies natural-language rule statements by strength.
//
// A Classifier matches sentences against an ordered keyword table
// (Must, MustNot, Should) and filters out compound words and negated
// phrasing before accepting a match. Its Result maps onto a three-state
// enforcement Outcome: blocked, warning or allowed.
package decision

import (
	"fmt"
	"strings"
)

// Level is the strength of a decision statement.
type Level string

// Decision levels.
const (
	LevelMust    Level = "must"
	LevelMustNot Level = "must_not"
	LevelShould  Level = "should"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelMust, LevelMustNot, LevelShould:
		return true
	}
	return false
}

// ParseLevel parses a level name case-insensitively. Accepts "must",
// "mustnot", "must_not", "must-not" and "should".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "must":
		return LevelMust, nil
	case "mustnot", "must_not", "must-not":
		return LevelMustNot, nil
	case "should":
		return LevelShould, nil
	}
	return "", fmt.Errorf("unknown decision level %q", s)
}

// Result is the classification of one sentence.
// The zero value is None.
type Result struct {
	// Level is empty when no decision language was detected.
	Level      Level `json:"level,omitempty"`
	IsBlocking bool  `json:"is_blocking"`
}

// None is the canonical "no decision" result.
var None = Result{}

// IsDecision reports whether a level was detected.
func (r Result) IsDecision() bool {
	return r.Level != ""
}

// Outcome returns the three-state enforcement outcome for r.
func (r Result) Outcome() Outcome {
	switch {
	case r.IsDecision() && r.IsBlocking:
		return OutcomeBlocked
	case r.IsDecision():
		return OutcomeWarning
	default:
		return OutcomeAllowed
	}
}

// Outcome is the enforcement posture derived from a Result.
type Outcome string

// Outcomes. Warning is the non-blocking state for advisory or uncertain
// statements; unrecognised phrasing never escalates past it.
const (
	OutcomeAllowed Outcome = "allowed"
	OutcomeWarning Outcome = "warning"
	OutcomeBlocked Outcome = "blocked"
)
