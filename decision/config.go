package decision

import (
	"fmt"
	"slices"
)

// Rule maps a set of keywords to a decision level.
type Rule struct {
	Level      Level    `yaml:"level" json:"level"`
	Keywords   []string `yaml:"keywords" json:"keywords"`
	IsBlocking bool     `yaml:"blocking" json:"blocking"`
}

// Config is the keyword table and the filters applied to each match.
// Rule order matters: the first rule with a surviving match wins.
type Config struct {
	Rules []Rule `yaml:"rules" json:"rules"`

	// CompoundSuffixes reject a keyword directly followed by one of them.
	CompoundSuffixes []string `yaml:"compound_suffixes" json:"compound_suffixes"`

	// ModifierPrefix and ModifierSuffix reject a keyword that is wrapped
	// by both, e.g. 可 + keyword + 性.
	ModifierPrefix string `yaml:"modifier_prefix" json:"modifier_prefix"`
	ModifierSuffix string `yaml:"modifier_suffix" json:"modifier_suffix"`

	// NegationPrefixes reject a keyword directly preceded by one of them.
	NegationPrefixes []string `yaml:"negation_prefixes" json:"negation_prefixes"`

	// NegatingContinuations reject a keyword directly followed by one of them.
	NegatingContinuations []string `yaml:"negating_continuations" json:"negating_continuations"`
}

// DefaultConfig returns the canonical Chinese keyword table.
//
// The suffix and negation sets are hand-tuned against the governance
// corpus and are kept exactly as is; expanding them changes which
// statements block.
func DefaultConfig() Config {
	return Config{
		Rules: []Rule{
			{Level: LevelMust, Keywords: []string{"必须", "强制", "需要"}, IsBlocking: true},
			{Level: LevelMustNot, Keywords: []string{"禁止", "不得", "不允许"}, IsBlocking: true},
			{Level: LevelShould, Keywords: []string{"应该", "建议", "推荐"}, IsBlocking: false},
		},
		CompoundSuffixes:      []string{"性", "者", "度"},
		ModifierPrefix:        "可",
		ModifierSuffix:        "性",
		NegationPrefixes:      []string{"不"},
		NegatingContinuations: []string{"避免", "不要"},
	}
}

// Validate checks that every rule has a known level and at least one
// non-empty keyword.
func (c Config) Validate() error {
	if len(c.Rules) == 0 {
		return fmt.Errorf("decision config has no rules")
	}
	for i, r := range c.Rules {
		if !r.Level.Valid() {
			return fmt.Errorf("rule %d: unknown level %q", i, r.Level)
		}
		if len(r.Keywords) == 0 || slices.Contains(r.Keywords, "") {
			return fmt.Errorf("rule %d (%s): keywords must be non-empty", i, r.Level)
		}
	}
	return nil
}

// clone copies every slice so a Classifier never shares state with its caller.
func (c Config) clone() Config {
	out := c
	out.Rules = make([]Rule, len(c.Rules))
	for i, r := range c.Rules {
		r.Keywords = slices.Clone(r.Keywords)
		out.Rules[i] = r
	}
	out.CompoundSuffixes = slices.Clone(c.CompoundSuffixes)
	out.NegationPrefixes = slices.Clone(c.NegationPrefixes)
	out.NegatingContinuations = slices.Clone(c.NegatingContinuations)
	return out
}
