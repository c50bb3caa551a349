package decision

import (
	"strings"
)

// Classifier parses sentences into decision Results. It is immutable
// and safe for concurrent use.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier from cfg.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg.clone()}, nil
}

// Default returns a classifier using DefaultConfig.
func Default() *Classifier {
	return &Classifier{cfg: DefaultConfig()}
}

// Config returns a copy of the classifier configuration.
func (c *Classifier) Config() Config {
	return c.cfg.clone()
}

// Parse classifies sentence. Rules are tried in order, each keyword of a
// rule in order, and every occurrence of that keyword left to right; the
// first occurrence that is neither part of a compound word nor negated
// decides the result.
func (c *Classifier) Parse(sentence string) Result {
	if strings.TrimSpace(sentence) == "" {
		return None
	}

	for _, rule := range c.cfg.Rules {
		for _, kw := range rule.Keywords {
			if c.hasAcceptedOccurrence(sentence, kw) {
				return Result{Level: rule.Level, IsBlocking: rule.IsBlocking}
			}
		}
	}
	return None
}

// IsBlockingDecision reports whether sentence carries a blocking decision.
func (c *Classifier) IsBlockingDecision(sentence string) bool {
	r := c.Parse(sentence)
	return r.IsDecision() && r.IsBlocking
}

// HasDecisionLanguage reports whether sentence carries any decision.
func (c *Classifier) HasDecisionLanguage(sentence string) bool {
	return c.Parse(sentence).IsDecision()
}

func (c *Classifier) hasAcceptedOccurrence(sentence, kw string) bool {
	offset := 0
	for {
		i := strings.Index(sentence[offset:], kw)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(kw)
		before, after := sentence[:start], sentence[end:]

		if !c.isCompound(before, after) && !c.isNegated(before, after) {
			return true
		}
		offset = end
	}
}

func (c *Classifier) isCompound(before, after string) bool {
	if hasAnyPrefix(after, c.cfg.CompoundSuffixes) {
		return true
	}
	if c.cfg.ModifierPrefix == "" || c.cfg.ModifierSuffix == "" {
		return false
	}
	return strings.HasSuffix(before, c.cfg.ModifierPrefix) && strings.HasPrefix(after, c.cfg.ModifierSuffix)
}

func (c *Classifier) isNegated(before, after string) bool {
	for _, neg := range c.cfg.NegationPrefixes {
		if neg != "" && strings.HasSuffix(before, neg) {
			return true
		}
	}
	return hasAnyPrefix(after, c.cfg.NegatingContinuations)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

var defaultClassifier = Default()

// Parse classifies sentence with the default configuration.
func Parse(sentence string) Result {
	return defaultClassifier.Parse(sentence)
}

// IsBlockingDecision reports whether sentence carries a blocking decision
// under the default configuration.
func IsBlockingDecision(sentence string) bool {
	return defaultClassifier.IsBlockingDecision(sentence)
}

// HasDecisionLanguage reports whether sentence carries any decision under
// the default configuration.
func HasDecisionLanguage(sentence string) bool {
	return defaultClassifier.HasDecisionLanguage(sentence)
}
