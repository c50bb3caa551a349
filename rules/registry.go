package rules

import (
	"slices"
	"strconv"
	"sync"

	"github.com/c360studio/archgov/adrerr"
	"github.com/c360studio/archgov/ruleid"
)

// Tier ranges of ADR numbers.
const (
	ConstitutionalMin, ConstitutionalMax = 1, 8
	StructureMin, StructureMax           = 120, 124
	RuntimeMin, RuntimeMax               = 201, 240
	GovernanceMin, GovernanceMax         = 900, 999
)

// Registry maps ADR numbers to RuleSets.
// Reads are safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	sets map[int]*RuleSet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[int]*RuleSet)}
}

// Register adds rs. Registering the same ADR number twice is an
// AlreadyExists error.
func (r *Registry) Register(rs *RuleSet) error {
	if rs == nil {
		return adrerr.InvalidArgument("rules.Register", "rule set must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.sets[rs.Adr()]; dup {
		return adrerr.AlreadyExists("rules.Register", rs.AdrID(), "rule set already registered")
	}
	r.sets[rs.Adr()] = rs
	return nil
}

// Get returns the rule set for adr, or nil.
func (r *Registry) Get(adr int) *RuleSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sets[adr]
}

// GetID returns the rule set for an id string such as "ADR-907",
// "adr907" or "0907". It returns nil for unknown or malformed ids.
func (r *Registry) GetID(id string) *RuleSet {
	n, err := ruleid.ParseAdrNumber(id)
	if err != nil {
		return nil
	}
	return r.Get(n)
}

// GetStrict returns the rule set for adr or a NotFound error naming adr
// and listing the registered numbers.
func (r *Registry) GetStrict(adr int) (*RuleSet, error) {
	if rs := r.Get(adr); rs != nil {
		return rs, nil
	}
	return nil, adrerr.NotFound("rules.GetStrict", strconv.Itoa(adr),
		"no rule set defined for ADR "+strconv.Itoa(adr), r.knownIDs())
}

// GetStrictID is GetStrict for an id string. Blank ids fail with
// EmptyInput and unparsable ids with InvalidFormat.
func (r *Registry) GetStrictID(id string) (*RuleSet, error) {
	n, err := ruleid.ParseAdrNumber(id)
	if err != nil {
		return nil, err
	}
	if rs := r.Get(n); rs != nil {
		return rs, nil
	}
	return nil, adrerr.NotFound("rules.GetStrictID", id,
		"no rule set defined for "+id, r.knownIDs())
}

// Numbers returns the registered ADR numbers in ascending order.
func (r *Registry) Numbers() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, 0, len(r.sets))
	for n := range r.sets {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// All returns every rule set ordered by ADR number.
func (r *Registry) All() []*RuleSet {
	return r.filter(func(*RuleSet) bool { return true })
}

// Len returns the number of registered rule sets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}

// BySeverity returns rule sets with at least one Rule of severity s.
func (r *Registry) BySeverity(s Severity) []*RuleSet {
	return r.filter(func(rs *RuleSet) bool { return rs.HasSeverity(s) })
}

// ByScope returns rule sets with at least one Rule of scope s.
func (r *Registry) ByScope(s Scope) []*RuleSet {
	return r.filter(func(rs *RuleSet) bool { return rs.HasScope(s) })
}

// InRange returns rule sets with lo <= ADR number <= hi.
func (r *Registry) InRange(lo, hi int) []*RuleSet {
	return r.filter(func(rs *RuleSet) bool { return rs.Adr() >= lo && rs.Adr() <= hi })
}

// Constitutional returns ADR-001 through ADR-008.
func (r *Registry) Constitutional() []*RuleSet {
	return r.InRange(ConstitutionalMin, ConstitutionalMax)
}

// Structure returns ADR-120 through ADR-124.
func (r *Registry) Structure() []*RuleSet { return r.InRange(StructureMin, StructureMax) }

// Runtime returns ADR-201 through ADR-240.
func (r *Registry) Runtime() []*RuleSet { return r.InRange(RuntimeMin, RuntimeMax) }

// Governance returns ADR-900 through ADR-999.
func (r *Registry) Governance() []*RuleSet { return r.InRange(GovernanceMin, GovernanceMax) }

// ValidateAll runs ValidateCompleteness on every rule set and returns the
// first failure in ADR order.
func (r *Registry) ValidateAll() error {
	for _, rs := range r.All() {
		if err := rs.ValidateCompleteness(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) filter(keep func(*RuleSet) bool) []*RuleSet {
	var out []*RuleSet
	for _, n := range r.Numbers() {
		if rs := r.Get(n); rs != nil && keep(rs) {
			out = append(out, rs)
		}
	}
	return out
}

// knownIDs lists the registered documents as ADR-nnn identifiers.
func (r *Registry) knownIDs() []string {
	nums := r.Numbers()
	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = ruleid.FormatAdr(n)
	}
	return out
}
