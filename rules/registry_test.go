package rules

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/c360studio/archgov/adrerr"
	"github.com/c360studio/archgov/decision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)
	return reg
}

func TestDefaultRegistry_Catalog(t *testing.T) {
	reg := testRegistry(t)

	assert.Equal(t, []int{1, 2, 3, 120, 124, 201, 240, 900, 907}, reg.Numbers())
	require.NoError(t, reg.ValidateAll())

	adr907 := reg.Get(907)
	require.NotNil(t, adr907)
	assert.Equal(t, "ArchitectureTests 执法治理体系", adr907.Title())
	assert.Equal(t, 4, adr907.RuleCount())

	r, ok := adr907.Rule(3)
	require.True(t, ok)
	assert.Equal(t, "最小断言语义规范", r.Summary)
	assert.Equal(t, SeverityGovernance, r.Severity)
	assert.Equal(t, ScopeTest, r.Scope)

	adr002 := reg.Get(2)
	require.NotNil(t, adr002)
	r, ok = adr002.Rule(1)
	require.True(t, ok)
	assert.Equal(t, decision.LevelMustNot, r.Decision)
}

func TestRegistry_GetVersusGetStrict(t *testing.T) {
	reg := testRegistry(t)

	assert.Nil(t, reg.Get(999))

	_, err := reg.GetStrict(999)
	require.Error(t, err)
	assert.ErrorIs(t, err, adrerr.ErrNotFound)

	var e *adrerr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "999", e.Input)
	assert.Equal(t, []string{"ADR-001", "ADR-002", "ADR-003", "ADR-120", "ADR-124", "ADR-201", "ADR-240", "ADR-900", "ADR-907"}, e.Known)
	assert.Contains(t, err.Error(), "999")
	assert.Contains(t, err.Error(), "ADR-907")

	rs, err := reg.GetStrict(907)
	require.NoError(t, err)
	assert.Equal(t, 907, rs.Adr())
}

func TestRegistry_StringLookups(t *testing.T) {
	reg := testRegistry(t)

	for _, id := range []string{"ADR-907", "adr-907", "ADR907", "0907", "907", " ADR-0907 "} {
		rs := reg.GetID(id)
		require.NotNil(t, rs, id)
		assert.Equal(t, 907, rs.Adr())

		strict, err := reg.GetStrictID(id)
		require.NoError(t, err, id)
		assert.Same(t, rs, strict)
	}

	assert.Nil(t, reg.GetID("ADR-x"))
	assert.Nil(t, reg.GetID(""))
	assert.Nil(t, reg.GetID("ADR-999"))

	_, err := reg.GetStrictID("  ")
	assert.ErrorIs(t, err, adrerr.ErrEmptyInput)
	_, err = reg.GetStrictID("ADR-9x")
	assert.ErrorIs(t, err, adrerr.ErrInvalidFormat)
	_, err = reg.GetStrictID("ADR-999")
	assert.ErrorIs(t, err, adrerr.ErrNotFound)
	assert.Contains(t, err.Error(), "ADR-999")
}

func TestRegistry_Filters(t *testing.T) {
	reg := testRegistry(t)

	numbers := func(sets []*RuleSet) []int {
		out := make([]int, len(sets))
		for i, rs := range sets {
			out[i] = rs.Adr()
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3}, numbers(reg.Constitutional()))
	assert.Equal(t, []int{120, 124}, numbers(reg.Structure()))
	assert.Equal(t, []int{201, 240}, numbers(reg.Runtime()))
	assert.Equal(t, []int{900, 907}, numbers(reg.Governance()))
	assert.Equal(t, []int{900, 907}, numbers(reg.BySeverity(SeverityGovernance)))
	assert.Equal(t, []int{120, 201}, numbers(reg.BySeverity(SeverityTechnical)))
	assert.Equal(t, []int{124, 240}, numbers(reg.ByScope(ScopeType)))
	assert.Empty(t, reg.ByScope(ScopeDocumentation))
	assert.Equal(t, 9, reg.Len())
	assert.Len(t, reg.All(), 9)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	rs, err := NewRuleSet(10, "")
	require.NoError(t, err)
	require.NoError(t, reg.Register(rs))

	err = reg.Register(rs)
	assert.ErrorIs(t, err, adrerr.ErrAlreadyExists)
	assert.ErrorIs(t, reg.Register(nil), adrerr.ErrInvalidArgument)
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "adr: [1"},
		{"bad adr", "adr: 0\n"},
		{"bad severity", "adr: 1\nrules:\n  - rule: 1\n    summary: s\n    severity: cosmic\n    scope: module\n"},
		{"bad decision", "adr: 1\nrules:\n  - rule: 1\n    summary: s\n    decision: may\n    severity: technical\n    scope: module\n"},
		{"incomplete", "adr: 1\nrules:\n  - rule: 1\n    summary: s\n    severity: technical\n    scope: module\n"},
		{"bad execution", "adr: 1\nrules:\n  - rule: 1\n    summary: s\n    severity: technical\n    scope: module\n    clauses:\n      - clause: 1\n        condition: c\n        enforcement: e\n        execution: vibes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"adr.yaml": {Data: []byte(tt.data)}}
			assert.Error(t, LoadCatalog(NewRegistry(), fsys))
		})
	}
}

func TestLoadCatalog_DuplicateAcrossFiles(t *testing.T) {
	doc := "adr: 5\nrules:\n  - rule: 1\n    summary: s\n    severity: technical\n    scope: module\n    clauses:\n      - clause: 1\n        condition: c\n        enforcement: e\n"
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(doc)},
		"b.yaml": {Data: []byte(doc)},
	}

	err := LoadCatalog(NewRegistry(), fsys)
	assert.ErrorIs(t, err, adrerr.ErrAlreadyExists)
}

func TestIndex(t *testing.T) {
	idx := NewIndex(testRegistry(t))

	r, ok := idx.Rule("ADR-907_3")
	require.True(t, ok)
	assert.Equal(t, "最小断言语义规范", r.Summary)

	c, ok := idx.Clause("907.3.2")
	require.True(t, ok)
	assert.Equal(t, "每个测试方法只能映射一个ADR子规则", c.Condition)

	assert.True(t, idx.RuleExists("ADR-001_1"))
	assert.False(t, idx.RuleExists("ADR-001_1_1"), "clause id is not a rule")
	assert.False(t, idx.ClauseExists("ADR-001_1"), "rule id is not a clause")
	assert.True(t, idx.ClauseExists("ADR-001_1_3"))
	assert.False(t, idx.ClauseExists("ADR-999_1_1"))
	assert.False(t, idx.RuleExists("garbage"))

	assert.Len(t, idx.RulesOf(1), 3)
	assert.Len(t, idx.ClausesOf(1), 7)
	assert.Nil(t, idx.RulesOf(999))
	assert.Len(t, idx.ClausesByRule("ADR-907_2"), 3)
	assert.Nil(t, idx.ClausesByRule("ADR-907_2_1"))
	assert.NotEmpty(t, idx.AllClauses())
}

func TestGlobal_BuildsOnce(t *testing.T) {
	ResetGlobal()
	t.Cleanup(ResetGlobal)

	var wg sync.WaitGroup
	got := make([]*Registry, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Global()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, reg := range got {
		assert.Same(t, got[0], reg)
	}
	assert.NotNil(t, Global().Get(1))
}

func TestInitGlobal(t *testing.T) {
	ResetGlobal()
	t.Cleanup(ResetGlobal)

	custom := NewRegistry()
	InitGlobal(custom)
	assert.Same(t, custom, Global())
}
