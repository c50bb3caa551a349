package adr

// Category groups ADRs by numeric range.
type Category string

// Categories.
const (
	CategoryConstitutional Category = "constitutional"
	CategoryStructure      Category = "structure"
	CategoryRuntime        Category = "runtime"
	CategoryTechnical      Category = "technical"
	CategoryGovernance     Category = "governance"
)

// Categories lists categories in display order.
var Categories = []Category{
	CategoryConstitutional,
	CategoryStructure,
	CategoryRuntime,
	CategoryTechnical,
	CategoryGovernance,
}

// CategoryOf maps an ADR number to its category. 0 and anything from 400
// up are governance.
func CategoryOf(n int) Category {
	switch {
	case n >= 1 && n <= 99:
		return CategoryConstitutional
	case n >= 100 && n <= 199:
		return CategoryStructure
	case n >= 200 && n <= 299:
		return CategoryRuntime
	case n >= 300 && n <= 399:
		return CategoryTechnical
	default:
		return CategoryGovernance
	}
}

// Title returns a display heading for c.
func (c Category) Title() string {
	switch c {
	case CategoryConstitutional:
		return "Constitutional (ADR-001 ~ 099)"
	case CategoryStructure:
		return "Structure (ADR-100 ~ 199)"
	case CategoryRuntime:
		return "Runtime (ADR-200 ~ 299)"
	case CategoryTechnical:
		return "Technical (ADR-300 ~ 399)"
	case CategoryGovernance:
		return "Governance (ADR-000, ADR-400+)"
	}
	return string(c)
}
