// Package scope derives which clauses, appendices, and question tags apply to
// a tenant's facility set. Resolution is pure domain logic: no I/O, no side
// effects, and byte-identical output for identical inputs. Persistence belongs
// to the caller.
package scope

import (
	"recscope/internal/catalog"
)

// Result is the outcome of one scope resolution. Code and appendix order is
// rule-declaration order, so two runs over the same inputs produce identical
// slices, not just identical sets.
type Result struct {
	ApplicableRecCodes []catalog.RecCode
	RequiredAppendices []catalog.CategoryCode
	ScopeStatement     string
	Complexity         ComplexityFactors
}

// HasCode reports whether the scope includes the given REC code.
func (r *Result) HasCode(code catalog.RecCode) bool {
	for _, c := range r.ApplicableRecCodes {
		if c == code {
			return true
		}
	}
	return false
}

// RequiresAppendix reports whether the scope pulls in the given appendix.
func (r *Result) RequiresAppendix(code catalog.CategoryCode) bool {
	for _, c := range r.RequiredAppendices {
		if c == code {
			return true
		}
	}
	return false
}

// ComplexityFactors is the structured breakdown behind the overall complexity
// score. Factors are facts about the input; Overall applies the configured
// weights.
type ComplexityFactors struct {
	FacilityCount  int
	ActivityKinds  int
	ExportMarkets  bool
	DataBearing    bool
	FocusMaterials bool
	MultiSite      bool
	Overall        float64
}

// FilterResult is the question subset selected for a scope. Count always
// equals len(Questions); callers must not derive the count from anything else.
type FilterResult struct {
	Questions []catalog.Question
	Count     int
}
