package scope

import (
	"sort"

	"recscope/internal/catalog"
	dErrors "recscope/pkg/domain-errors"
)

// FilterQuestions selects the catalog questions relevant to a resolved scope.
//
// A question is included when its category is a core clause or a required
// appendix AND at least one of its tags is in the applicable REC codes, or
// when the question is unconditionally required (baseline items with no REC
// gating). Output order is clause sequence then question sequence, so
// repeated runs over the same scope and catalog version are diffable.
//
// If the scope references a REC code or appendix the catalog version does not
// declare, filtering fails closed with CatalogVersionMismatch rather than
// silently shrinking the question set.
func FilterQuestions(scope *Result, version *catalog.StandardVersion) (*FilterResult, error) {
	if scope == nil {
		return nil, dErrors.New(dErrors.CodeInvalidScopeInput, "scope is required")
	}
	if version == nil {
		return nil, dErrors.New(dErrors.CodeInvalidScopeInput, "catalog version is required")
	}
	for _, code := range scope.ApplicableRecCodes {
		if !version.Declares(code) {
			return nil, dErrors.Newf(dErrors.CodeCatalogMismatch,
				"scope references REC code %s not declared by catalog version %s", code, version.ID)
		}
	}
	clausesByCode := make(map[catalog.CategoryCode]bool, len(version.Clauses))
	for _, clause := range version.Clauses {
		clausesByCode[clause.Code] = true
	}
	for _, app := range scope.RequiredAppendices {
		if !clausesByCode[app] {
			return nil, dErrors.Newf(dErrors.CodeCatalogMismatch,
				"scope requires appendix %s not present in catalog version %s", app, version.ID)
		}
	}

	eligible := make(map[catalog.CategoryCode]bool)
	for _, core := range catalog.CoreClauses() {
		eligible[core] = true
	}
	for _, app := range scope.RequiredAppendices {
		eligible[app] = true
	}
	applicable := make(map[catalog.RecCode]bool, len(scope.ApplicableRecCodes))
	for _, code := range scope.ApplicableRecCodes {
		applicable[code] = true
	}

	clauses := make([]catalog.Clause, len(version.Clauses))
	copy(clauses, version.Clauses)
	sort.SliceStable(clauses, func(i, j int) bool { return clauses[i].Sequence < clauses[j].Sequence })

	var selected []catalog.Question
	for _, clause := range clauses {
		questions := make([]catalog.Question, len(clause.Questions))
		copy(questions, clause.Questions)
		sort.SliceStable(questions, func(i, j int) bool { return questions[i].Sequence < questions[j].Sequence })

		for _, q := range questions {
			if q.Required {
				selected = append(selected, q)
				continue
			}
			if !eligible[q.CategoryCode] {
				continue
			}
			for _, tag := range q.Tags {
				if applicable[tag] {
					selected = append(selected, q)
					break
				}
			}
		}
	}

	return &FilterResult{Questions: selected, Count: len(selected)}, nil
}
