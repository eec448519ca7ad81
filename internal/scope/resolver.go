package scope

import (
	"sort"

	"recscope/internal/catalog"
	"recscope/internal/facility"
	"recscope/internal/intake"
	dErrors "recscope/pkg/domain-errors"
)

// Resolver evaluates the applicability rule table against a tenant's intake
// and facility set. The goal is to keep the rules centralized and testable.
type Resolver struct {
	weights Weights
}

func NewResolver(weights Weights) *Resolver {
	return &Resolver{weights: weights}
}

// firedRule records one rule that matched and the facilities it matched on,
// for the scope-statement audit trace.
type firedRule struct {
	rule       applicabilityRule
	facilities []*facility.Attributes
}

// Resolve derives the scope for one assessment. It is a pure function of
// (intake, facilities): codes union across facilities, so a single facility
// with data-bearing handling makes the whole assessment data-sanitization
// aware. Preconditions: facilities non-empty and all owned by the intake's
// tenant; violation is the only error. An empty rule yield is a valid result
// (core-only scope).
func (r *Resolver) Resolve(in *intake.Attributes, facilities []*facility.Attributes) (*Result, error) {
	if in == nil {
		return nil, dErrors.New(dErrors.CodeInvalidScopeInput, "intake is required")
	}
	if len(facilities) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidScopeInput, "facilities cannot be empty")
	}
	for _, f := range facilities {
		if f.TenantID != in.TenantID {
			return nil, dErrors.Newf(dErrors.CodeInvalidScopeInput,
				"facility %s belongs to a different tenant", f.ID)
		}
	}

	// Stable facility order makes the statement independent of input order.
	ordered := make([]*facility.Attributes, len(facilities))
	copy(ordered, facilities)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID.String() < ordered[j].ID.String() })

	var (
		fired      []firedRule
		codes      []catalog.RecCode
		appendices []catalog.CategoryCode
		seenCodes  = make(map[catalog.RecCode]bool)
		seenApps   = make(map[catalog.CategoryCode]bool)
	)
	for _, rule := range applicabilityRules {
		var matched []*facility.Attributes
		for _, f := range ordered {
			if rule.Match(in, f) {
				matched = append(matched, f)
			}
		}
		if len(matched) == 0 {
			continue
		}
		fired = append(fired, firedRule{rule: rule, facilities: matched})
		for _, code := range rule.Codes {
			if !seenCodes[code] {
				seenCodes[code] = true
				codes = append(codes, code)
			}
		}
		if rule.Appendix != "" && !seenApps[rule.Appendix] {
			seenApps[rule.Appendix] = true
			appendices = append(appendices, rule.Appendix)
		}
	}

	return &Result{
		ApplicableRecCodes: codes,
		RequiredAppendices: appendices,
		ScopeStatement:     buildStatement(in, fired, len(ordered)),
		Complexity:         r.complexity(in, ordered),
	}, nil
}

// DeriveClauseFlags projects the resolver's view onto one facility as cached
// per-clause booleans. The projection is written back after a refresh and is
// never read as resolver input.
func DeriveClauseFlags(in *intake.Attributes, f *facility.Attributes) facility.ClauseFlags {
	flags := facility.ClauseFlags{CR1: true, CR2: true, CR3: true, CR4: false, CR5: false}
	for _, rule := range applicabilityRules {
		if !rule.Match(in, f) {
			continue
		}
		switch rule.Appendix {
		case catalog.AppendixA:
			flags.AppA = true
		case catalog.AppendixB:
			flags.AppB = true
		}
		for _, code := range rule.Codes {
			switch code {
			case CodeExports:
				flags.CR4 = true
			case CodeDownstream:
				flags.CR5 = true
			}
		}
	}
	return flags
}
