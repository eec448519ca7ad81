// Package catalog holds the versioned question bank: standard versions,
// clauses, and questions tagged with applicability codes. A published version
// is immutable; scope resolution and filtering treat it as read-only input.
package catalog

import (
	dErrors "recscope/pkg/domain-errors"
)

// RecCode tags a question with one required-evaluation-criterion category.
// Questions are gated by REC code membership during filtering.
type RecCode string

// CategoryCode names the clause or appendix a question belongs to.
type CategoryCode string

// Core clauses are always in scope; appendices are gated by operational
// attributes resolved from the intake.
const (
	ClauseCR1 CategoryCode = "CR1"
	ClauseCR2 CategoryCode = "CR2"
	ClauseCR3 CategoryCode = "CR3"
	ClauseCR4 CategoryCode = "CR4"
	ClauseCR5 CategoryCode = "CR5"

	AppendixA CategoryCode = "AppA"
	AppendixB CategoryCode = "AppB"
)

// CoreClauses returns the clause codes included in every scope, in clause
// order.
func CoreClauses() []CategoryCode {
	return []CategoryCode{ClauseCR1, ClauseCR2, ClauseCR3, ClauseCR4, ClauseCR5}
}

// IsAppendix reports whether the code names a supplementary requirement set
// rather than a core clause.
func (c CategoryCode) IsAppendix() bool {
	return c == AppendixA || c == AppendixB
}

// StandardVersion is one immutable published version of the standard.
type StandardVersion struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	RecCodes []RecCode `yaml:"rec_codes" json:"rec_codes"`
	Clauses  []Clause  `yaml:"clauses" json:"clauses"`
}

// Clause groups questions under one clause or appendix code. Sequence fixes
// the clause's position for deterministic question ordering.
type Clause struct {
	Code      CategoryCode `yaml:"code" json:"code"`
	Title     string       `yaml:"title" json:"title"`
	Sequence  int          `yaml:"sequence" json:"sequence"`
	Questions []Question   `yaml:"questions" json:"questions"`
}

// Question is one assessment item. Required questions bypass REC gating
// (baseline items such as legal-compliance checks). EvidenceRequired marks
// questions that cannot be answered without an evidence reference.
type Question struct {
	ID               string       `yaml:"id" json:"id"`
	Sequence         int          `yaml:"sequence" json:"sequence"`
	Text             string       `yaml:"text" json:"text"`
	CategoryCode     CategoryCode `yaml:"category_code" json:"category_code"`
	Tags             []RecCode    `yaml:"tags" json:"tags"`
	Required         bool         `yaml:"required" json:"required"`
	EvidenceRequired bool         `yaml:"evidence_required" json:"evidence_required"`
	EvidenceRef      string       `yaml:"evidence_ref" json:"evidence_ref"`
}

// Declares reports whether the version declares the given REC code.
func (v *StandardVersion) Declares(code RecCode) bool {
	for _, c := range v.RecCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Questions returns all questions across clauses, in clause sequence then
// question sequence order. The slice is freshly allocated on each call.
func (v *StandardVersion) AllQuestions() []Question {
	var out []Question
	for _, clause := range v.Clauses {
		out = append(out, clause.Questions...)
	}
	return out
}

// Validate enforces catalog invariants: non-empty identity, unique clause
// codes and question ids, and every question either required or carrying at
// least one tag declared by this version.
func (v *StandardVersion) Validate() error {
	if v.ID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "standard version id is required")
	}
	if v.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "standard version name is required")
	}
	if len(v.Clauses) == 0 {
		return dErrors.Newf(dErrors.CodeInvalidInput, "standard version %s declares no clauses", v.ID)
	}

	seenClauses := make(map[CategoryCode]bool, len(v.Clauses))
	seenQuestions := make(map[string]bool)
	for _, clause := range v.Clauses {
		if clause.Code == "" {
			return dErrors.Newf(dErrors.CodeInvalidInput, "clause without code in version %s", v.ID)
		}
		if seenClauses[clause.Code] {
			return dErrors.Newf(dErrors.CodeInvalidInput, "duplicate clause code %s", clause.Code)
		}
		seenClauses[clause.Code] = true

		for _, q := range clause.Questions {
			if q.ID == "" {
				return dErrors.Newf(dErrors.CodeInvalidInput, "question without id under clause %s", clause.Code)
			}
			if seenQuestions[q.ID] {
				return dErrors.Newf(dErrors.CodeInvalidInput, "duplicate question id %s", q.ID)
			}
			seenQuestions[q.ID] = true
			if q.CategoryCode != "" && q.CategoryCode != clause.Code {
				return dErrors.Newf(dErrors.CodeInvalidInput,
					"question %s category %s does not match clause %s", q.ID, q.CategoryCode, clause.Code)
			}
			if !q.Required && len(q.Tags) == 0 {
				return dErrors.Newf(dErrors.CodeInvalidInput,
					"question %s has no tags and is not marked required", q.ID)
			}
			for _, tag := range q.Tags {
				if !v.Declares(tag) {
					return dErrors.Newf(dErrors.CodeInvalidInput,
						"question %s references undeclared REC code %s", q.ID, tag)
				}
			}
		}
	}
	return nil
}

// normalize fills question category codes from their clause and sorts nothing:
// clause files are authored in order and that order is part of the contract.
func (v *StandardVersion) normalize() {
	for ci := range v.Clauses {
		clause := &v.Clauses[ci]
		for qi := range clause.Questions {
			if clause.Questions[qi].CategoryCode == "" {
				clause.Questions[qi].CategoryCode = clause.Code
			}
			if clause.Questions[qi].Sequence == 0 {
				clause.Questions[qi].Sequence = qi + 1
			}
		}
		if clause.Sequence == 0 {
			clause.Sequence = ci + 1
		}
	}
}
