// Package reports produces catalog coverage summaries used by standard
// maintainers to spot REC codes with no question coverage before a version is
// published.
package reports

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"recscope/internal/catalog"
)

// CoverageRow summarizes question coverage for one REC code.
type CoverageRow struct {
	RecCode     catalog.RecCode `json:"rec_code"`
	Covered     bool            `json:"covered"`
	Count       int             `json:"count"`
	QuestionIDs []string        `json:"question_ids"`
	// ProposedAdd names the follow-up item for uncovered codes; empty when
	// the code has coverage.
	ProposedAdd string `json:"proposed_add,omitempty"`
}

// Coverage is the full coverage report for one catalog version.
type Coverage struct {
	VersionID string        `json:"version_id"`
	Rows      []CoverageRow `json:"rows"`
	// EvidenceGaps lists questions that demand evidence but name no
	// evidence reference, ordered by question ID.
	EvidenceGaps []string `json:"evidence_gaps"`
}

// BuildCoverage computes coverage of every declared REC code by the version's
// questions. A required question with no tags covers nothing; it is always
// asked regardless of scope, so it cannot substitute for tagged coverage.
func BuildCoverage(version *catalog.StandardVersion) (*Coverage, error) {
	if version == nil {
		return nil, fmt.Errorf("catalog version is required")
	}

	byCode := make(map[catalog.RecCode][]string, len(version.RecCodes))
	for _, code := range version.RecCodes {
		byCode[code] = nil
	}

	var gaps []string
	for _, q := range version.AllQuestions() {
		for _, tag := range q.Tags {
			if _, declared := byCode[tag]; declared {
				byCode[tag] = append(byCode[tag], q.ID)
			}
		}
		if q.EvidenceRequired && q.EvidenceRef == "" {
			gaps = append(gaps, q.ID)
		}
	}
	sort.Strings(gaps)

	report := &Coverage{VersionID: version.ID, EvidenceGaps: gaps}
	for _, code := range version.RecCodes {
		ids := byCode[code]
		row := CoverageRow{
			RecCode:     code,
			Covered:     len(ids) > 0,
			Count:       len(ids),
			QuestionIDs: ids,
		}
		if len(ids) == 0 {
			row.ProposedAdd = fmt.Sprintf("ADD_%s_QUESTION", code)
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// WriteCSV writes the coverage table in the maintainer-facing CSV layout.
func (c *Coverage) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"RecCode", "Covered", "Count", "QuestionIDs", "ProposedAddIfGap"}); err != nil {
		return fmt.Errorf("write coverage header: %w", err)
	}
	for _, row := range c.Rows {
		covered := "N"
		if row.Covered {
			covered = "Y"
		}
		record := []string{
			string(row.RecCode),
			covered,
			strconv.Itoa(row.Count),
			strings.Join(row.QuestionIDs, ";"),
			row.ProposedAdd,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write coverage row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full report, evidence gaps included, as indented JSON.
func (c *Coverage) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
