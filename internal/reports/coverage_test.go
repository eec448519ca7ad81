package reports_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recscope/internal/catalog"
	"recscope/internal/reports"
)

func testVersion(t *testing.T) *catalog.StandardVersion {
	t.Helper()
	version, err := catalog.LoadFile("../catalog/testdata/r2v3.yaml")
	require.NoError(t, err)
	return version
}

func TestBuildCoverage_AllDeclaredCodesCovered(t *testing.T) {
	cov, err := reports.BuildCoverage(testVersion(t))
	require.NoError(t, err)

	assert.Equal(t, "r2v3.1", cov.VersionID)
	require.Len(t, cov.Rows, 8)
	for _, row := range cov.Rows {
		assert.True(t, row.Covered, "code %s has no question coverage", row.RecCode)
		assert.Equal(t, len(row.QuestionIDs), row.Count)
		assert.Empty(t, row.ProposedAdd)
	}
}

func TestBuildCoverage_FlagsUncoveredCode(t *testing.T) {
	version := testVersion(t)
	version.RecCodes = append(version.RecCodes, "REC-NEW")

	cov, err := reports.BuildCoverage(version)
	require.NoError(t, err)

	last := cov.Rows[len(cov.Rows)-1]
	assert.Equal(t, catalog.RecCode("REC-NEW"), last.RecCode)
	assert.False(t, last.Covered)
	assert.Zero(t, last.Count)
	assert.Equal(t, "ADD_REC-NEW_QUESTION", last.ProposedAdd)
}

func TestBuildCoverage_RequiredUntaggedQuestionCoversNothing(t *testing.T) {
	cov, err := reports.BuildCoverage(testVersion(t))
	require.NoError(t, err)

	for _, row := range cov.Rows {
		assert.NotContains(t, row.QuestionIDs, "CR1-02")
	}
}

func TestBuildCoverage_ReportsEvidenceGaps(t *testing.T) {
	version := testVersion(t)
	cov, err := reports.BuildCoverage(version)
	require.NoError(t, err)

	// Questions demanding evidence without a named reference surface as gaps.
	for _, q := range version.AllQuestions() {
		if q.EvidenceRequired && q.EvidenceRef == "" {
			assert.Contains(t, cov.EvidenceGaps, q.ID)
		}
	}
}

func TestCoverage_WriteCSV(t *testing.T) {
	cov, err := reports.BuildCoverage(testVersion(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cov.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "RecCode,Covered,Count,QuestionIDs,ProposedAddIfGap", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "REC-CORE,Y,"))
}

func TestCoverage_WriteJSON(t *testing.T) {
	cov, err := reports.BuildCoverage(testVersion(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cov.WriteJSON(&buf))

	var decoded reports.Coverage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, cov.VersionID, decoded.VersionID)
	assert.Len(t, decoded.Rows, len(cov.Rows))
}
