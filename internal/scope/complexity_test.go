package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recscope/internal/facility"
	id "recscope/pkg/domain"
)

func TestComplexity_WeightsAreConfiguration(t *testing.T) {
	tenantID := id.NewTenantID()
	in := testIntake(tenantID, 1)

	f := baselineFacility(tenantID, "Plant 1")
	f.DataBearingHandling = true

	// Two facilities worth of activity kinds: COLLECTION, SORTING.
	defaultResolver := NewResolver(DefaultWeights())
	result, err := defaultResolver.Resolve(in, []*facility.Attributes{f})
	require.NoError(t, err)

	want := 1.0*1 + 0.5*2 + 3.0 // facility count + activity kinds + data-bearing
	assert.InDelta(t, want, result.Complexity.Overall, 1e-9)

	// Zeroing a weight disables that factor without touching rule logic.
	muted := DefaultWeights()
	muted.DataBearing = 0
	mutedResolver := NewResolver(muted)
	result, err = mutedResolver.Resolve(in, []*facility.Attributes{f})
	require.NoError(t, err)
	assert.InDelta(t, want-3.0, result.Complexity.Overall, 1e-9)

	// The structured breakdown reports facts regardless of weights.
	assert.True(t, result.Complexity.DataBearing)
	assert.Equal(t, 1, result.Complexity.FacilityCount)
	assert.Equal(t, 2, result.Complexity.ActivityKinds)
}

func TestComplexity_FacilityExportsCountAsExportMarkets(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())

	f := baselineFacility(tenantID, "Plant 1")
	f.ExportMarkets = true

	result, err := r.Resolve(testIntake(tenantID, 1), []*facility.Attributes{f})
	require.NoError(t, err)
	assert.True(t, result.Complexity.ExportMarkets)
}
