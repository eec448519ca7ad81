package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recscope/internal/catalog"
	"recscope/internal/facility"
	"recscope/internal/intake"
	id "recscope/pkg/domain"
	dErrors "recscope/pkg/domain-errors"
)

func testIntake(tenantID id.TenantID, facilities int) *intake.Attributes {
	structure := intake.StructureSingle
	if facilities > 1 {
		structure = intake.StructureMultiSite
	}
	return &intake.Attributes{
		ID:               id.NewIntakeID(),
		TenantID:         tenantID,
		OrganizationName: "Acme Recycling",
		StructureType:    structure,
		TotalFacilities:  facilities,
		Status:           intake.StatusSubmitted,
	}
}

func baselineFacility(tenantID id.TenantID, name string) *facility.Attributes {
	return &facility.Attributes{
		ID:                   id.NewFacilityID(),
		TenantID:             tenantID,
		Name:                 name,
		ProcessingActivities: []facility.ProcessingActivity{facility.ActivityCollection, facility.ActivitySorting},
		InternalProcesses:    true,
	}
}

func TestResolve_BaselineScope(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())

	// Single facility, no data-bearing handling, no focus materials, no
	// exports: only core codes, no appendices.
	result, err := r.Resolve(testIntake(tenantID, 1), []*facility.Attributes{baselineFacility(tenantID, "Plant 1")})
	require.NoError(t, err)

	assert.Equal(t, []catalog.RecCode{CodeCore}, result.ApplicableRecCodes)
	assert.Empty(t, result.RequiredAppendices)
	assert.Contains(t, result.ScopeStatement, "Acme Recycling")
	assert.Contains(t, result.ScopeStatement, "core requirements")
}

func TestResolve_DataBearingAddsSanitizationScope(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())

	f := baselineFacility(tenantID, "Plant 1")
	f.DataBearingHandling = true

	result, err := r.Resolve(testIntake(tenantID, 1), []*facility.Attributes{f})
	require.NoError(t, err)

	assert.True(t, result.HasCode(CodeDataSanitation))
	assert.True(t, result.RequiresAppendix(catalog.AppendixA))
}

func TestResolve_UnionAcrossFacilities(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())

	// Three facilities, one with focus materials: the union includes the
	// focus-materials code even though two facilities lack it.
	plain1 := baselineFacility(tenantID, "Plant 1")
	plain2 := baselineFacility(tenantID, "Plant 2")
	fm := baselineFacility(tenantID, "Plant 3")
	fm.FocusMaterialsPresence = true

	result, err := r.Resolve(testIntake(tenantID, 3), []*facility.Attributes{plain1, plain2, fm})
	require.NoError(t, err)

	assert.True(t, result.HasCode(CodeFocusMaterials))
	assert.True(t, result.RequiresAppendix(catalog.AppendixB))
	assert.True(t, result.HasCode(CodeMultiSite))
	assert.Contains(t, result.ScopeStatement, "Plant 3")
}

func TestResolve_Preconditions(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())

	t.Run("empty facilities rejected", func(t *testing.T) {
		_, err := r.Resolve(testIntake(tenantID, 1), nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidScopeInput))
	})

	t.Run("cross-tenant facility rejected", func(t *testing.T) {
		stranger := baselineFacility(id.NewTenantID(), "Plant X")
		_, err := r.Resolve(testIntake(tenantID, 1), []*facility.Attributes{stranger})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidScopeInput))
	})
}

func TestResolve_Determinism(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())

	a := baselineFacility(tenantID, "Plant A")
	a.DataBearingHandling = true
	b := baselineFacility(tenantID, "Plant B")
	b.FocusMaterialsPresence = true
	b.ExportMarkets = true
	in := testIntake(tenantID, 2)

	first, err := r.Resolve(in, []*facility.Attributes{a, b})
	require.NoError(t, err)

	// Same inputs in reversed order: byte-identical statement, identical
	// code and appendix slices.
	second, err := r.Resolve(in, []*facility.Attributes{b, a})
	require.NoError(t, err)

	assert.Equal(t, first.ScopeStatement, second.ScopeStatement)
	assert.Equal(t, first.ApplicableRecCodes, second.ApplicableRecCodes)
	assert.Equal(t, first.RequiredAppendices, second.RequiredAppendices)
	assert.Equal(t, first.Complexity, second.Complexity)
}

func TestResolve_Monotonicity(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())
	in := testIntake(tenantID, 2)

	base := baselineFacility(tenantID, "Plant 1")
	other := baselineFacility(tenantID, "Plant 2")
	other.FocusMaterialsPresence = true

	before, err := r.Resolve(in, []*facility.Attributes{base, other})
	require.NoError(t, err)

	// Turning on data-bearing handling on one facility can only add codes,
	// never remove ones implied by the unrelated facility.
	enriched := *base
	enriched.DataBearingHandling = true
	after, err := r.Resolve(in, []*facility.Attributes{&enriched, other})
	require.NoError(t, err)

	for _, code := range before.ApplicableRecCodes {
		assert.True(t, after.HasCode(code), "code %s lost after enrichment", code)
	}
	for _, app := range before.RequiredAppendices {
		assert.True(t, after.RequiresAppendix(app), "appendix %s lost after enrichment", app)
	}
	assert.True(t, after.HasCode(CodeDataSanitation))
}

func TestResolve_IntakeLevelExportRule(t *testing.T) {
	tenantID := id.NewTenantID()
	r := NewResolver(DefaultWeights())

	in := testIntake(tenantID, 1)
	in.InternationalShipments = true

	result, err := r.Resolve(in, []*facility.Attributes{baselineFacility(tenantID, "Plant 1")})
	require.NoError(t, err)
	assert.True(t, result.HasCode(CodeExports))
}

func TestDeriveClauseFlags(t *testing.T) {
	tenantID := id.NewTenantID()
	in := testIntake(tenantID, 1)

	f := baselineFacility(tenantID, "Plant 1")
	f.DataBearingHandling = true
	f.ContractedProcesses = true

	flags := DeriveClauseFlags(in, f)
	assert.True(t, flags.CR1)
	assert.True(t, flags.AppA)
	assert.False(t, flags.AppB)
	assert.True(t, flags.CR5)
	assert.False(t, flags.CR4)
}
