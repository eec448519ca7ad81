package intake

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "recscope/pkg/domain"
	dErrors "recscope/pkg/domain-errors"
	"recscope/pkg/platform/sentinel"
)

func draftIntake() *Attributes {
	return &Attributes{
		ID:               id.NewIntakeID(),
		TenantID:         id.NewTenantID(),
		OrganizationName: "Acme Recycling",
		StructureType:    StructureSingle,
		TotalFacilities:  1,
		Status:           StatusDraft,
		CreatedAt:        time.Now(),
	}
}

func TestSubmit(t *testing.T) {
	t.Run("draft submits once", func(t *testing.T) {
		a := draftIntake()
		now := time.Now()
		require.NoError(t, a.Submit(now))
		assert.Equal(t, StatusSubmitted, a.Status)
		require.NotNil(t, a.SubmittedAt)
		assert.Equal(t, now, *a.SubmittedAt)
	})

	t.Run("double submit rejected", func(t *testing.T) {
		a := draftIntake()
		require.NoError(t, a.Submit(time.Now()))
		err := a.Submit(time.Now())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("invalid intake cannot submit", func(t *testing.T) {
		a := draftIntake()
		a.OrganizationName = ""
		err := a.Submit(time.Now())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestValidate(t *testing.T) {
	t.Run("single structure requires one facility", func(t *testing.T) {
		a := draftIntake()
		a.TotalFacilities = 3
		err := a.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("multi-site allows multiple facilities", func(t *testing.T) {
		a := draftIntake()
		a.StructureType = StructureMultiSite
		a.TotalFacilities = 3
		require.NoError(t, a.Validate())
	})
}

func TestParseStructureType(t *testing.T) {
	st, err := ParseStructureType("campus")
	require.NoError(t, err)
	assert.Equal(t, StructureCampus, st)

	_, err = ParseStructureType("franchise")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestInMemoryStore_SubmittedIsImmutable(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	a := draftIntake()
	require.NoError(t, store.Save(ctx, a))
	require.NoError(t, a.Submit(time.Now()))
	require.NoError(t, store.Save(ctx, a))

	// Any further write against the submitted version is a conflict.
	a.TotalFacilities = 2
	require.ErrorIs(t, store.Save(ctx, a), sentinel.ErrConflict)

	found, err := store.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.TotalFacilities)
}
