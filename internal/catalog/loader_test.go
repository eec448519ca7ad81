package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "recscope/pkg/domain-errors"
	"recscope/pkg/platform/sentinel"
)

func TestLoadFile_YAML(t *testing.T) {
	version, err := LoadFile(filepath.Join("testdata", "r2v3.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "r2v3.1", version.ID)
	assert.Len(t, version.Clauses, 7)
	assert.True(t, version.Declares("REC-DS"))
	assert.False(t, version.Declares("REC-UNKNOWN"))

	// Category codes are filled in from the owning clause.
	for _, clause := range version.Clauses {
		for _, q := range clause.Questions {
			assert.Equal(t, clause.Code, q.CategoryCode, "question %s", q.ID)
		}
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "r2v3.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *StandardVersion {
		return &StandardVersion{
			ID:       "v1",
			Name:     "Test Standard",
			RecCodes: []RecCode{"REC-CORE"},
			Clauses: []Clause{
				{
					Code:     ClauseCR1,
					Sequence: 1,
					Questions: []Question{
						{ID: "Q1", Sequence: 1, CategoryCode: ClauseCR1, Tags: []RecCode{"REC-CORE"}},
					},
				},
			},
		}
	}

	t.Run("valid version passes", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("untagged non-required question rejected", func(t *testing.T) {
		v := base()
		v.Clauses[0].Questions[0].Tags = nil
		err := v.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("required question may omit tags", func(t *testing.T) {
		v := base()
		v.Clauses[0].Questions[0].Tags = nil
		v.Clauses[0].Questions[0].Required = true
		require.NoError(t, v.Validate())
	})

	t.Run("undeclared tag rejected", func(t *testing.T) {
		v := base()
		v.Clauses[0].Questions[0].Tags = []RecCode{"REC-GHOST"}
		err := v.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("duplicate question id rejected", func(t *testing.T) {
		v := base()
		v.Clauses[0].Questions = append(v.Clauses[0].Questions, v.Clauses[0].Questions[0])
		require.Error(t, v.Validate())
	})
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	version, err := LoadFile(filepath.Join("testdata", "r2v3.yaml"))
	require.NoError(t, err)
	require.NoError(t, store.Publish(version))

	t.Run("finds published version", func(t *testing.T) {
		found, err := store.FindVersion(ctx, "r2v3.1")
		require.NoError(t, err)
		assert.Equal(t, version.Name, found.Name)
	})

	t.Run("missing version returns not found", func(t *testing.T) {
		_, err := store.FindVersion(ctx, "r2v4.0")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("republishing is rejected", func(t *testing.T) {
		require.ErrorIs(t, store.Publish(version), sentinel.ErrConflict)
	})
}
