package calc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldlab/ensemble/internal/pdb"
)

var testDomains = []Domain{
	{Name: "head", Ranges: []pdb.ResidueRange{{Start: 1, End: 2}}},
	{Name: "tail", Ranges: []pdb.ResidueRange{{Start: 3, End: 4}}},
}

func TestReferenceDeviationShape(t *testing.T) {
	structs := testEnsemble()
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref_rmsd.csv")
	domPath := filepath.Join(dir, "domains.csv")

	table, err := ReferenceDeviation(structs, testDomains, refPath, domPath)
	require.NoError(t, err)

	// overall + one column per domain, one row per structure.
	require.Equal(t, []string{"overall", "head", "tail"}, table.Columns)
	require.Len(t, table.Rows, len(structs))

	// The reference compares to itself with zero deviation.
	for _, v := range table.Rows[0] {
		assert.Zero(t, v)
	}
	// Non-reference members deviate.
	assert.Greater(t, table.Rows[1][0], 0.0)
	assert.Greater(t, table.Rows[2][0], 0.0)

	require.FileExists(t, refPath)
	require.FileExists(t, domPath)
}

func TestReferenceDeviationUsesCache(t *testing.T) {
	structs := testEnsemble()
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref_rmsd.csv")
	domPath := filepath.Join(dir, "domains.csv")

	first, err := ReferenceDeviation(structs, testDomains, refPath, domPath)
	require.NoError(t, err)

	// Same ensemble size, different coordinates: a fresh run would produce
	// different numbers, the cached tables are returned instead.
	perturbed := testEnsemble()
	for _, s := range perturbed[1:] {
		for i := range s.Atoms {
			s.Atoms[i].Coords[1] += float64(i * i)
		}
	}
	second, err := ReferenceDeviation(perturbed, testDomains, refPath, domPath)
	require.NoError(t, err)

	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestReferenceDeviationInvalidatesOnEnsembleChange(t *testing.T) {
	structs := testEnsemble()
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref_rmsd.csv")
	domPath := filepath.Join(dir, "domains.csv")

	_, err := ReferenceDeviation(structs, testDomains, refPath, domPath)
	require.NoError(t, err)

	// Dropping a member changes N; the stale tables must be rebuilt.
	table, err := ReferenceDeviation(structs[:2], testDomains, refPath, domPath)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}
