package io

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNpyRoundTripBitIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")

	src := mat.NewDense(3, 3, []float64{
		0, 1.2345678901234567, math.Pi,
		1.2345678901234567, 0, 1e-300,
		math.Pi, 1e-300, 0,
	})
	require.NoError(t, MatToNpy(path, src))

	got, err := NpyToMat(path)
	require.NoError(t, err)

	rows, cols := got.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 3, cols)
	assert.Equal(t, src.RawMatrix().Data, got.RawMatrix().Data)
}

func TestNpyToMatMissingFile(t *testing.T) {
	_, err := NpyToMat(filepath.Join(t.TempDir(), "absent.npy"))
	assert.Error(t, err)
}

func TestCSVRoundTripExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")

	src := &Table{
		Columns: []string{"overall", "head", "tail"},
		Rows: [][]float64{
			{0, 0, 0},
			{1.5, math.Pi, 1e-17},
			{2.25, 0.1, 12345.6789},
		},
	}
	require.NoError(t, TableToCSV(path, src))

	got, err := CSVToTable(path)
	require.NoError(t, err)
	assert.Equal(t, src.Columns, got.Columns)
	assert.Equal(t, src.Rows, got.Rows)
}

func TestTableColumn(t *testing.T) {
	tab := &Table{
		Columns: []string{"residue", "rmsf"},
		Rows:    [][]float64{{1, 0.5}, {2, 0.75}},
	}

	vals, ok := tab.Column("rmsf")
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 0.75}, vals)

	_, ok = tab.Column("nope")
	assert.False(t, ok)
}

func TestCSVToTableRejectsRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, TableToCSV(path, &Table{
		Columns: []string{"a", "b"},
		Rows:    [][]float64{{1, 2}},
	}))

	// A ragged row count mismatch should surface as an error, not a panic.
	tab := &Table{Columns: []string{"a", "b"}, Rows: [][]float64{{1}}}
	assert.Error(t, TableToCSV(path, tab))
}
