package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEmbedShape(t *testing.T) {
	m := mat.NewDense(4, 4, []float64{
		0, 1, 2, 3,
		1, 0, 1, 2,
		2, 1, 0, 1,
		3, 2, 1, 0,
	})

	coords, err := Embed(m, 2)
	require.NoError(t, err)

	rows, cols := coords.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)
}

func TestEmbedIdenticalRowsCoincide(t *testing.T) {
	// Rows 0 and 1 carry identical distance profiles, so their projections
	// must coincide.
	m := mat.NewDense(4, 4, []float64{
		0, 0, 5, 5,
		0, 0, 5, 5,
		5, 5, 0, 2,
		5, 5, 2, 0,
	})

	coords, err := Embed(m, 2)
	require.NoError(t, err)

	assert.InDelta(t, coords.At(0, 0), coords.At(1, 0), 1e-9)
	assert.InDelta(t, coords.At(0, 1), coords.At(1, 1), 1e-9)
}

func TestEmbedBadDims(t *testing.T) {
	m := mat.NewDense(3, 3, nil)
	_, err := Embed(m, 0)
	assert.Error(t, err)
	_, err = Embed(m, 4)
	assert.Error(t, err)
}

func TestKMeansSplitsDuplicateGroups(t *testing.T) {
	// Structures 0-2 are identical and 3-4 are identical to each other but
	// different from 0-2; two groups must split exactly along that line.
	points := mat.NewDense(5, 2, []float64{
		1, 1,
		1, 1,
		1, 1,
		40, -7,
		40, -7,
	})

	groups, err := KMeans(points, 2, 42)
	require.NoError(t, err)
	require.Len(t, groups, 5)

	assert.Equal(t, groups[0], groups[1])
	assert.Equal(t, groups[0], groups[2])
	assert.Equal(t, groups[3], groups[4])
	assert.NotEqual(t, groups[0], groups[3])
}

func TestKMeansReproducible(t *testing.T) {
	points := mat.NewDense(6, 2, []float64{
		0, 0, 0.5, 0.5, 1, 0,
		10, 10, 10.5, 9.5, 9, 10,
	})

	a, err := KMeans(points, 2, 7)
	require.NoError(t, err)
	b, err := KMeans(points, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKMeansErrors(t *testing.T) {
	points := mat.NewDense(2, 2, []float64{0, 0, 1, 1})

	_, err := KMeans(points, 0, 1)
	assert.Error(t, err)
	_, err = KMeans(points, 3, 1)
	assert.Error(t, err)
}
