package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const maxIterations = 100

// KMeans partitions the rows of points into k groups with Lloyd's algorithm
// and returns one group id per row.
//
// Centroids are seeded with the maximin rule: the first is a random row drawn
// from a rand.Rand with the given seed, each following one is the row
// farthest from all centroids chosen so far. Runs with the same seed are
// reproducible, and k well-separated duplicate groups always split into k
// distinct clusters.
func KMeans(points *mat.Dense, k int, seed int64) ([]int, error) {
	n, dim := points.Dims()
	if k < 1 {
		return nil, fmt.Errorf("cluster: k must be positive, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cluster: cannot split %d points into %d groups", n, k)
	}

	centroids := initialCentroids(points, k, rand.New(rand.NewSource(seed)))

	assignments := make([]int, n)
	counts := make([]int, k)
	sums := make([]float64, k*dim)

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		// Assignment step.
		for i := 0; i < n; i++ {
			best := nearestCentroid(points.RawRowView(i), centroids, dim)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Update step.
		for i := range sums {
			sums[i] = 0
		}
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			c := assignments[i]
			row := points.RawRowView(i)
			for d := 0; d < dim; d++ {
				sums[c*dim+d] += row[d]
			}
			counts[c]++
		}
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				// Reseed an empty cluster with the point farthest from its
				// current centroid.
				copy(centroids[j*dim:(j+1)*dim], farthestPoint(points, centroids, dim))
				continue
			}
			scale := 1.0 / float64(counts[j])
			for d := 0; d < dim; d++ {
				centroids[j*dim+d] = sums[j*dim+d] * scale
			}
		}
	}

	return assignments, nil
}

// initialCentroids picks k rows by the maximin rule, flattened to k*dim.
func initialCentroids(points *mat.Dense, k int, rng *rand.Rand) []float64 {
	n, dim := points.Dims()
	centroids := make([]float64, 0, k*dim)
	centroids = append(centroids, points.RawRowView(rng.Intn(n))...)

	for len(centroids) < k*dim {
		farIdx, farDist := 0, -1.0
		for i := 0; i < n; i++ {
			d := distToNearest(points.RawRowView(i), centroids, dim)
			if d > farDist {
				farDist = d
				farIdx = i
			}
		}
		centroids = append(centroids, points.RawRowView(farIdx)...)
	}
	return centroids
}

// farthestPoint returns the row maximizing distance to its nearest centroid.
func farthestPoint(points *mat.Dense, centroids []float64, dim int) []float64 {
	n, _ := points.Dims()
	farIdx, farDist := 0, -1.0
	for i := 0; i < n; i++ {
		d := distToNearest(points.RawRowView(i), centroids, dim)
		if d > farDist {
			farDist = d
			farIdx = i
		}
	}
	return points.RawRowView(farIdx)
}

func nearestCentroid(row, centroids []float64, dim int) int {
	k := len(centroids) / dim
	best, min := 0, math.MaxFloat64
	for j := 0; j < k; j++ {
		d := sqDist(row, centroids[j*dim:(j+1)*dim])
		if d < min {
			min = d
			best = j
		}
	}
	return best
}

func distToNearest(row, centroids []float64, dim int) float64 {
	k := len(centroids) / dim
	min := math.MaxFloat64
	for j := 0; j < k; j++ {
		if d := sqDist(row, centroids[j*dim:(j+1)*dim]); d < min {
			min = d
		}
	}
	return min
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
