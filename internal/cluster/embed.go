// Package cluster reduces a pairwise distance matrix to a low-dimensional
// embedding and partitions the embedded points into groups.
package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Embed projects the rows of the distance matrix onto their first dims
// principal components, giving one low-dimensional point per structure.
// Structures with identical distance profiles land on identical points.
func Embed(m *mat.Dense, dims int) (*mat.Dense, error) {
	n, cols := m.Dims()
	if dims < 1 || dims > cols {
		return nil, fmt.Errorf("cluster: cannot project %d columns onto %d dimensions", cols, dims)
	}
	if n < 2 {
		// A single observation has no variance to project; it sits at the
		// origin.
		return mat.NewDense(n, dims, nil), nil
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, fmt.Errorf("cluster: principal component decomposition failed")
	}
	var vec mat.Dense
	pc.VectorsTo(&vec)

	var proj mat.Dense
	proj.Mul(m, vec.Slice(0, cols, 0, dims))
	return &proj, nil
}
