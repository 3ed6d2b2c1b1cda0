// Package rmsd computes the root-mean-square deviation between two atom sets
// after optimal rigid superposition.
package rmsd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/foldlab/ensemble/internal/pdb"
)

// ShapeMismatchError reports an attempt to superpose two atom sets of
// different size. It indicates an inconsistent input ensemble.
type ShapeMismatchError struct {
	LenA, LenB int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("rmsd: atom sets have different sizes (%d and %d); "+
		"the same selection must yield the same atom count on both structures",
		e.LenA, e.LenB)
}

// RMSD superposes the two atom sets with the Kabsch algorithm and returns the
// root-mean-square deviation of the aligned coordinates:
//
// Center both coordinate sets by subtracting their centroids.
//
// Compute the 3x3 covariance matrix H = Pa^T Pb where Pa and Pb hold the
// centered coordinates as rows.
//
// Compute the SVD H = U S V^T. The optimal rotation is R = V D U^T where
// D = diag(1, 1, sign(det(V U^T))); the sign term corrects an improper
// rotation so the alignment never mirrors the structure.
//
// The result is deterministic and symmetric in its arguments up to
// floating-point rounding.
func RMSD(a, b pdb.Atoms) (float64, error) {
	if len(a) != len(b) {
		return 0, &ShapeMismatchError{LenA: len(a), LenB: len(b)}
	}
	if len(a) == 0 {
		return 0, &ShapeMismatchError{}
	}

	n := len(a)
	pa := centered(a)
	pb := centered(b)

	var h mat.Dense
	h.Mul(pa.T(), pb)

	var svd mat.SVD
	if ok := svd.Factorize(&h, mat.SVDFull); !ok {
		return 0, fmt.Errorf("rmsd: SVD of the covariance matrix failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vut) < 0 {
		d = -1.0
	}

	// R = V diag(1, 1, d) U^T
	dm := mat.NewDiagDense(3, []float64{1, 1, d})
	var vd, r mat.Dense
	vd.Mul(&v, dm)
	r.Mul(&vd, u.T())

	// Rotate the first set onto the second and accumulate the residuals.
	var aligned mat.Dense
	aligned.Mul(pa, r.T())

	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			diff := aligned.At(i, j) - pb.At(i, j)
			sum += diff * diff
		}
	}
	return math.Sqrt(sum / float64(n)), nil
}

// centered builds the Nx3 coordinate matrix of the atom set with its centroid
// subtracted.
func centered(atoms pdb.Atoms) *mat.Dense {
	var cx, cy, cz float64
	for _, a := range atoms {
		cx += a.Coords[0]
		cy += a.Coords[1]
		cz += a.Coords[2]
	}
	n := float64(len(atoms))
	cx, cy, cz = cx/n, cy/n, cz/n

	m := mat.NewDense(len(atoms), 3, nil)
	for i, a := range atoms {
		m.Set(i, 0, a.Coords[0]-cx)
		m.Set(i, 1, a.Coords[1]-cy)
		m.Set(i, 2, a.Coords[2]-cz)
	}
	return m
}
