// Package calc builds the cached per-step artifacts: the pairwise RMSD matrix
// over an ensemble and the per-structure deviation table against a reference.
//
// Both builders follow the same cache-or-compute pattern: if the on-disk
// artifact exists and its shape matches the current structure set it is
// returned verbatim; on a shape mismatch the stale artifact is recomputed and
// overwritten.
package calc

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/foldlab/ensemble/internal/io"
	"github.com/foldlab/ensemble/internal/pdb"
	"github.com/foldlab/ensemble/internal/rmsd"
)

// backbone is the selection used for all pairwise comparisons. Applying the
// same selection to every ensemble member keeps atom counts equal.
var backbone = pdb.Selection{Role: pdb.RoleBackbone}

// PairwiseMatrix returns the symmetric matrix of backbone RMSD values over
// the structure set, loading it from cachePath when a matrix of matching
// order is already there and computing plus persisting it otherwise.
//
// The returned matrix has a zero diagonal and M[i][j] == M[j][i] for all i,j.
func PairwiseMatrix(structs []*pdb.Structure, cachePath string) (*mat.Dense, error) {
	n := len(structs)

	if _, err := os.Stat(cachePath); err == nil {
		m, err := io.NpyToMat(cachePath)
		if err != nil {
			return nil, err
		}
		rows, cols := m.Dims()
		if rows == n && cols == n {
			return m, nil
		}
		log.Printf("[calc] stale cache %s: holds %dx%d but the ensemble has %d members; recomputing",
			cachePath, rows, cols, n)
	}

	m, err := computePairwise(structs)
	if err != nil {
		return nil, err
	}
	if err := io.MatToNpy(cachePath, m); err != nil {
		return nil, err
	}
	return m, nil
}

// computePairwise evaluates the upper triangle and mirrors it. Rows are
// fanned out over a fixed worker pool; each worker owns whole rows so no two
// goroutines write the same cell.
func computePairwise(structs []*pdb.Structure) (*mat.Dense, error) {
	n := len(structs)
	m := mat.NewDense(n, n, nil)

	selections := make([]pdb.Atoms, n)
	for i, s := range structs {
		selections[i] = s.Select(backbone)
	}

	workers := runtime.NumCPU()
	order := make(chan int, workers)
	errs := make(chan error, n)
	var wg sync.WaitGroup

	wg.Add(n)
	for w := 0; w < workers; w++ {
		go func() {
			for i := range order {
				if err := pairwiseRow(m, selections, i); err != nil {
					errs <- fmt.Errorf("structures %d vs later members: %w", i, err)
				}
				wg.Done()
			}
		}()
	}
	for i := 0; i < n; i++ {
		order <- i
	}
	wg.Wait()
	close(order)
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}
	return m, nil
}

// pairwiseRow fills row i for all j > i and mirrors the values. The diagonal
// stays zero without evaluating a self-comparison.
func pairwiseRow(m *mat.Dense, selections []pdb.Atoms, i int) error {
	for j := i + 1; j < len(selections); j++ {
		d, err := rmsd.RMSD(selections[i], selections[j])
		if err != nil {
			return err
		}
		m.Set(i, j, d)
		m.Set(j, i, d)
	}
	return nil
}
