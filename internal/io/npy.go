// Package io persists matrices and tables for the analysis pipeline: numpy
// .npy binaries for big square matrices and CSV for per-structure tables.
package io

import (
	"fmt"

	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
)

// MatToNpy writes a dense matrix to a numpy .npy binary file.
func MatToNpy(path string, m *mat.Dense) error {
	rows, cols := m.Dims()
	raw := m.RawMatrix()

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return fmt.Errorf("npy: failed to open %s: %w", path, err)
	}
	w.Shape = []int{rows, cols}
	w.Version = 2
	if err := w.WriteFloat64(raw.Data); err != nil {
		return fmt.Errorf("npy: failed to write %s: %w", path, err)
	}
	return nil
}

// NpyToMat reads a numpy .npy binary file as a dense matrix. The file must
// hold a two dimensional float64 array.
func NpyToMat(path string) (*mat.Dense, error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("npy: failed to open %s: %w", path, err)
	}
	if len(r.Shape) != 2 {
		return nil, fmt.Errorf("npy: %s: want a 2-dimensional array, got shape %v", path, r.Shape)
	}

	data, err := r.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("npy: failed to read %s: %w", path, err)
	}
	return mat.NewDense(r.Shape[0], r.Shape[1], data), nil
}
