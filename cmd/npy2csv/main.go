// Command npy2csv dumps a cached .npy matrix (such as a step's
// rmsd_matrix.npy) to a CSV file next to it, for inspection with spreadsheet
// tools.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/foldlab/ensemble/internal/io"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: npy2csv <matrix.npy>")
	}
	fileName := os.Args[1]

	m, err := io.NpyToMat(fileName)
	if err != nil {
		log.Fatalf("failed to read %s: %v", fileName, err)
	}
	fmt.Println("Reading npy file complete")

	rows, cols := m.Dims()
	cells := make([]string, cols)
	for j := range cells {
		cells[j] = fmt.Sprintf("c%d", j)
	}
	table := &io.Table{Columns: cells, Rows: make([][]float64, rows)}
	for i := 0; i < rows; i++ {
		table.Rows[i] = m.RawRowView(i)
	}

	if err := io.TableToCSV(fileName+".csv", table); err != nil {
		log.Fatalf("failed to write %s.csv: %v", fileName, err)
	}
}
