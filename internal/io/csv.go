package io

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Table is a rectangular numeric table with named columns, one row per
// structure (or per residue for flexibility profiles).
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Column returns the values of the named column. The second return value is
// false if no such column exists.
func (t *Table) Column(name string) ([]float64, bool) {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		vals := make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			vals[i] = row[j]
		}
		return vals, true
	}
	return nil, false
}

// TableToCSV writes the table with a header row. Values are formatted with
// the shortest representation that parses back to the same float64, so a
// write/read cycle is exact.
func TableToCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: failed to write header to %s: %w", path, err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("csv: row has %d values but table has %d columns", len(row), len(t.Columns))
		}
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// CSVToTable reads a CSV file with a header row into a Table.
func CSVToTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s: missing header row", path)
	}

	t := &Table{
		Columns: records[0],
		Rows:    make([][]float64, 0, len(records)-1),
	}
	for i, record := range records[1:] {
		if len(record) != len(t.Columns) {
			return nil, fmt.Errorf("csv: %s: row %d has %d fields, header has %d",
				path, i+1, len(record), len(t.Columns))
		}
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: %s: row %d: bad value %q: %w", path, i+1, field, err)
			}
			row[j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
