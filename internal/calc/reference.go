package calc

import (
	"os"

	"github.com/foldlab/ensemble/internal/io"
	"github.com/foldlab/ensemble/internal/pdb"
	"github.com/foldlab/ensemble/internal/rmsd"
)

// Domain names a structurally meaningful sub-region of the protein as a set
// of residue ranges. Domain tables are configuration owned by the caller so
// they can be swapped per protein family.
type Domain struct {
	Name   string
	Ranges []pdb.ResidueRange
}

// ReferenceDeviation computes, for every ensemble member, its RMSD against
// structs[0] over the whole protein and separately over each named domain's
// backbone. The reference row is present with zero deviation by construction.
//
// The overall column is persisted to refPath and the per-domain columns to
// domPath. When both files exist and match the current ensemble and domain
// set, the cached tables are merged and returned instead of recomputing.
func ReferenceDeviation(structs []*pdb.Structure, domains []Domain, refPath, domPath string) (*io.Table, error) {
	n := len(structs)

	if cached, ok := loadDeviation(refPath, domPath, n, domains); ok {
		return cached, nil
	}

	table := &io.Table{
		Columns: make([]string, 0, 1+len(domains)),
		Rows:    make([][]float64, n),
	}
	table.Columns = append(table.Columns, "overall")
	for _, d := range domains {
		table.Columns = append(table.Columns, d.Name)
	}

	ref := structs[0]
	refOverall := ref.Select(pdb.Selection{Role: pdb.RoleProtein})
	refDomains := make([]pdb.Atoms, len(domains))
	for k, d := range domains {
		refDomains[k] = ref.Select(pdb.Selection{Role: pdb.RoleBackbone, Ranges: d.Ranges})
	}

	for i, s := range structs {
		row := make([]float64, 1+len(domains))
		if i > 0 {
			d, err := rmsd.RMSD(s.Select(pdb.Selection{Role: pdb.RoleProtein}), refOverall)
			if err != nil {
				return nil, err
			}
			row[0] = d
			for k, dom := range domains {
				sel := pdb.Selection{Role: pdb.RoleBackbone, Ranges: dom.Ranges}
				dd, err := rmsd.RMSD(s.Select(sel), refDomains[k])
				if err != nil {
					return nil, err
				}
				row[1+k] = dd
			}
		}
		table.Rows[i] = row
	}

	if err := io.TableToCSV(refPath, &io.Table{
		Columns: table.Columns[:1],
		Rows:    columnSlice(table.Rows, 0, 1),
	}); err != nil {
		return nil, err
	}
	if err := io.TableToCSV(domPath, &io.Table{
		Columns: table.Columns[1:],
		Rows:    columnSlice(table.Rows, 1, len(table.Columns)),
	}); err != nil {
		return nil, err
	}
	return table, nil
}

// loadDeviation reloads and merges the two cached deviation tables. It
// reports false when either file is missing or its shape no longer matches
// the current inputs, which sends the caller down the compute path.
func loadDeviation(refPath, domPath string, n int, domains []Domain) (*io.Table, bool) {
	for _, p := range []string{refPath, domPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, false
		}
	}
	refTab, err := io.CSVToTable(refPath)
	if err != nil {
		return nil, false
	}
	domTab, err := io.CSVToTable(domPath)
	if err != nil {
		return nil, false
	}
	if len(refTab.Rows) != n || len(domTab.Rows) != n {
		return nil, false
	}
	if len(refTab.Columns) != 1 || len(domTab.Columns) != len(domains) {
		return nil, false
	}

	merged := &io.Table{
		Columns: append(append([]string{}, refTab.Columns...), domTab.Columns...),
		Rows:    make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		merged.Rows[i] = append(append([]float64{}, refTab.Rows[i]...), domTab.Rows[i]...)
	}
	return merged, true
}

// columnSlice copies columns [lo, hi) out of each row.
func columnSlice(rows [][]float64, lo, hi int) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64{}, row[lo:hi]...)
	}
	return out
}
