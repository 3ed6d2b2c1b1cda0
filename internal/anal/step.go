// Package anal drives the full per-step analysis: load the ensemble, build
// the cached pairwise matrix and deviation tables, embed, cluster, and render
// the diagnostic plots.
package anal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/foldlab/ensemble/internal/calc"
	"github.com/foldlab/ensemble/internal/cluster"
	"github.com/foldlab/ensemble/internal/io"
	"github.com/foldlab/ensemble/internal/pdb"
	"github.com/foldlab/ensemble/internal/plot"
)

// Config carries the per-protein-family tables and tuning values into a step
// run. It is plain data owned by the caller; nothing here is read from flags
// or the environment.
type Config struct {
	Domains  []calc.Domain
	Regions  []plot.Region
	Clusters int
	Seed     int64
	Palette  plot.Palette
}

// RunStep processes one experiment batch rooted at dir. Artifacts land next
// to the inputs: rmsd_matrix.npy, ref_rmsd.csv, domains.csv, cluster.png and,
// when a rmsf.csv is present, rmsf.png.
//
// Any failure aborts this step and is returned to the caller; steps are
// independent so the batch driver may continue with the next one.
func RunStep(dir string, cfg Config) error {
	structs, err := loadEnsemble(filepath.Join(dir, "pdbs"))
	if err != nil {
		return err
	}
	log.Printf("[%s] loaded %d ensemble members", filepath.Base(dir), len(structs))

	m, err := calc.PairwiseMatrix(structs, filepath.Join(dir, "rmsd_matrix.npy"))
	if err != nil {
		return err
	}

	if _, err := calc.ReferenceDeviation(structs, cfg.Domains,
		filepath.Join(dir, "ref_rmsd.csv"),
		filepath.Join(dir, "domains.csv")); err != nil {
		return err
	}

	coords, err := cluster.Embed(m, 2)
	if err != nil {
		return err
	}
	groups, err := cluster.KMeans(coords, cfg.Clusters, cfg.Seed)
	if err != nil {
		return err
	}
	if err := plot.ClusterScatter(filepath.Join(dir, "cluster.png"),
		coords, groups, cfg.Palette, true); err != nil {
		return err
	}

	// The flexibility table is produced upstream; plot it only when supplied.
	rmsfPath := filepath.Join(dir, "rmsf.csv")
	if _, err := os.Stat(rmsfPath); err == nil {
		profile, err := io.CSVToTable(rmsfPath)
		if err != nil {
			return err
		}
		if err := plot.FlexibilityProfile(filepath.Join(dir, "rmsf.png"),
			profile, cfg.Regions); err != nil {
			return err
		}
	}

	log.Printf("[%s] done", filepath.Base(dir))
	return nil
}

// loadEnsemble reads every structure file under dir in lexical order, so the
// matrix ordinal of each member is stable across runs.
func loadEnsemble(dir string) ([]*pdb.Structure, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdb"))
	if err != nil {
		return nil, err
	}
	gz, err := filepath.Glob(filepath.Join(dir, "*.pdb.gz"))
	if err != nil {
		return nil, err
	}
	paths = append(paths, gz...)
	if len(paths) == 0 {
		return nil, fmt.Errorf("anal: no structure files under %s", dir)
	}
	sort.Strings(paths)

	structs := make([]*pdb.Structure, len(paths))
	for i, p := range paths {
		s, err := pdb.Load(p)
		if err != nil {
			return nil, err
		}
		structs[i] = s
	}
	return structs, nil
}
