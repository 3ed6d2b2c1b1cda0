// Command ensemble runs the structure-diversity analysis over a fixed list of
// experiment steps.
//
// Usage:
//
//	ensemble <data-root>
//
// Each step lives in <data-root>/step_<id>/ with the input ensemble under
// pdbs/. Generated artifacts are written into the step directory.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/foldlab/ensemble/internal/anal"
	"github.com/foldlab/ensemble/internal/calc"
	"github.com/foldlab/ensemble/internal/pdb"
	"github.com/foldlab/ensemble/internal/plot"
)

// stepIDs is the batch to process, one id per experiment step.
var stepIDs = []int{1, 2, 3, 4, 5}

// domains are the sub-regions compared against the reference structure.
// Residue boundaries are specific to the protein family under study; swap
// this table when analyzing a different one.
var domains = []calc.Domain{
	{Name: "N-lobe", Ranges: []pdb.ResidueRange{{Start: 1, End: 120}}},
	{Name: "hinge", Ranges: []pdb.ResidueRange{{Start: 121, End: 135}}},
	{Name: "C-lobe", Ranges: []pdb.ResidueRange{{Start: 136, End: 290}}},
}

// regions are the bands shaded on the flexibility profile. Labels may repeat
// across bands; the legend carries each label once.
var regions = []plot.Region{
	{Label: "N-lobe", Start: 1, End: 120},
	{Label: "hinge", Start: 121, End: 135},
	{Label: "C-lobe", Start: 136, End: 290},
	{Label: "hinge", Start: 300, End: 310},
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <data-root>", filepath.Base(os.Args[0]))
	}
	dataRoot := os.Args[1]

	cfg := anal.Config{
		Domains:  domains,
		Regions:  regions,
		Clusters: 5,
		Seed:     42,
		Palette:  plot.DefaultPalette,
	}

	failed := 0
	for _, id := range stepIDs {
		dir := filepath.Join(dataRoot, fmt.Sprintf("step_%02d", id))
		if err := anal.RunStep(dir, cfg); err != nil {
			log.Printf("[step_%02d] aborted: %v", id, err)
			failed++
		}
	}
	if failed > 0 {
		log.Fatalf("%d of %d steps failed", failed, len(stepIDs))
	}
}
