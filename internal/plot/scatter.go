package plot

import (
	"fmt"
	"os"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/mat"
)

const (
	imageWidth  = 1200
	imageHeight = 900

	axisMin = -100
	axisMax = 100
)

// ClusterScatter renders the 2D embedding colored by group id and writes it
// as a PNG to path. Both axes are fixed to [-100, 100]. A legend is added
// when legend is true.
//
// The palette must have at least as many colors as there are distinct group
// ids, otherwise a *PaletteTooSmallError is returned and nothing is written.
func ClusterScatter(path string, coords *mat.Dense, groups []int, pal Palette, legend bool) error {
	n, dims := coords.Dims()
	if n != len(groups) {
		return fmt.Errorf("plot: %d coordinates but %d group assignments", n, len(groups))
	}
	if dims < 2 {
		return fmt.Errorf("plot: need 2D coordinates, got %d dimensions", dims)
	}

	ids := distinctIDs(groups)
	if len(pal) < len(ids) {
		return &PaletteTooSmallError{Colors: len(pal), Groups: len(ids)}
	}

	series := make([]chart.Series, 0, len(ids))
	for pos, id := range ids {
		var xs, ys []float64
		for i, g := range groups {
			if g != id {
				continue
			}
			xs = append(xs, coords.At(i, 0))
			ys = append(ys, coords.At(i, 1))
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("cluster %d", id),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    6,
				DotColor:    pal[pos],
			},
		})
	}

	graph := chart.Chart{
		Width:  imageWidth,
		Height: imageHeight,
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: axisMin, Max: axisMax},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: axisMin, Max: axisMax},
		},
		Series: series,
	}
	if legend {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	return renderPNG(path, &graph)
}

// distinctIDs returns the sorted distinct group ids present.
func distinctIDs(groups []int) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, g := range groups {
		if !seen[g] {
			seen[g] = true
			ids = append(ids, g)
		}
	}
	sort.Ints(ids)
	return ids
}

func renderPNG(path string, graph *chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("plot: failed to render %s: %w", path, err)
	}
	return nil
}
