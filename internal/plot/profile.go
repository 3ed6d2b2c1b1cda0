package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/foldlab/ensemble/internal/io"
)

// Region marks a named sub-region of the protein by an inclusive residue
// range, drawn as a shaded vertical band behind the flexibility profile.
// Several bands may share a label; the legend carries each label once.
type Region struct {
	Label      string
	Start, End int
}

var bandColors = []drawing.Color{
	{R: 255, G: 200, B: 87, A: 90},
	{R: 119, G: 221, B: 119, A: 90},
	{R: 174, G: 198, B: 207, A: 90},
	{R: 255, G: 105, B: 97, A: 90},
	{R: 203, G: 153, B: 201, A: 90},
}

// FlexibilityProfile renders the externally produced per-residue flexibility
// table as a line chart with the region bands overlaid, and writes it as a
// PNG to path.
//
// The table's "residue" column is used for the x axis when present (row
// number otherwise) and its "rmsf" column for the y axis (last column
// otherwise).
func FlexibilityProfile(path string, profile *io.Table, regions []Region) error {
	if len(profile.Rows) == 0 {
		return fmt.Errorf("plot: flexibility table is empty")
	}

	xs, ok := profile.Column("residue")
	if !ok {
		xs = make([]float64, len(profile.Rows))
		for i := range xs {
			xs[i] = float64(i + 1)
		}
	}
	ys, ok := profile.Column("rmsf")
	if !ok {
		last := profile.Columns[len(profile.Columns)-1]
		ys, _ = profile.Column(last)
	}

	var yMax float64
	for _, v := range ys {
		if v > yMax {
			yMax = v
		}
	}
	yMax *= 1.1

	// Bands first so the profile line draws on top of them. Only the first
	// band of each label is named, which keeps the legend to one entry per
	// label.
	series := make([]chart.Series, 0, len(regions)+1)
	colorByLabel := make(map[string]drawing.Color)
	for _, reg := range regions {
		col, seen := colorByLabel[reg.Label]
		name := ""
		if !seen {
			col = bandColors[len(colorByLabel)%len(bandColors)]
			colorByLabel[reg.Label] = col
			name = reg.Label
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: []float64{float64(reg.Start), float64(reg.End)},
			YValues: []float64{yMax, yMax},
			Style: chart.Style{
				StrokeColor: col,
				FillColor:   col,
			},
		})
	}
	series = append(series, chart.ContinuousSeries{
		Name:    "RMSF",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			StrokeWidth: 2.0,
		},
	})

	graph := chart.Chart{
		Width:  imageWidth,
		Height: imageHeight,
		XAxis:  chart.XAxis{Name: "residue"},
		YAxis: chart.YAxis{
			Name:  "RMSF",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(path, &graph)
}
