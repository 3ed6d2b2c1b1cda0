// Package plot renders the per-step diagnostic images: the clustered 2D
// embedding and the per-residue flexibility profile.
package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette is a finite, ordered list of colors. Group ids are mapped to colors
// by their position among the distinct ids present, so the same palette
// always yields the same coloring for the same grouping.
type Palette []drawing.Color

// DefaultPalette covers the default five-group partition with room to spare.
var DefaultPalette = Palette{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
}

// PaletteTooSmallError reports a palette with fewer colors than distinct
// group ids to draw.
type PaletteTooSmallError struct {
	Colors int
	Groups int
}

func (e *PaletteTooSmallError) Error() string {
	return fmt.Sprintf("plot: palette has %d colors but %d distinct groups are present",
		e.Colors, e.Groups)
}
