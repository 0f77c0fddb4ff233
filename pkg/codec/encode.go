package codec

import (
	"strconv"

	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// Encode draws every rectangle of set into a new grid sized to the set's
// bounds. With showLabels, rectangle i (zero-based) is annotated with i+1.
// A label wider than its rectangle is cut at the rectangle's right edge.
//
// Encode does not cap the grid size; callers handling untrusted input check
// the bounds with errors.ValidateDimensions first.
func Encode(set rect.Set, showLabels bool) *grid.Grid {
	g := grid.Blank(set.Bounds())
	for i, r := range set {
		drawFrame(g, r)
		if showLabels {
			drawLabel(g, r, i+1)
		}
	}
	return g
}

// drawFrame draws the outline of r, leaving its interior untouched.
func drawFrame(g *grid.Grid, r rect.Rect) {
	x1, y1, x2, y2 := r.X1-1, r.Y1-1, r.X2-1, r.Y2-1
	for c := y1; c <= y2; c++ {
		g.Set(x1, c, grid.Boundary)
		g.Set(x2, c, grid.Boundary)
	}
	for row := x1 + 1; row < x2; row++ {
		g.Set(row, y1, grid.Boundary)
		g.Set(row, y2, grid.Boundary)
	}
}

// drawLabel writes label along r's top row starting at its top-left corner.
func drawLabel(g *grid.Grid, r rect.Rect, label int) {
	digits := strconv.Itoa(label)
	row, col := r.X1-1, r.Y1-1
	for i := 0; i < len(digits) && col+i <= r.Y2-1; i++ {
		g.Set(row, col+i, grid.Digit(int(digits[i]-'0')))
	}
}
