// Package grid provides the two-dimensional cell buffer that rectangles are
// drawn into, and its line-oriented text form.
//
// A [Grid] is a fixed-size H×W array addressed by zero-based (row, col).
// Each cell is [Empty], [Boundary], or a decimal digit. Cells live in one
// flat slice indexed by row*width+col.
//
// # Text Form
//
// Every cell maps to exactly one printable character:
//
//	Empty    ' '
//	Boundary '#'
//	Digit(d) '0'..'9'
//
// [Parse] and [Read] turn a rectangular block of such lines into a Grid;
// [Grid.String] and [Write] do the reverse.
package grid

import (
	"fmt"

	"github.com/matzehuels/boxgrid/pkg/errors"
)

// Cell is the value held by one grid position.
// Digits are stored as 0..9; the two structural values sit above that range.
type Cell uint8

const (
	// Empty is background: no rectangle drew here.
	Empty Cell = 10 + iota
	// Boundary is part of some rectangle's frame.
	Boundary
)

// Digit returns the cell holding decimal digit d. It panics if d is outside 0..9.
func Digit(d int) Cell {
	if d < 0 || d > 9 {
		panic(fmt.Sprintf("grid: digit %d out of range", d))
	}
	return Cell(d)
}

// IsDigit reports whether c holds a label digit.
func (c Cell) IsDigit() bool { return c <= 9 }

// Value returns the digit held by c, or -1 if c is not a digit.
func (c Cell) Value() int {
	if !c.IsDigit() {
		return -1
	}
	return int(c)
}

// Grid is a fixed-size matrix of cells.
type Grid struct {
	height, width int
	cells         []Cell
}

// New allocates a height×width grid filled with [Empty].
func New(height, width int) (*Grid, error) {
	if err := errors.ValidateDimensions(height, width); err != nil {
		return nil, err
	}
	g := &Grid{height: height, width: width, cells: make([]Cell, height*width)}
	g.Fill(Empty)
	return g, nil
}

// Blank allocates a height×width grid filled with [Empty] without the
// [errors.MaxGridArea] check. It is meant for sizes derived from a validated
// rectangle set; untrusted sizes go through [New]. Blank panics on negative
// dimensions.
func Blank(height, width int) *Grid {
	if height < 0 || width < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", height, width))
	}
	g := &Grid{height: height, width: width, cells: make([]Cell, height*width)}
	g.Fill(Empty)
	return g
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// InBounds reports whether (row, col) addresses a cell of g.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the cell at (row, col). Out-of-range positions read as [Empty].
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.cells[row*g.width+col]
}

// Set stores c at (row, col). It panics if the position is out of range.
func (g *Grid) Set(row, col int, c Cell) {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("grid: (%d,%d) outside %dx%d", row, col, g.height, g.width))
	}
	g.cells[row*g.width+col] = c
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{height: g.height, width: g.width, cells: append([]Cell(nil), g.cells...)}
}

// Count returns how many cells satisfy match.
func (g *Grid) Count(match func(Cell) bool) int {
	n := 0
	for _, c := range g.cells {
		if match(c) {
			n++
		}
	}
	return n
}

// Equal reports whether g and o have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.height != o.height || g.width != o.width {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Diff compares g against o over the union of their sizes, treating cells
// outside either grid as [Empty]. The returned grid keeps g's value at every
// mismatching position and is [Empty] elsewhere; n counts the mismatches.
func (g *Grid) Diff(o *Grid) (diff *Grid, n int) {
	h, w := max(g.height, o.height), max(g.width, o.width)
	diff = &Grid{height: h, width: w, cells: make([]Cell, h*w)}
	diff.Fill(Empty)
	for r := range h {
		for c := range w {
			if a := g.At(r, c); a != o.At(r, c) {
				diff.cells[r*w+c] = a
				n++
			}
		}
	}
	return diff, n
}
