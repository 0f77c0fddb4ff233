package codec

import (
	"math"
	"slices"

	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// maxLabel bounds label parsing so a long digit run cannot overflow.
const maxLabel = math.MaxInt32 / 10

// box is a traced rectangle in zero-based, inclusive grid coordinates.
type box struct {
	label          int
	x1, y1, x2, y2 int
}

func (b box) rect() rect.Rect {
	return rect.Rect{X1: b.x1 + 1, Y1: b.y1 + 1, X2: b.x2 + 1, Y2: b.y2 + 1}
}

// Decode reconstructs the ordered rectangle set that encodes to g with
// labels enabled. g is not modified.
func Decode(g *grid.Grid) (rect.Set, error) {
	if g.Count(func(c grid.Cell) bool { return c != grid.Empty }) == 0 {
		return nil, &EmptyGridError{}
	}
	if g.Count(grid.Cell.IsDigit) == 0 {
		return nil, &UnlabeledGridError{Boundary: g.Count(func(c grid.Cell) bool { return c == grid.Boundary })}
	}

	work := g.Clone()
	boxes := make(map[int]box)
	row, col := 0, 0
	for {
		var ok bool
		row, col, ok = nextOrigin(work, row, col)
		if !ok {
			break
		}
		b, err := trace(work, row, col)
		if err != nil {
			return nil, err
		}
		if prev, dup := boxes[b.label]; dup {
			return nil, &DuplicateLabelError{
				Label:  b.label,
				First:  [2]int{prev.x1 + 1, prev.y1 + 1},
				Second: [2]int{b.x1 + 1, b.y1 + 1},
			}
		}
		boxes[b.label] = b
		erase(work, b)
	}

	candidate, err := order(boxes)
	if err != nil {
		return nil, err
	}
	if err := verify(g, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// nextOrigin returns the first digit at or after (row, col) in row-major order.
// Erasing a frame never creates digits, so scanning resumes where the last
// origin was found.
func nextOrigin(g *grid.Grid, row, col int) (int, int, bool) {
	for r := row; r < g.Height(); r++ {
		start := 0
		if r == row {
			start = col
		}
		for c := start; c < g.Width(); c++ {
			if g.At(r, c).IsDigit() {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// trace reads the label at (x, y) and follows the frame to its right and
// bottom bounds.
func trace(g *grid.Grid, x, y int) (box, error) {
	hole := g.At(x+1, y+1) == grid.Empty
	label := g.At(x, y).Value()
	inLabel := true

	right := -1
	for c := y + 1; c < g.Width(); c++ {
		cell := g.At(x, c)
		if inLabel && cell.IsDigit() {
			if label > maxLabel {
				return box{}, errors.New(errors.ErrCodeInvalidGrid, "label at (%d,%d) is too long", x+1, y+1)
			}
			label = label*10 + cell.Value()
		} else {
			inLabel = false
		}

		edgeEnds := cell == grid.Empty || (!inLabel && cell.IsDigit())
		if !hole {
			if edgeEnds {
				right = c - 1
				break
			}
			continue
		}
		if edgeEnds {
			return box{}, &BoundNotFoundError{Side: SideRight, Row: x + 1, Col: y + 1,
				Reason: "top edge ends before the right edge starts"}
		}
		if g.At(x+1, c) == grid.Boundary {
			right = c
			break
		}
	}
	if right < 0 && !hole {
		right = g.Width() - 1
	}
	if right <= y {
		return box{}, &BoundNotFoundError{Side: SideRight, Row: x + 1, Col: y + 1}
	}

	bottom := -1
	for r := x + 1; r < g.Height(); r++ {
		cell := g.At(r, y)
		if !hole {
			if cell != grid.Boundary {
				bottom = r - 1
				break
			}
			continue
		}
		if cell != grid.Boundary {
			return box{}, &BoundNotFoundError{Side: SideBottom, Row: x + 1, Col: y + 1,
				Reason: "left edge ends before the bottom edge starts"}
		}
		if g.At(r, y+1) == grid.Boundary {
			bottom = r
			break
		}
	}
	if bottom < 0 && !hole {
		bottom = g.Height() - 1
	}
	if bottom <= x {
		return box{}, &BoundNotFoundError{Side: SideBottom, Row: x + 1, Col: y + 1}
	}

	return box{label: label, x1: x, y1: y, x2: bottom, y2: right}, nil
}

// erase clears the frame of b. Its interior can only hold nested
// rectangles, which are left for later scans.
func erase(g *grid.Grid, b box) {
	for c := b.y1; c <= b.y2; c++ {
		g.Set(b.x1, c, grid.Empty)
		g.Set(b.x2, c, grid.Empty)
	}
	for r := b.x1 + 1; r < b.x2; r++ {
		g.Set(r, b.y1, grid.Empty)
		g.Set(r, b.y2, grid.Empty)
	}
}

// order sorts boxes by label and checks the labels are contiguous.
func order(boxes map[int]box) (rect.Set, error) {
	labels := make([]int, 0, len(boxes))
	for l := range boxes {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	lo, hi := labels[0], labels[len(labels)-1]
	if span := hi - lo + 1; span != len(labels) {
		gap := &LabelGapError{MissingCount: span - len(labels)}
		next := lo
		for _, l := range labels {
			for ; next < l && len(gap.Missing) < maxListedLabels; next++ {
				gap.Missing = append(gap.Missing, next)
			}
			next = l + 1
		}
		return nil, gap
	}

	set := make(rect.Set, len(labels))
	for i, l := range labels {
		set[i] = boxes[l].rect()
	}
	return set, nil
}

// verify re-encodes candidate and compares it with the input grid.
func verify(input *grid.Grid, candidate rect.Set) error {
	h, w := candidate.Bounds()
	if err := errors.ValidateDimensions(h, w); err != nil {
		return err
	}
	re := Encode(candidate, true)
	diff, n := input.Diff(re)
	if n == 0 && input.Height() == re.Height() && input.Width() == re.Width() {
		return nil
	}
	return &MismatchError{
		Diff:          diff,
		Cells:         n,
		Input:         [2]int{input.Height(), input.Width()},
		Reconstructed: [2]int{re.Height(), re.Width()},
		Candidate:     candidate,
	}
}
