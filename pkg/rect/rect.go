// Package rect defines validated axis-aligned integer rectangles and the
// ordered collections that boxgrid encodes into grids.
//
// Coordinates are one-based and inclusive on both ends: a [Rect] with
// X1=1, Y1=1, X2=2, Y2=3 occupies grid rows 1..2 and columns 1..3.
//
// The order of a [Set] is significant. Position i (zero-based) becomes label
// i+1 when the set is encoded, and decoding a grid recovers that order.
//
// Construction validates every rectangle and reports all offending entries
// at once through [ValidationError]:
//
//	set, err := rect.New([][4]int{{1, 1, 2, 3}, {1, 4, 2, 8}})
//	if err != nil {
//	    var verr *rect.ValidationError
//	    if errors.As(err, &verr) {
//	        for _, bad := range verr.Invalid {
//	            fmt.Println(bad.Index, bad.Reason)
//	        }
//	    }
//	}
package rect

import (
	"fmt"
	"strings"

	"github.com/matzehuels/boxgrid/pkg/errors"
)

// Rect is an axis-aligned rectangle spanning rows X1..X2 and columns Y1..Y2.
// Values are immutable once returned by [New].
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Height returns the number of grid rows the rectangle covers.
func (r Rect) Height() int { return r.X2 - r.X1 + 1 }

// Width returns the number of grid columns the rectangle covers.
func (r Rect) Width() int { return r.Y2 - r.Y1 + 1 }

// Tuple returns the coordinates as (x1, y1, x2, y2).
func (r Rect) Tuple() [4]int { return [4]int{r.X1, r.Y1, r.X2, r.Y2} }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// check returns the reason r is malformed, or "" when it is well-formed.
func (r Rect) check() string {
	var reasons []string
	if r.X1 <= 0 || r.Y1 <= 0 || r.X2 <= 0 || r.Y2 <= 0 {
		reasons = append(reasons, "coordinates must be positive")
	}
	if r.X1 >= r.X2 {
		reasons = append(reasons, "x1 must be less than x2")
	}
	if r.Y1 >= r.Y2 {
		reasons = append(reasons, "y1 must be less than y2")
	}
	return strings.Join(reasons, "; ")
}

// Set is an ordered sequence of rectangles.
type Set []Rect

// New validates coords and returns them as a Set.
// Every malformed tuple is collected into a single [ValidationError].
func New(coords [][4]int) (Set, error) {
	set := make(Set, len(coords))
	var invalid []Invalid
	for i, c := range coords {
		r := Rect{X1: c[0], Y1: c[1], X2: c[2], Y2: c[3]}
		if reason := r.check(); reason != "" {
			invalid = append(invalid, Invalid{Index: i, Rect: r, Reason: reason})
		}
		set[i] = r
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Invalid: invalid}
	}
	return set, nil
}

// MustNew is like [New] but panics on invalid input.
// Intended for fixtures and literals known to be valid.
func MustNew(coords ...[4]int) Set {
	s, err := New(coords)
	if err != nil {
		panic(err)
	}
	return s
}

// Bounds returns the grid size implied by the set: the maximum X2 and the maximum Y2.
func (s Set) Bounds() (height, width int) {
	for _, r := range s {
		height = max(height, r.X2)
		width = max(width, r.Y2)
	}
	return height, width
}

// Equal reports whether s and o have the same length and identical rectangles
// in the same order.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Tuples returns the set as raw coordinate tuples.
func (s Set) Tuples() [][4]int {
	out := make([][4]int, len(s))
	for i, r := range s {
		out[i] = r.Tuple()
	}
	return out
}

// Invalid describes one rejected rectangle.
type Invalid struct {
	Index  int // zero-based position in the input
	Rect   Rect
	Reason string
}

// ValidationError lists every malformed rectangle found during construction.
type ValidationError struct {
	Invalid []Invalid
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Invalid))
	for i, bad := range e.Invalid {
		parts[i] = fmt.Sprintf("rect %d %s: %s", bad.Index+1, bad.Rect, bad.Reason)
	}
	return fmt.Sprintf("%d invalid rectangle(s): %s", len(e.Invalid), strings.Join(parts, ", "))
}

// Code returns [errors.ErrCodeInvalidRect].
func (e *ValidationError) Code() errors.Code { return errors.ErrCodeInvalidRect }
