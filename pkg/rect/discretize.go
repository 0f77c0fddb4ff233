package rect

import (
	"math"

	"github.com/matzehuels/boxgrid/pkg/errors"
)

// Discretize maps real-valued rectangles onto an integer grid of the given
// resolution. The global minimum and maximum over all coordinates land on 1
// and units; start coordinates are floored and end coordinates ceiled, so a
// rectangle never shrinks and relative order is preserved.
func Discretize(coords [][4]float64, units int) (Set, error) {
	if err := errors.ValidateUnits(units); err != nil {
		return nil, err
	}
	if units == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "units must be at least 2")
	}
	if len(coords) == 0 {
		return Set{}, nil
	}

	var invalid []Invalid
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, c := range coords {
		for _, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "rect %d has non-finite coordinate %v", i+1, v)
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if c[0] >= c[2] || c[1] >= c[3] {
			invalid = append(invalid, Invalid{
				Index:  i,
				Rect:   Rect{X1: int(c[0]), Y1: int(c[1]), X2: int(c[2]), Y2: int(c[3])},
				Reason: "start must be less than end on both axes",
			})
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Invalid: invalid}
	}

	scale := float64(units-1) / (hi - lo)
	start := func(v float64) int { return int(math.Floor((v-lo)*scale)) + 1 }
	end := func(v float64) int { return min(int(math.Ceil((v-lo)*scale)), units-1) + 1 }

	out := make([][4]int, len(coords))
	for i, c := range coords {
		out[i] = [4]int{start(c[0]), start(c[1]), end(c[2]), end(c[3])}
	}
	return New(out)
}

// FromFloats converts coordinates that are already integral.
// Any fractional value is rejected rather than rounded.
func FromFloats(coords [][4]float64) (Set, error) {
	out := make([][4]int, len(coords))
	for i, c := range coords {
		for j, v := range c {
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"rect %d has non-integral coordinate %v (set units to discretize)", i+1, v)
			}
			if math.Abs(v) > math.MaxInt32 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "rect %d coordinate %v out of range", i+1, v)
			}
			out[i][j] = int(v)
		}
	}
	return New(out)
}
