package codec

import (
	"fmt"
	"strings"

	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// maxListedLabels caps LabelGapError.Missing.
const maxListedLabels = 64

// EmptyGridError is returned when the grid has no non-empty cell.
type EmptyGridError struct{}

func (*EmptyGridError) Error() string { return "no rectangles found" }

// Code returns [errors.ErrCodeEmptyGrid].
func (*EmptyGridError) Code() errors.Code { return errors.ErrCodeEmptyGrid }

// UnlabeledGridError is returned when the grid holds frames but no label digits.
type UnlabeledGridError struct {
	Boundary int // number of boundary cells seen
}

func (e *UnlabeledGridError) Error() string {
	return fmt.Sprintf("all rectangles are unlabeled (%d boundary cells, no digits)", e.Boundary)
}

// Code returns [errors.ErrCodeUnlabeledGrid].
func (*UnlabeledGridError) Code() errors.Code { return errors.ErrCodeUnlabeledGrid }

// Side names the bound a trace was looking for.
type Side string

const (
	SideRight  Side = "right"
	SideBottom Side = "bottom"
)

// BoundNotFoundError is returned when a frame's right or bottom edge cannot
// be traced. Row and Col are the one-based origin of the rectangle.
type BoundNotFoundError struct {
	Side     Side
	Row, Col int
	Reason   string // optional detail
}

func (e *BoundNotFoundError) Error() string {
	msg := fmt.Sprintf("rectangle starting at (%d,%d) has no matching %s bound", e.Row, e.Col, e.Side)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Code returns [errors.ErrCodeBoundNotFound].
func (*BoundNotFoundError) Code() errors.Code { return errors.ErrCodeBoundNotFound }

// LabelGapError is returned when the decoded labels do not form a contiguous range.
type LabelGapError struct {
	Missing      []int // first missing labels, ascending
	MissingCount int   // total number of missing labels
}

func (e *LabelGapError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, l := range e.Missing {
		parts[i] = fmt.Sprint(l)
	}
	list := strings.Join(parts, ", ")
	if e.MissingCount > len(e.Missing) {
		list += fmt.Sprintf(", ... (%d total)", e.MissingCount)
	}
	return fmt.Sprintf("label sequence has gaps: missing [%s]", list)
}

// Code returns [errors.ErrCodeLabelGap].
func (*LabelGapError) Code() errors.Code { return errors.ErrCodeLabelGap }

// DuplicateLabelError is returned when two origins carry the same label.
// Positions are one-based (row, col).
type DuplicateLabelError struct {
	Label         int
	First, Second [2]int
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("label %d appears at (%d,%d) and (%d,%d)",
		e.Label, e.First[0], e.First[1], e.Second[0], e.Second[1])
}

// Code returns [errors.ErrCodeDuplicateLabel].
func (*DuplicateLabelError) Code() errors.Code { return errors.ErrCodeDuplicateLabel }

// MismatchError is returned when re-encoding the decoded set does not
// reproduce the input grid.
type MismatchError struct {
	// Diff holds the input's cells where the grids disagree and Empty elsewhere.
	Diff *grid.Grid
	// Cells counts the disagreeing cells.
	Cells int
	// Input and Reconstructed are the two grid sizes as (height, width).
	Input, Reconstructed [2]int
	// Candidate is the set that failed verification.
	Candidate rect.Set
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous or incomplete structure: %d mismatching cell(s)", e.Cells)
	if e.Input != e.Reconstructed {
		fmt.Fprintf(&b, ", input is %dx%d but reconstruction is %dx%d",
			e.Input[0], e.Input[1], e.Reconstructed[0], e.Reconstructed[1])
	}
	if e.Diff != nil && e.Cells > 0 {
		b.WriteString("\n")
		b.WriteString(e.Diff.String())
	}
	return b.String()
}

// Code returns [errors.ErrCodeReconstructionMismatch].
func (*MismatchError) Code() errors.Code { return errors.ErrCodeReconstructionMismatch }
