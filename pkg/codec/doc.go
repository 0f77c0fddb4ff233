// Package codec converts between rectangle sets and labeled grids.
//
// [Encode] draws each rectangle of a [rect.Set] as a hollow frame of
// [grid.Boundary] cells and, when labels are enabled, writes the rectangle's
// one-based position as decimal digits starting at its top-left corner.
// Rectangles are drawn in set order, so later rectangles overwrite earlier
// ones wherever they touch.
//
// [Decode] inverts that process. It repeatedly takes the topmost, then
// leftmost, unconsumed label digit as the origin of a rectangle, reads the
// label, traces the right and bottom bounds, records the box and erases the
// frame from a private working copy. Once no digits remain, the labels are
// checked for gaps and sorted to recover the original order.
//
// # Bound Tracing
//
// When the cell diagonally inside the origin is empty, the frame has an
// empty interior (a hole) and the bounds are found where the frame's right
// and bottom edges meet the row and column just inside the origin. This is
// robust against neighbours whose edges continue the top row or left column.
// Otherwise the frame is at most two cells thick in one direction and the
// bounds are where the top row and left column stop.
//
// # Verification
//
// Bound tracing is a heuristic; some labelings are ambiguous. Every decode
// therefore re-encodes its candidate set and compares it cell by cell with
// the input. Any disagreement is reported as a [MismatchError] carrying the
// mismatching cells, and no set is returned.
//
//	g := codec.Encode(set, true)
//	got, err := codec.Decode(g)
//	// got.Equal(set) for any set whose labels are distinguishable
package codec
