// Package io reads and writes rectangle sets and text grids.
//
// # Rectangle Files
//
// A rectangle file holds a single "rects" array of four-number arrays
// (x1, y1, x2, y2), one-based and inclusive. Three encodings are supported
// and chosen by file extension:
//
//	rects.json   {"rects": [[1, 1, 2, 3], [1, 4, 2, 8]]}
//	rects.toml   rects = [[1, 1, 2, 3], [1, 4, 2, 8]]
//	rects.yaml   rects: [[1, 1, 2, 3], [1, 4, 2, 8]]
//
// Coordinates are read as floating point so the same files can feed the
// discretizer in [rect.Discretize]. [ReadCoords] returns them raw;
// [ReadRects] requires integral values and validates them with [rect.New].
//
// # Grid Files
//
// A grid file is the text form described in package grid: one line per row,
// ' ' for background, '#' for frames and '0'-'9' for labels. Use [ImportGrid]
// and [ExportGrid] for files, or grid.Read and grid.Write for streams.
//
// # Round Trips
//
// [WriteRects] followed by [ReadRects] in the same format reproduces the set
// exactly, including order.
//
// [rect.Discretize]: github.com/matzehuels/boxgrid/pkg/rect.Discretize
// [rect.New]: github.com/matzehuels/boxgrid/pkg/rect.New
package io
