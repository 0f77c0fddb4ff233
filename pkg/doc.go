// Package pkg provides the core libraries for boxgrid.
//
// # Overview
//
// boxgrid draws ordered sets of axis-aligned rectangles as character grids
// and recovers the rectangles, in their original order, from a labeled grid.
// The pkg directory is organized into three areas:
//
//  1. Domain - rectangles, grids, and the codec between them
//  2. Infrastructure - errors, file I/O, caching, configuration, hooks
//  3. Entry points - the pipeline runner and the HTTP server
//
// # Architecture
//
// The typical data flow:
//
//	rects.json / rects.toml / rects.yaml
//	         ↓
//	    [io] package (read coordinates)
//	         ↓
//	    [rect] package (validate, optionally discretize)
//	         ↓
//	    [codec] package (Encode → grid, Decode → rects)
//	         ↓
//	    [grid] package (text form: '#', ' ', digits)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/boxgrid/pkg/codec"
//	    "github.com/matzehuels/boxgrid/pkg/rect"
//	)
//
//	set := rect.MustNew([4]int{1, 1, 3, 4}, [4]int{4, 1, 6, 6})
//	g := codec.Encode(set, true)
//	fmt.Println(g) // 6x6 grid; labels "1" at (1,1) and "2" at (4,1)
//
//	back, err := codec.Decode(g)
//	// back.Equal(set) == true
//
// # Main Packages
//
// ## Domain
//
// [rect] - Rectangle model with 1-based inclusive coordinates, validation
// that reports every offending rectangle, and a float discretizer.
//
// [grid] - Flat row-major cell buffer with a three-symbol text codec and a
// cell-level diff.
//
// [codec] - The encoder draws frames and labels; the decoder traces frames
// from labeled corners, checks the label sequence, and re-encodes the result
// to verify it before returning.
//
// ## Infrastructure
//
// [errors] - Coded errors shared by all packages. Domain error types carry
// their own code so [errors.GetCode] works through wrapping.
//
// [io] - Rectangle files in JSON, TOML and YAML; grid text files.
//
// [cache] - Content-addressed result cache with file, Redis and null backends.
//
// [config] - Optional TOML configuration file.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// ## Entry Points
//
// [pipeline] - Encode, decode and verify with caching and logging, used by
// both the CLI and the HTTP server.
//
// [server] - HTTP API over the pipeline.
package pkg
