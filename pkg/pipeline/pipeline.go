// Package pipeline runs the rectangle/grid conversions used by the CLI and
// the HTTP API.
//
// The pipeline has three entry points:
//
//  1. Encode: draw a rectangle set into a grid
//  2. Decode: recover the ordered rectangle set from a labeled grid
//  3. Verify: encode with labels, decode the result, and compare
//
// Each entry point consults the cache first and stores only successful
// results, so a cached decode was verified when it was written.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	set, err := pipeline.LoadRects("layout.json", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Encode(ctx, set, pipeline.Options{Labels: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Grid)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxgrid/pkg/cache"
	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/grid"
	pkgio "github.com/matzehuels/boxgrid/pkg/io"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTTL is how long encode and decode results stay cached.
	DefaultTTL = 24 * time.Hour

	// DefaultLabels is whether encode draws labels when not configured.
	DefaultLabels = true
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Labels draws rectangle labels when encoding. Decode ignores it.
	Labels bool `json:"labels"`

	// Units discretizes float input onto [1, Units] when non-zero.
	Units int `json:"units,omitempty"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides DefaultTTL for cache writes.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Validate checks option values and applies defaults.
func (o *Options) Validate() error {
	if err := errors.ValidateUnits(o.Units); err != nil {
		return err
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// EncodeKeyOpts returns cache key options for encoding.
func (o *Options) EncodeKeyOpts() cache.EncodeKeyOpts {
	return cache.EncodeKeyOpts{Labels: o.Labels}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the encoded grid (Encode, Verify) or the input grid (Decode).
	Grid *grid.Grid

	// Set is the input set (Encode) or the decoded set (Decode, Verify).
	Set rect.Set

	// Hash is the content hash of the pipeline input.
	Hash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rects      int
	Height     int
	Width      int
	EncodeTime time.Duration
	DecodeTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	EncodeHit bool
	DecodeHit bool
}

// =============================================================================
// Loading
// =============================================================================

// Prepare turns raw coordinates into a validated set. With units > 0 the
// coordinates are discretized; otherwise they must already be integers.
func Prepare(coords [][4]float64, units int) (rect.Set, error) {
	if err := errors.ValidateUnits(units); err != nil {
		return nil, err
	}
	if units > 0 {
		return rect.Discretize(coords, units)
	}
	return rect.FromFloats(coords)
}

// LoadRects reads a rectangle file (JSON, TOML or YAML) and prepares it
// with [Prepare].
func LoadRects(path string, units int) (rect.Set, error) {
	coords, err := pkgio.ImportCoords(path)
	if err != nil {
		return nil, err
	}
	return Prepare(coords, units)
}
