package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxgrid/pkg/cache"
	"github.com/matzehuels/boxgrid/pkg/codec"
	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/observability"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

const (
	keyTypeEncode = "encode"
	keyTypeDecode = "decode"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching and logging behave the same.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Encode draws set into a grid, consulting the cache first.
func (r *Runner) Encode(ctx context.Context, set rect.Set, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	height, width := set.Bounds()
	if err := errors.ValidateDimensions(height, width); err != nil {
		return nil, err
	}

	setData, err := json.Marshal(set.Tuples())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize rectangle set")
	}
	result := &Result{Set: set, Hash: cache.Hash(setData)}
	key := r.Keyer.EncodeKey(result.Hash, opts.EncodeKeyOpts())

	if g, ok := r.cachedGrid(ctx, key, opts); ok {
		result.Grid = g
		result.CacheInfo.EncodeHit = true
		result.fill()
		return result, nil
	}

	hooks := observability.Pipeline()
	hooks.OnEncodeStart(ctx, len(set))
	start := time.Now()
	g := codec.Encode(set, opts.Labels)
	result.Stats.EncodeTime = time.Since(start)
	hooks.OnEncodeComplete(ctx, len(set), g.Height(), g.Width(), result.Stats.EncodeTime, nil)

	result.Grid = g
	result.fill()
	if len(set) > 0 {
		r.store(ctx, keyTypeEncode, key, []byte(g.String()), opts)
	}

	opts.Logger.Info("encoded grid",
		"rects", len(set),
		"height", g.Height(),
		"width", g.Width(),
		"duration", result.Stats.EncodeTime)
	return result, nil
}

// Decode recovers the ordered rectangle set from g, consulting the cache first.
func (r *Runner) Decode(ctx context.Context, g *grid.Grid, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Grid: g, Hash: cache.Hash([]byte(g.String()))}
	key := r.Keyer.DecodeKey(result.Hash)

	if set, ok := r.cachedSet(ctx, key, opts); ok {
		result.Set = set
		result.CacheInfo.DecodeHit = true
		result.fill()
		return result, nil
	}

	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, g.Height(), g.Width())
	start := time.Now()
	set, err := codec.Decode(g)
	result.Stats.DecodeTime = time.Since(start)
	hooks.OnDecodeComplete(ctx, len(set), result.Stats.DecodeTime, err)
	if err != nil {
		opts.Logger.Debug("decode failed", "code", errors.GetCode(err), "duration", result.Stats.DecodeTime)
		return nil, err
	}

	result.Set = set
	result.fill()
	if data, err := json.Marshal(set.Tuples()); err == nil {
		r.store(ctx, keyTypeDecode, key, data, opts)
	}

	opts.Logger.Info("decoded grid",
		"rects", len(set),
		"height", g.Height(),
		"width", g.Width(),
		"duration", result.Stats.DecodeTime)
	return result, nil
}

// Verify encodes set with labels, decodes the grid, and checks that the
// decoded set equals the input. The result carries the labeled grid and the
// decoded set.
func (r *Runner) Verify(ctx context.Context, set rect.Set, opts Options) (*Result, error) {
	opts.Labels = true
	enc, err := r.Encode(ctx, set, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	dec, err := r.Decode(ctx, enc.Grid, opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if !dec.Set.Equal(set) {
		return nil, errors.New(errors.ErrCodeReconstructionMismatch,
			"round trip changed the set: encoded %d rectangles, decoded %d", len(set), len(dec.Set))
	}
	return &Result{
		Grid: enc.Grid,
		Set:  dec.Set,
		Hash: enc.Hash,
		Stats: Stats{
			Rects:      len(dec.Set),
			Height:     enc.Grid.Height(),
			Width:      enc.Grid.Width(),
			EncodeTime: enc.Stats.EncodeTime,
			DecodeTime: dec.Stats.DecodeTime,
		},
		CacheInfo: CacheInfo{EncodeHit: enc.CacheInfo.EncodeHit, DecodeHit: dec.CacheInfo.DecodeHit},
	}, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedGrid(ctx context.Context, key string, opts Options) (*grid.Grid, bool) {
	data, ok := r.lookup(ctx, keyTypeEncode, key, opts)
	if !ok {
		return nil, false
	}
	g, err := grid.Parse(strings.Split(string(data), "\n"))
	if err != nil {
		opts.Logger.Warn("discarding unreadable cache entry", "key", key, "err", err)
		return nil, false
	}
	return g, true
}

func (r *Runner) cachedSet(ctx context.Context, key string, opts Options) (rect.Set, bool) {
	data, ok := r.lookup(ctx, keyTypeDecode, key, opts)
	if !ok {
		return nil, false
	}
	var tuples [][4]int
	if err := json.Unmarshal(data, &tuples); err != nil {
		opts.Logger.Warn("discarding unreadable cache entry", "key", key, "err", err)
		return nil, false
	}
	set, err := rect.New(tuples)
	if err != nil {
		opts.Logger.Warn("discarding invalid cache entry", "key", key, "err", err)
		return nil, false
	}
	return set, true
}

// lookup reads key unless opts.Refresh is set. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		opts.Logger.Debug("cache miss", "key", key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	opts.Logger.Debug("cache hit", "key", key)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, opts Options) {
	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (res *Result) fill() {
	res.Stats.Rects = len(res.Set)
	if res.Grid != nil {
		res.Stats.Height = res.Grid.Height()
		res.Stats.Width = res.Grid.Width()
	}
}
