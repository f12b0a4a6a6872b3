package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/factsmission/tlds/pkg/cache"
	"github.com/factsmission/tlds/pkg/errors"
	tldsio "github.com/factsmission/tlds/pkg/io"
	"github.com/factsmission/tlds/pkg/observability"
	"github.com/factsmission/tlds/pkg/rdf"
	"github.com/factsmission/tlds/pkg/rdfa"
	"github.com/factsmission/tlds/pkg/render"
)

// Cache key types reported to observability hooks.
const (
	keyTypeGraph    = "graph"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, registries and logger; it
// doesn't store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Registry serves escaped output; RawRegistry serves Options.Raw.
	Registry    *render.Registry
	RawRegistry *render.Registry
}

// NewRunner creates a runner with the given cache, keyer and registry.
// If cache is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
// If registry is nil, [render.Default] is used.
// Raw rendering always uses the default providers with escaping disabled.
func NewRunner(c cache.Cache, keyer cache.Keyer, registry *render.Registry, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	if registry == nil {
		registry = render.Default(rdfa.WithLogger(logger))
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		Registry:    registry,
		RawRegistry: render.Default(rdfa.WithRawOutput(), rdfa.WithLogger(logger)),
	}
}

// Execute loads, hashes and renders a graph with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	registry := r.Registry
	if opts.Raw {
		registry = r.RawRegistry
	}
	if _, ok := registry.Lookup(opts.Format); !ok {
		return nil, errors.NewUnsupportedFormat(opts.Format, registry.Formats()...)
	}

	result := &Result{Format: opts.Format}

	// Stage 1: Load
	loadStart := time.Now()
	g, canonical, err := r.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.GraphHash = cache.Hash(canonical)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.TripleCount, result.Stats.SubjectCount = count(g)

	logger.Info("loaded graph",
		"triples", result.Stats.TripleCount,
		"subjects", result.Stats.SubjectCount,
		"hash", result.GraphHash[:12],
		"duration", result.Stats.LoadTime)

	if opts.GraphHash == "" {
		r.store(ctx, keyTypeGraph, r.Keyer.GraphKey(result.GraphHash), canonical, opts.TTL)
	}

	// Stage 2: Render
	artifactKey := r.Keyer.ArtifactKey(result.GraphHash, opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if data, hit := r.lookup(ctx, keyTypeArtifact, artifactKey); hit {
			result.Artifact = data
			result.CacheHit = true
			logger.Info("served cached artifact", "format", opts.Format, "bytes", len(data))
			return result, nil
		}
	}

	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Format, result.Stats.TripleCount)
	var buf bytes.Buffer
	err = registry.Serialize(&buf, g, opts.Format)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, opts.Format, buf.Len(), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifact = buf.Bytes()

	logger.Info("rendered graph",
		"format", opts.Format,
		"bytes", len(result.Artifact),
		"duration", result.Stats.RenderTime)

	r.store(ctx, keyTypeArtifact, artifactKey, result.Artifact, opts.TTL)
	return result, nil
}

// load resolves the graph source and returns the graph with its canonical
// JSON export.
func (r *Runner) load(ctx context.Context, opts Options) (rdf.Graph, []byte, error) {
	var g rdf.Graph
	switch {
	case opts.Input != "":
		start := time.Now()
		mg, err := tldsio.ImportFile(opts.Input)
		n := 0
		if mg != nil {
			n = mg.Len()
		}
		observability.Render().OnLoadComplete(ctx, "file", n, time.Since(start), err)
		if err != nil {
			return nil, nil, err
		}
		g = mg

	case opts.GraphHash != "":
		data, hit := r.lookup(ctx, keyTypeGraph, r.Keyer.GraphKey(opts.GraphHash))
		if !hit {
			return nil, nil, errors.New(errors.ErrCodeNotFound, "graph %s is not stored", opts.GraphHash)
		}
		mg, err := tldsio.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored graph %s", opts.GraphHash)
		}
		g = mg

	default:
		g = opts.Graph
	}

	var buf bytes.Buffer
	if err := tldsio.WriteJSON(g, &buf); err != nil {
		return nil, nil, err
	}
	return g, buf.Bytes(), nil
}

// lookup reads key from the cache. Backend errors are logged and treated as
// misses so a broken cache never fails a render.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// count returns the number of triples and distinct subjects in g.
func count(g rdf.Graph) (triples, subjects int) {
	seen := make(map[rdf.Subject]struct{})
	for t := range g.Triples() {
		triples++
		seen[t.Subject] = struct{}{}
	}
	return triples, len(seen)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
