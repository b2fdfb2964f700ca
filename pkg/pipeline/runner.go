package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgview/pkg/cache"
	apperrors "github.com/matzehuels/orgview/pkg/errors"
	"github.com/matzehuels/orgview/pkg/export"
	"github.com/matzehuels/orgview/pkg/ingest"
	"github.com/matzehuels/orgview/pkg/layout"
	"github.com/matzehuels/orgview/pkg/observability"
	"github.com/matzehuels/orgview/pkg/org"
)

// Runner executes the pipeline with caching. It is stateless apart from
// the cache and logger, so one Runner can serve concurrent requests with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer defaults to DefaultKeyer; a nil
// cache disables caching via NullCache.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete build → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	buildStart := time.Now()
	f, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Forest = f
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = f.NodeCount()
	result.Stats.TreeCount = len(f.Roots())

	if data, err := export.MarshalForestContent(f, opts.Thresholds); err == nil {
		result.ForestHash = cache.Hash(data)
	}

	r.Logger.Info("committed forest",
		"nodes", f.NodeCount(),
		"trees", len(f.Roots()),
		"warnings", len(f.Warnings),
		"duration", result.Stats.BuildTime)

	layoutStart := time.Now()
	res, layoutHit, err := r.LayoutWithCacheInfo(ctx, f, result.ForestHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"kind", res.Kind,
		"positions", len(res.Positions),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, f, res, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build validates the input records and commits the reporting forest. The
// build stage is deterministic and in-memory, so it is never cached.
func (r *Runner) Build(ctx context.Context, opts Options) (*org.Forest, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	records := opts.Records
	if records == nil {
		var err error
		records, err = r.readRecords(opts)
		if err != nil {
			return nil, err
		}
	}

	observability.Pipeline().OnBuildStart(ctx, len(records))
	start := time.Now()
	f, err := org.Build(records, org.Options{Logger: opts.Logger})
	nodes := 0
	if f != nil {
		nodes = f.NodeCount()
	}
	observability.Pipeline().OnBuildComplete(ctx, nodes, time.Since(start), err)
	return f, err
}

func (r *Runner) readRecords(opts Options) ([]org.Record, error) {
	if len(opts.Data) > 0 {
		return ingest.ReadRecords(bytes.NewReader(opts.Data))
	}
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", opts.Input)
	}
	defer file.Close()
	return ingest.ReadRecords(file)
}

// LayoutWithCacheInfo computes a layout, reusing a cached result when the
// same forest and options were laid out before.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f *org.Forest, forestHash string, opts Options) (*layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(forestHash, opts.LayoutKeyOpts())
	if forestHash != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := export.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	strategy, err := layout.ForKind(opts.Kind)
	if err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Kind, f.NodeCount())
	start := time.Now()
	res, err := strategy.Layout(f, opts.LayoutOptions())
	observability.Pipeline().OnLayoutComplete(ctx, opts.Kind, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if forestHash != "" {
		if data, err := export.MarshalLayout(res); err == nil {
			if setErr := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); setErr == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}
	return res, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, f *org.Forest, forestHash string, opts Options) (*layout.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, f, forestHash, opts)
	return res, err
}

// RenderWithCacheInfo renders the requested formats, reusing cached
// artifacts keyed on the serialized layout.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f *org.Forest, res *layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := export.MarshalLayout(res)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()
		data, err := r.renderFormat(f, res, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, f *org.Forest, res *layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, res, opts)
	return artifacts, err
}

func (r *Runner) renderFormat(f *org.Forest, res *layout.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []export.SVGOption{export.WithThresholds(opts.Thresholds)}
		if opts.ShowEdges {
			svgOpts = append(svgOpts, export.WithSVGEdges())
		}
		return export.RenderSVG(f, res, svgOpts...), nil
	case FormatDOT:
		dot := export.ToDOT(f, export.DotOptions{Detailed: opts.Detailed, Thresholds: opts.Thresholds})
		return []byte(dot), nil
	case FormatJSON:
		return export.MarshalDocument(f, opts.Thresholds, res)
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q", format)
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
