// Package pipeline provides the core org chart pipeline for orgview.
//
// It implements the complete build → layout → render flow shared by the
// CLI, the HTTP API, and the interactive viewer. Centralizing it here keeps
// caching and validation behavior identical across entry points.
//
// The pipeline consists of three stages:
//
//  1. Build: Validate employee records and commit the reporting forest
//  2. Layout: Compute positions for a visualization kind
//  3. Render: Generate output artifacts (SVG, DOT, JSON)
//
// Each stage can run independently or as part of the complete pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "people.csv",
//	    Kind:    "tree",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgview/pkg/cache"
	apperrors "github.com/matzehuels/orgview/pkg/errors"
	"github.com/matzehuels/orgview/pkg/layout"
	"github.com/matzehuels/orgview/pkg/org"
)

// Format constants for output artifacts.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// DefaultKind is the layout used when none is requested.
const DefaultKind = layout.KindTree

// Options contains all configuration for the pipeline. The struct
// serializes to JSON for API requests.
type Options struct {
	// Build options. Input is a CSV file path; Data is raw CSV bytes and
	// takes precedence when set.
	Input string `json:"input,omitempty"`
	Data  []byte `json:"data,omitempty"`

	// Thresholds classify span-of-control health in exports. Zero values
	// fall back to org.DefaultThresholds.
	Thresholds org.Thresholds `json:"thresholds,omitempty"`

	// Layout options.
	Kind       string `json:"kind,omitempty"`
	OrderBy    string `json:"order_by,omitempty"`
	Unified    bool   `json:"unified,omitempty"`
	MaxDepth   int    `json:"max_depth,omitempty"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`

	// Render options.
	Formats   []string `json:"formats,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	ShowEdges bool     `json:"show_edges,omitempty"`

	// Refresh bypasses cached layout and render results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Records []org.Record `json:"-"`
	Logger  *log.Logger  `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the committed reporting structure.
	Forest *org.Forest

	// ForestHash is the content hash of the serialized forest, used for
	// cache keys and API responses.
	ForestHash string

	// Layout holds the positioned nodes.
	Layout *layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	TreeCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per stage. The build stage is a pure
// in-memory transform and is always recomputed.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for the build stage.
func (o *Options) ValidateForBuild() error {
	if o.Input == "" && len(o.Data) == 0 && len(o.Records) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "input file, data, or records required")
	}
	if o.Thresholds == (org.Thresholds{}) {
		o.Thresholds = org.DefaultThresholds
	}
	if err := apperrors.ValidateThresholds(o.Thresholds.Low, o.Thresholds.High); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForLayout validates and sets defaults for the layout stage.
func (o *Options) ValidateForLayout() error {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if !layout.ValidKinds[o.Kind] {
		return apperrors.New(apperrors.ErrCodeInvalidViz, "invalid layout kind: %q (must be one of: tree, radial, wedge)", o.Kind)
	}
	if o.MaxDepth < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "max depth cannot be negative (got %d)", o.MaxDepth)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender validates and sets defaults for the render stage.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	return ValidateFormats(o.Formats)
}

// Scope returns the layout scope derived from the options.
func (o *Options) Scope() org.Scope {
	return org.Scope{
		MaxDepth:   o.MaxDepth,
		Department: o.Department,
		Location:   o.Location,
	}
}

// LayoutOptions returns the layout package options derived from the
// pipeline options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Order:   layout.OrderByName(o.OrderBy),
		Scope:   o.Scope(),
		Unified: o.Unified,
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Kind:       o.Kind,
		Order:      o.OrderBy,
		Unified:    o.Unified,
		MaxDepth:   o.MaxDepth,
		Department: o.Department,
		Location:   o.Location,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	theme := "plain"
	if o.Detailed {
		theme = "detailed"
	}
	if o.ShowEdges {
		theme += "+edges"
	}
	return cache.ArtifactKeyOpts{
		Format: format,
		Theme:  theme,
	}
}
