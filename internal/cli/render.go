package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
	"github.com/matzehuels/orgview/pkg/export"
	"github.com/matzehuels/orgview/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file path or base path for multiple formats
	kind       string // layout kind: tree, radial, wedge
	formats    []string // output formats: svg, dot, json
	orderBy    string // sibling ordering: department, name, size
	unified    bool   // aggregate all trees under one synthetic root
	maxDepth   int    // limit visible depth (0 = unlimited)
	department string // show only this department and its management chain
	location   string // show only this location and its management chain
	detailed   bool   // include titles and metrics in DOT labels
	showEdges  bool   // draw reporting edges in SVG output
	graphviz   bool   // pass DOT output through Graphviz to produce SVG
	refresh    bool   // bypass cached results
	noCache    bool   // disable the cache entirely
}

// newRenderCmd creates the render command for generating org chart
// artifacts from a roster CSV.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{kind: "tree", orderBy: "department"}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a roster as an org chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.kind, "type", "t", opts.kind, "layout type: tree (default), radial, wedge")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.orderBy, "order", opts.orderBy, "sibling ordering: department (default), name, size")
	cmd.Flags().BoolVar(&opts.unified, "unified", false, "aggregate disconnected trees under one root")
	cmd.Flags().IntVar(&opts.maxDepth, "depth", 0, "limit visible depth (0 = unlimited)")
	cmd.Flags().StringVar(&opts.department, "department", "", "scope to one department")
	cmd.Flags().StringVar(&opts.location, "location", "", "scope to one location")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include titles and metrics in DOT labels")
	cmd.Flags().BoolVar(&opts.showEdges, "edges", false, "draw reporting edges in SVG output")
	cmd.Flags().BoolVar(&opts.graphviz, "graphviz", false, "render DOT through Graphviz instead of writing DOT text")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// parseFormats parses the --format flag. Empty defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	c, err := openCache(ctx, opts.noCache)
	if err != nil {
		logger.Warnf("Cache disabled: %v", err)
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:      input,
		Kind:       opts.kind,
		OrderBy:    opts.orderBy,
		Unified:    opts.unified,
		MaxDepth:   opts.maxDepth,
		Department: opts.department,
		Location:   opts.location,
		Formats:    opts.formats,
		Detailed:   opts.detailed,
		ShowEdges:  opts.showEdges,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		if apperrors.IsFatal(err) {
			printError("%s", apperrors.UserMessage(err))
		}
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printSuccess("Org chart rendered")
	printStats(result.Stats.NodeCount, result.Stats.TreeCount, result.CacheInfo.LayoutHit)

	for _, format := range opts.formats {
		data := result.Artifacts[format]
		ext := format
		if format == pipeline.FormatDOT && opts.graphviz {
			if data, err = export.RenderDot(ctx, string(data)); err != nil {
				return err
			}
			ext = "svg"
		}
		path := outputPath(input, opts.output, opts.kind, ext, len(opts.formats) > 1)
		if err := apperrors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// outputPath derives the output file path. With multiple formats the
// format extension is always appended to the base.
func outputPath(input, output, kind, ext string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input)) + "-" + kind
	}
	return base + "." + ext
}
