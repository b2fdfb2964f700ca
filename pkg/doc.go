// Package pkg provides the core libraries for Orgview org chart visualization.
//
// # Overview
//
// Orgview turns flat HR roster exports into reporting hierarchies and renders
// them as navigable org charts. The pkg directory is organized into a small
// set of focused packages:
//
//  1. [org] - Domain logic (record validation, forest construction, metrics)
//  2. [ingest] - Roster CSV parsing
//  3. [layout] - Deterministic tree and radial layout engines
//  4. [view] - Camera, viewport constraints and hit testing
//  5. [export] - JSON, DOT and SVG artifact generation
//  6. [pipeline] - Orchestration (build → layout → render) with caching
//
// # Architecture
//
// The typical data flow through Orgview:
//
//	Roster CSV
//	     ↓
//	[ingest] package (column mapping + row extraction)
//	     ↓
//	[org] package (validation, forest construction, metrics)
//	     ↓
//	[layout] package (tree or radial positions)
//	     ↓
//	[export] package (SVG/DOT/JSON output)
//
// # Quick Start
//
// Build a forest and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/orgview/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Input:   "roster.csv",
//	    Kind:    "tree",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// [org] - Record validation, deduplication, orphan adoption and cycle
// rejection, plus per-node rollups (descendant counts, FTE sums, span of
// control health).
//
// [layout] - Layout engines sharing one deterministic contract: identical
// input produces identical positions. Tree layouts use bottom-up extents;
// radial layouts assign proportional angular wedges per subtree.
//
// [view] - Pan/zoom camera with content-aware constraints, plus hit testers
// that resolve screen coordinates back to node IDs at any zoom level.
//
// [export] - Artifact generation: canonical JSON documents for the API,
// Graphviz DOT for external tooling, and standalone SVG charts.
//
// [cache] - Content-hash keyed caching with file, Redis and null backends.
// Layout results and rendered artifacts are cached; forest construction is
// deterministic and never cached.
//
// [pipeline] - The complete build → layout → render pipeline shared by the
// CLI, the terminal viewer and the HTTP API.
//
// [config] - TOML configuration for thresholds, layout geometry, camera
// limits and cache backends.
//
// [observability] - Process-wide hook registry for pipeline, cache and
// server instrumentation.
//
// [errors] - Coded errors with user-facing messages and input validation
// helpers.
//
// [org]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/org
// [ingest]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/ingest
// [layout]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/layout
// [view]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/view
// [export]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/export
// [cache]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/orgview/pkg/errors
package pkg
