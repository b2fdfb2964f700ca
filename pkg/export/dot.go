package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orgview/pkg/org"
)

// DotOptions configures DOT output.
type DotOptions struct {
	// Detailed includes title, department, and report counts in node
	// labels. When false, only the display name is shown.
	Detailed bool

	// Thresholds classify span-of-control health for node outlines.
	Thresholds org.Thresholds
}

// ToDOT converts a forest to Graphviz DOT, one box per person with the
// reporting edges pointing from manager to report. Nodes are filled with
// their department color; unhealthy spans get a heavier outline.
func ToDOT(f *org.Forest, opts DotOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph org {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make([]string, 0, len(f.Index))
	for id := range f.Index {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := f.Index[id]
		if n.IsSynthetic() {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Record.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, id := range ids {
		n := f.Index[id]
		if n.IsSynthetic() || n.ParentID == "" || n.ParentID == org.SyntheticRootID {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", n.ParentID, n.Record.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *org.Node, opts DotOptions) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed)),
		fmt.Sprintf("fillcolor=%q", org.DepartmentColor(n.Record.Department)),
	}
	switch n.Health(opts.Thresholds) {
	case org.HealthLow:
		attrs = append(attrs, "penwidth=2", "color=\"#B8860B\"")
	case org.HealthHigh:
		attrs = append(attrs, "penwidth=2", "color=\"#B22222\"")
	}
	return attrs
}

func nodeLabel(n *org.Node, detailed bool) string {
	if !detailed {
		return n.Record.Name
	}
	parts := []string{n.Record.Name}
	if n.Record.Title != "" {
		parts = append(parts, n.Record.Title)
	}
	if n.Record.Department != "" {
		parts = append(parts, n.Record.Department)
	}
	parts = append(parts, fmt.Sprintf("reports: %d / org: %d", n.DirectReports, n.SubtreeSize()))
	return strings.Join(parts, "\n")
}

// RenderDot renders a DOT string to SVG using Graphviz.
func RenderDot(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header to a zero-origin
// viewBox so downstream consumers can treat the artifact as a plain image.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
