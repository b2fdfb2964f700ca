package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/orgview/pkg/layout"
	"github.com/matzehuels/orgview/pkg/org"
)

const svgPadding = 40.0

// SVGOption configures the standalone SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	thresholds org.Thresholds
	showEdges  bool
	cardW      float64
	cardH      float64
	dotRadius  float64
}

// WithThresholds sets the span-of-control thresholds used for outlines.
func WithThresholds(t org.Thresholds) SVGOption {
	return func(r *svgRenderer) { r.thresholds = t }
}

// WithSVGEdges draws the reporting edges.
func WithSVGEdges() SVGOption {
	return func(r *svgRenderer) { r.showEdges = true }
}

// WithCardSize overrides the card dimensions for the tree layout. They
// must match the geometry the layout was computed with.
func WithCardSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.cardW, r.cardH = w, h }
}

// RenderSVG renders a positioned layout as a standalone SVG document. Tree
// layouts draw one card per person; radial layouts draw wedge sectors with
// a marker dot at each node position.
func RenderSVG(f *org.Forest, res *layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{
		thresholds: org.DefaultThresholds,
		cardW:      180,
		cardH:      64,
		dotRadius:  6,
	}
	for _, opt := range opts {
		opt(&r)
	}

	frame := res.Bounds.Expand(svgPadding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.X, frame.Y, frame.W, frame.H, frame.W, frame.H)
	buf.WriteString(`  <style>text { font-family: sans-serif; }</style>` + "\n")

	if r.showEdges {
		r.renderEdges(&buf, f, res)
	}
	if res.Kind == layout.KindTree {
		r.renderCards(&buf, f, res)
	} else {
		r.renderWedges(&buf, f, res)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderEdges(buf *bytes.Buffer, f *org.Forest, res *layout.Result) {
	buf.WriteString(`  <g stroke="#C0C0C0" stroke-width="1.5" fill="none">` + "\n")
	for _, id := range res.ZOrder {
		n, ok := f.Lookup(id)
		if !ok || n.ParentID == "" {
			continue
		}
		from, okFrom := res.Positions[n.ParentID]
		to, okTo := res.Positions[id]
		if !okFrom || !okTo {
			continue
		}
		if res.Kind == layout.KindTree {
			// Elbow connector from the parent card bottom to the child top.
			midY := (from.Y + r.cardH/2 + to.Y - r.cardH/2) / 2
			fmt.Fprintf(buf, `    <path d="M %.1f %.1f V %.1f H %.1f V %.1f"/>`+"\n",
				from.X, from.Y+r.cardH/2, midY, to.X, to.Y-r.cardH/2)
		} else {
			fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
				from.X, from.Y, to.X, to.Y)
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderCards(buf *bytes.Buffer, f *org.Forest, res *layout.Result) {
	for _, id := range res.ZOrder {
		n, ok := f.Lookup(id)
		if !ok {
			continue
		}
		p := res.Positions[id]
		rect := layout.RectAround(p, r.cardW, r.cardH)

		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s"%s/>`+"\n",
			rect.X, rect.Y, rect.W, rect.H, nodeFill(n), healthStroke(n, r.thresholds))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" fill="white" font-size="13">%s</text>`+"\n",
			p.X, p.Y-2, escapeXML(n.Record.Name))
		if sub := cardSubtitle(n); sub != "" {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" fill="white" font-size="10" opacity="0.8">%s</text>`+"\n",
				p.X, p.Y+14, escapeXML(sub))
		}
	}
}

func (r *svgRenderer) renderWedges(buf *bytes.Buffer, f *org.Forest, res *layout.Result) {
	for _, id := range res.ZOrder {
		n, ok := f.Lookup(id)
		if !ok {
			continue
		}
		if w, okW := res.Wedges[id]; okW && w.Inner > 0 {
			fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="0.35" stroke="white" stroke-width="1"/>`+"\n",
				wedgePath(w), nodeFill(n))
		}
		p := res.Positions[id]
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"%s/>`+"\n",
			p.X, p.Y, r.dotRadius, nodeFill(n), healthStroke(n, r.thresholds))
	}
}

// wedgePath traces an annular sector as an SVG path: outer arc forward,
// inner arc back.
func wedgePath(w layout.Wedge) string {
	large := 0
	if w.Span() > math.Pi {
		large = 1
	}
	ox1, oy1 := polar(w.Center, w.Outer, w.Start)
	ox2, oy2 := polar(w.Center, w.Outer, w.End)
	ix1, iy1 := polar(w.Center, w.Inner, w.End)
	ix2, iy2 := polar(w.Center, w.Inner, w.Start)
	return fmt.Sprintf("M %.1f %.1f A %.1f %.1f 0 %d 1 %.1f %.1f L %.1f %.1f A %.1f %.1f 0 %d 0 %.1f %.1f Z",
		ox1, oy1, w.Outer, w.Outer, large, ox2, oy2,
		ix1, iy1, w.Inner, w.Inner, large, ix2, iy2)
}

func polar(c layout.Point, radius, angle float64) (float64, float64) {
	return c.X + radius*math.Cos(angle), c.Y + radius*math.Sin(angle)
}

func nodeFill(n *org.Node) string {
	if n.IsSynthetic() {
		return org.DefaultColor
	}
	return org.DepartmentColor(n.Record.Department)
}

func healthStroke(n *org.Node, t org.Thresholds) string {
	switch n.Health(t) {
	case org.HealthLow:
		return ` stroke="#B8860B" stroke-width="2"`
	case org.HealthHigh:
		return ` stroke="#B22222" stroke-width="2"`
	}
	return ""
}

func cardSubtitle(n *org.Node) string {
	if n.Record.Title != "" {
		return n.Record.Title
	}
	return n.Record.Department
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
