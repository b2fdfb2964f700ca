// Package view owns the camera transform and pointer hit testing that sit
// between layout space and the screen.
//
// The [Camera] maps layout-space coordinates to screen pixels through a
// uniform scale and a translation. Every mutation (pan, zoom, fit, reset,
// absolute set) funnels through a single constraint function, so all
// operations share one invariant: the content's bounding shape can never be
// pushed entirely outside the visible viewport plus a safety margin.
//
// Hit testing inverts the same transform and resolves the pointer to a node
// in the active layout, with per-strategy containment rules.
package view

import (
	"math"

	"github.com/matzehuels/orgview/pkg/layout"
)

// minFitExtent is the extent substituted for a degenerate (zero-size)
// bounding box during fit-to-bounds, so a single node never produces an
// infinite scale.
const minFitExtent = 1.0

// Config bounds the camera.
type Config struct {
	MinZoom  float64 `json:"min_zoom"`
	MaxZoom  float64 `json:"max_zoom"`
	ZoomStep float64 `json:"zoom_step"` // multiplicative step for ZoomIn/ZoomOut
	Margin   float64 `json:"margin"`    // safety margin in screen pixels
}

// DefaultConfig returns the standard camera bounds.
func DefaultConfig() Config {
	return Config{MinZoom: 0.1, MaxZoom: 8.0, ZoomStep: 1.2, Margin: 48}
}

// Transform is the exported camera state: the translation and scale the
// renderer applies.
type Transform struct {
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
	Scale float64 `json:"scale"`
}

// Camera owns a pan/zoom transform over a content rectangle.
// It is not safe for concurrent use; interaction events arrive on one
// goroutine.
type Camera struct {
	cfg      Config
	viewport layout.Rect // screen space, origin at (0,0)
	content  layout.Rect // layout space

	tx, ty float64
	scale  float64
}

// New creates a camera over the given viewport size with the identity
// transform.
func New(cfg Config, viewportW, viewportH float64) *Camera {
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = DefaultConfig().MinZoom
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MaxZoom = DefaultConfig().MaxZoom
		if cfg.MaxZoom < cfg.MinZoom {
			cfg.MaxZoom = cfg.MinZoom
		}
	}
	if cfg.ZoomStep <= 1 {
		cfg.ZoomStep = DefaultConfig().ZoomStep
	}
	c := &Camera{
		cfg:      cfg,
		viewport: layout.Rect{W: viewportW, H: viewportH},
		scale:    1,
	}
	c.constrain()
	return c
}

// Transform returns the current translation and scale.
func (c *Camera) Transform() Transform {
	return Transform{TX: c.tx, TY: c.ty, Scale: c.scale}
}

// Scale returns the current zoom factor.
func (c *Camera) Scale() float64 { return c.scale }

// Viewport returns the current viewport rectangle.
func (c *Camera) Viewport() layout.Rect { return c.viewport }

// SetViewport resizes the viewport (e.g. on window resize) and re-applies
// the constraint.
func (c *Camera) SetViewport(w, h float64) {
	c.viewport = layout.Rect{W: w, H: h}
	c.constrain()
}

// SetContent installs the content bounding box the constraint protects.
func (c *Camera) SetContent(r layout.Rect) {
	c.content = r
	c.constrain()
}

// Pan translates the camera by a screen-space delta. Called continuously
// during a drag; the cost is two additions and one clamp.
func (c *Camera) Pan(dx, dy float64) {
	c.tx += dx
	c.ty += dy
	c.constrain()
}

// ZoomIn zooms by one step around the viewport center.
func (c *Camera) ZoomIn() { c.ZoomAt(c.viewport.Center(), c.cfg.ZoomStep) }

// ZoomOut zooms out by one step around the viewport center.
func (c *Camera) ZoomOut() { c.ZoomAt(c.viewport.Center(), 1/c.cfg.ZoomStep) }

// ZoomAt multiplies the scale by factor, clamped to the configured range,
// keeping the layout-space point under the screen-space pivot stationary.
func (c *Camera) ZoomAt(pivot layout.Point, factor float64) {
	next := clampf(c.scale*factor, c.cfg.MinZoom, c.cfg.MaxZoom)
	if next == c.scale {
		return
	}
	// Solve for the translation that keeps pivot over the same world point.
	world := c.ToWorld(pivot)
	c.scale = next
	c.tx = pivot.X - world.X*c.scale
	c.ty = pivot.Y - world.Y*c.scale
	c.constrain()
}

// Reset restores the identity transform (subject to the constraint).
func (c *Camera) Reset() {
	c.tx, c.ty = 0, 0
	c.scale = 1
	c.constrain()
}

// SetTransform installs an absolute transform, clamped and constrained.
func (c *Camera) SetTransform(t Transform) {
	c.scale = clampf(t.Scale, c.cfg.MinZoom, c.cfg.MaxZoom)
	c.tx, c.ty = t.TX, t.TY
	c.constrain()
}

// FitToBounds computes the scale that fits world (plus padding on all
// sides) inside the viewport, clamped to the zoom range, and centers it.
// A degenerate rectangle is expanded to a minimum extent instead of
// producing a NaN or infinite transform.
func (c *Camera) FitToBounds(world layout.Rect, padding float64) {
	if c.viewport.IsEmpty() {
		return
	}
	world = normalizeExtent(world)

	availW := c.viewport.W - 2*padding
	availH := c.viewport.H - 2*padding
	if availW <= 0 || availH <= 0 {
		availW, availH = c.viewport.W, c.viewport.H
	}

	scale := math.Min(availW/world.W, availH/world.H)
	c.scale = clampf(scale, c.cfg.MinZoom, c.cfg.MaxZoom)

	worldCenter := world.Center()
	viewCenter := c.viewport.Center()
	c.tx = viewCenter.X - worldCenter.X*c.scale
	c.ty = viewCenter.Y - worldCenter.Y*c.scale
	c.constrain()
}

// ToScreen maps a layout-space point to screen space.
func (c *Camera) ToScreen(p layout.Point) layout.Point {
	return layout.Point{X: p.X*c.scale + c.tx, Y: p.Y*c.scale + c.ty}
}

// ToWorld maps a screen-space point back to layout space.
func (c *Camera) ToWorld(p layout.Point) layout.Point {
	return layout.Point{X: (p.X - c.tx) / c.scale, Y: (p.Y - c.ty) / c.scale}
}

// constrain is the single funnel every mutation passes through. It clamps
// the scale and then forces at least Margin pixels of the content's
// projected bounds to stay inside the viewport on each axis. When the
// allowed translation interval collapses (content smaller than the margin),
// the content is centered instead.
func (c *Camera) constrain() {
	c.scale = clampf(c.scale, c.cfg.MinZoom, c.cfg.MaxZoom)
	if c.content.IsEmpty() || c.viewport.IsEmpty() {
		return
	}

	m := c.cfg.Margin
	c.tx = constrainAxis(c.tx, c.content.X, c.content.MaxX(), c.scale, c.viewport.W, m)
	c.ty = constrainAxis(c.ty, c.content.Y, c.content.MaxY(), c.scale, c.viewport.H, m)
}

// constrainAxis clamps a translation component so the projected content
// interval [min*scale+t, max*scale+t] keeps at least margin overlap with
// [0, view].
func constrainAxis(t, min, max, scale, view, margin float64) float64 {
	lo := margin - max*scale // content's projected max must stay >= margin
	hi := view - margin - min*scale
	if lo > hi {
		// Interval collapsed: center the content.
		return view/2 - (min+max)/2*scale
	}
	return clampf(t, lo, hi)
}

// normalizeExtent expands degenerate rectangles to a minimum usable extent
// around their center.
func normalizeExtent(r layout.Rect) layout.Rect {
	if r.W < minFitExtent {
		cx := r.X + r.W/2
		r.X = cx - minFitExtent/2
		r.W = minFitExtent
	}
	if r.H < minFitExtent {
		cy := r.Y + r.H/2
		r.Y = cy - minFitExtent/2
		r.H = minFitExtent
	}
	return r
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
