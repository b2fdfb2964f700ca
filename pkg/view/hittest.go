package view

import (
	"github.com/matzehuels/orgview/pkg/layout"
)

// DefaultHitTolerance is the screen-space pick radius for dot markers, in
// pixels. The world-space tolerance is this divided by the current scale,
// so hit areas shrink as the user zooms in.
const DefaultHitTolerance = 12.0

// Tester resolves a layout-space point to a node identifier. The scale of
// the active camera is passed so testers with pointer tolerance can adjust
// it; containment testers ignore it.
type Tester interface {
	HitTest(world layout.Point, scale float64) (string, bool)
}

// RectTester tests the pointer against each node's card rectangle, for the
// tree layout. Candidates are checked in draw order and the topmost match
// wins.
type RectTester struct {
	res  *layout.Result
	w, h float64
}

// NewRectTester creates a card hit tester over a tree layout result.
func NewRectTester(res *layout.Result, cardW, cardH float64) *RectTester {
	return &RectTester{res: res, w: cardW, h: cardH}
}

// HitTest returns the topmost node whose card contains the point.
func (t *RectTester) HitTest(world layout.Point, _ float64) (string, bool) {
	// Walk draw order back to front so the first hit is the topmost node.
	for i := len(t.res.ZOrder) - 1; i >= 0; i-- {
		id := t.res.ZOrder[i]
		p, ok := t.res.Positions[id]
		if !ok {
			continue
		}
		if layout.RectAround(p, t.w, t.h).Contains(world) {
			return id, true
		}
	}
	return "", false
}

// WedgeTester tests the pointer against each node's annular sector, for
// radial layouts.
type WedgeTester struct {
	res *layout.Result
}

// NewWedgeTester creates a wedge hit tester over a radial layout result.
func NewWedgeTester(res *layout.Result) *WedgeTester {
	return &WedgeTester{res: res}
}

// HitTest returns the topmost node whose wedge contains the point. Deeper
// nodes are drawn later, so the innermost matching wedge band wins over the
// full-circle root band.
func (t *WedgeTester) HitTest(world layout.Point, _ float64) (string, bool) {
	for i := len(t.res.ZOrder) - 1; i >= 0; i-- {
		id := t.res.ZOrder[i]
		w, ok := t.res.Wedges[id]
		if !ok {
			continue
		}
		if w.Contains(world) {
			return id, true
		}
	}
	return "", false
}

// NearestTester resolves the pointer to the closest dot marker within a
// zoom-adjusted tolerance, using squared distances. Ties on distance go to
// the topmost node in draw order.
type NearestTester struct {
	res       *layout.Result
	tolerance float64 // screen pixels
}

// NewNearestTester creates a nearest-marker hit tester with the given
// screen-space tolerance. Zero means DefaultHitTolerance.
func NewNearestTester(res *layout.Result, tolerance float64) *NearestTester {
	if tolerance <= 0 {
		tolerance = DefaultHitTolerance
	}
	return &NearestTester{res: res, tolerance: tolerance}
}

// HitTest returns the node with the minimum squared distance under the
// tolerance. The tolerance is divided by scale so picking tightens as the
// chart is magnified.
func (t *NearestTester) HitTest(world layout.Point, scale float64) (string, bool) {
	if scale <= 0 {
		scale = 1
	}
	worldTol := t.tolerance / scale
	maxDistSq := worldTol * worldTol

	best := ""
	bestDistSq := maxDistSq
	for _, id := range t.res.ZOrder {
		p, ok := t.res.Positions[id]
		if !ok {
			continue
		}
		// <= keeps the later (topmost) node on exact ties.
		if d := p.DistSq(world); d <= bestDistSq {
			best = id
			bestDistSq = d
		}
	}
	return best, best != ""
}

// TesterFor picks the natural tester for a layout result.
func TesterFor(res *layout.Result, cardW, cardH float64) Tester {
	switch res.Kind {
	case layout.KindRadial, layout.KindWedge:
		return NewWedgeTester(res)
	default:
		return NewRectTester(res, cardW, cardH)
	}
}

// Engine binds a camera to a tester and tracks hover state. The same
// resolution runs on every pointer move (hover) and on pointer down
// (selection); hover changes are suppressed when the resolved identifier is
// unchanged so downstream consumers see no redundant updates.
type Engine struct {
	cam    *Camera
	tester Tester

	hovered  string
	hasHover bool
}

// NewEngine creates a hit-test engine over the camera and tester.
func NewEngine(cam *Camera, tester Tester) *Engine {
	return &Engine{cam: cam, tester: tester}
}

// SetTester swaps the tester (e.g. after a layout strategy change) and
// clears hover state.
func (e *Engine) SetTester(tester Tester) {
	e.tester = tester
	e.hovered = ""
	e.hasHover = false
}

// At resolves a screen-space pointer position to a node identifier through
// the inverse camera transform.
func (e *Engine) At(screen layout.Point) (string, bool) {
	if e.tester == nil {
		return "", false
	}
	return e.tester.HitTest(e.cam.ToWorld(screen), e.cam.Scale())
}

// Hover resolves the pointer like At but additionally reports whether the
// hovered node changed since the previous call. Callers skip downstream
// updates when changed is false.
func (e *Engine) Hover(screen layout.Point) (id string, hit bool, changed bool) {
	id, hit = e.At(screen)
	changed = !e.hasHover || id != e.hovered
	e.hovered = id
	e.hasHover = true
	return id, hit, changed
}

// Hovered returns the identifier from the last Hover call, if any.
func (e *Engine) Hovered() (string, bool) {
	return e.hovered, e.hasHover && e.hovered != ""
}
