package layout

import "math"

// Point is a position in layout space (or screen space, for camera output).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both components multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// DistSq returns the squared Euclidean distance to q. Hit testing compares
// squared distances to avoid the square root in the hot pointer-move path.
func (p Point) DistSq(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Rect is an axis-aligned rectangle identified by its min corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RectAround returns the rectangle of the given size centered on p.
func RectAround(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// IsEmpty reports whether the rectangle has no usable extent.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Union returns the smallest rectangle covering both r and o. An empty
// rectangle acts as the identity.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Expand grows the rectangle by pad on all four sides.
func (r Rect) Expand(pad float64) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Wedge is an annular sector in a radial layout: an angular span at a radial
// band around a center point. Angles are radians; spans never exceed one
// full revolution, so Start <= End always holds.
type Wedge struct {
	Center Point   `json:"center"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Inner  float64 `json:"inner"`
	Outer  float64 `json:"outer"`
}

// Contains reports whether the world-space point lies inside the wedge.
func (w Wedge) Contains(p Point) bool {
	d := p.Sub(w.Center)
	radius := math.Hypot(d.X, d.Y)
	if radius < w.Inner || radius > w.Outer {
		return false
	}
	angle := math.Atan2(d.Y, d.X)
	for angle < w.Start {
		angle += 2 * math.Pi
	}
	return angle <= w.End
}

// Mid returns the angular midpoint of the wedge.
func (w Wedge) Mid() float64 { return (w.Start + w.End) / 2 }

// Span returns the angular extent of the wedge.
func (w Wedge) Span() float64 { return w.End - w.Start }
