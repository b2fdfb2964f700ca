package layout

import (
	"math"
	"sort"

	"github.com/matzehuels/orgview/pkg/org"
)

// Radial maps a forest onto concentric rings. Each node's angular extent is
// proportional to its subtree's leaf weight inside its parent's span, and
// radius is purely a function of traversal depth. With DeptSectors enabled,
// the full circle is first divided into one fixed sector per top-level
// department, so a department's angular range is stable regardless of how
// large the other departments are.
type Radial struct {
	MinRing     float64 // minimum ring width
	NodeSize    float64 // marker diameter, drives ring sizing and cluster bounds
	RegionGap   float64 // separation between per-root circles
	DeptSectors bool    // wedge variant: fixed sector per top-level department
}

// NewRadial returns the proportional radial strategy with default geometry.
func NewRadial() *Radial {
	return &Radial{MinRing: 120, NodeSize: 36, RegionGap: 160}
}

// NewWedge returns the department-sector variant of the radial strategy.
func NewWedge() *Radial {
	r := NewRadial()
	r.DeptSectors = true
	return r
}

// Name returns the layout kind.
func (r *Radial) Name() string {
	if r.DeptSectors {
		return KindWedge
	}
	return KindRadial
}

// Layout positions every visible node. Each root gets its own circle;
// circles are placed left to right so disconnected trees never overlap.
func (r *Radial) Layout(f *org.Forest, opts Options) (*Result, error) {
	visible := opts.Scope.Visible(f)
	if opts.Unified {
		visible[org.SyntheticRootID] = true
	}

	res := &Result{
		Kind:        r.Name(),
		Positions:   make(map[string]Point),
		Wedges:      make(map[string]Wedge),
		LevelCounts: make(map[int]int),
	}

	xCursor := 0.0
	first := true
	for _, root := range layoutRoots(f, opts) {
		if !visible[root.ID()] {
			continue
		}
		levels := levelCounts(root, opts.Order, visible)
		ring := r.ringWidth(levels)
		radius := float64(maxLevel(levels)) * ring

		if !first {
			xCursor += r.RegionGap
		}
		center := Point{X: xCursor + radius, Y: 0}
		r.layoutCircle(root, opts.Order, visible, center, ring, res)
		xCursor += 2*radius + r.NodeSize
		first = false
	}

	for _, p := range res.Positions {
		res.Bounds = res.Bounds.Union(RectAround(p, r.NodeSize, r.NodeSize))
	}
	res.Clusters = clustersFor(f, res, r.NodeSize, r.NodeSize)
	return res, nil
}

// ringWidth picks the per-level radial step. The width must be large enough
// that the most crowded ring keeps at least one marker of arc length per
// node: for count nodes on ring d, circumference 2*pi*d*ring must cover
// count*NodeSize.
func (r *Radial) ringWidth(levels map[int]int) float64 {
	ring := r.MinRing
	for level, count := range levels {
		if level == 0 || count == 0 {
			continue
		}
		needed := float64(count) * r.NodeSize / (2 * math.Pi * float64(level))
		if needed > ring {
			ring = needed
		}
	}
	return ring
}

// radialFrame is one explicit-stack frame of the angular assignment pass.
type radialFrame struct {
	node  *org.Node
	level int
	span  Wedge // the angular sector allotted to this subtree
}

// layoutCircle assigns angular spans and positions for one rooted subtree
// around the given center.
func (r *Radial) layoutCircle(root *org.Node, order SiblingOrder, visible map[string]bool, center Point, ring float64, res *Result) {
	weights := leafWeights(root, order, visible)

	full := Wedge{Center: center, Start: 0, End: 2 * math.Pi}
	stack := []radialFrame{{node: root, span: full}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		radius := float64(f.level) * ring
		angle := f.span.Mid()
		pos := center
		if f.level > 0 {
			pos = Point{
				X: center.X + radius*math.Cos(angle),
				Y: center.Y + radius*math.Sin(angle),
			}
		}
		id := f.node.ID()
		res.Positions[id] = pos
		res.LevelCounts[f.level]++
		res.ZOrder = append(res.ZOrder, id)

		band := Wedge{
			Center: center,
			Start:  f.span.Start,
			End:    f.span.End,
			Inner:  math.Max(0, radius-ring/2),
			Outer:  radius + ring/2,
		}
		res.Wedges[id] = band

		kids := orderedChildren(f.node, order, visible)
		if len(kids) == 0 {
			continue
		}

		var spans []Wedge
		if r.DeptSectors && f.level == 0 {
			spans = r.sectorSpans(kids, weights, f.span)
		} else {
			spans = proportionalSpans(kids, weights, f.span)
		}
		// Push children in reverse so draw order follows sibling order.
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, radialFrame{node: kids[i], level: f.level + 1, span: spans[i]})
		}
	}
}

// proportionalSpans divides the parent span among children in proportion to
// their leaf weights, in sibling order.
func proportionalSpans(kids []*org.Node, weights map[*org.Node]float64, parent Wedge) []Wedge {
	total := 0.0
	for _, c := range kids {
		total += weights[c]
	}
	if total == 0 {
		total = float64(len(kids))
	}

	spans := make([]Wedge, len(kids))
	cursor := parent.Start
	for i, c := range kids {
		w := weights[c]
		if w == 0 {
			w = 1
		}
		extent := parent.Span() * w / total
		spans[i] = Wedge{Center: parent.Center, Start: cursor, End: cursor + extent}
		cursor += extent
	}
	return spans
}

// sectorSpans allocates one equal, department-keyed sector per top-level
// department (sorted by name, so the mapping is stable), then divides each
// sector proportionally among that department's subtrees.
func (r *Radial) sectorSpans(kids []*org.Node, weights map[*org.Node]float64, parent Wedge) []Wedge {
	departments := make(map[string][]int)
	var names []string
	for i, c := range kids {
		d := c.Record.Department
		if _, seen := departments[d]; !seen {
			names = append(names, d)
		}
		departments[d] = append(departments[d], i)
	}
	sort.Strings(names)

	spans := make([]Wedge, len(kids))
	sector := parent.Span() / float64(len(names))
	for di, name := range names {
		sectorWedge := Wedge{
			Center: parent.Center,
			Start:  parent.Start + float64(di)*sector,
			End:    parent.Start + float64(di+1)*sector,
		}
		members := departments[name]
		group := make([]*org.Node, len(members))
		for i, idx := range members {
			group[i] = kids[idx]
		}
		groupSpans := proportionalSpans(group, weights, sectorWedge)
		for i, idx := range members {
			spans[idx] = groupSpans[i]
		}
	}
	return spans
}

// leafWeights computes each subtree's visible leaf count, the angular weight
// used for span division.
func leafWeights(root *org.Node, order SiblingOrder, visible map[string]bool) map[*org.Node]float64 {
	weights := make(map[*org.Node]float64)
	type frame struct {
		node *org.Node
		kids []*org.Node
		next int
	}
	stack := []*frame{{node: root, kids: orderedChildren(root, order, visible)}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.kids) {
			child := f.kids[f.next]
			f.next++
			stack = append(stack, &frame{node: child, kids: orderedChildren(child, order, visible)})
			continue
		}
		w := 0.0
		for _, c := range f.kids {
			w += weights[c]
		}
		if len(f.kids) == 0 {
			w = 1
		}
		weights[f.node] = w
		stack = stack[:len(stack)-1]
	}
	return weights
}

// levelCounts tallies visible nodes per traversal level below root.
func levelCounts(root *org.Node, order SiblingOrder, visible map[string]bool) map[int]int {
	counts := make(map[int]int)
	type frame struct {
		node  *org.Node
		level int
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		counts[f.level]++
		for _, c := range orderedChildren(f.node, order, visible) {
			stack = append(stack, frame{node: c, level: f.level + 1})
		}
	}
	return counts
}

func maxLevel(levels map[int]int) int {
	max := 0
	for l := range levels {
		if l > max {
			max = l
		}
	}
	return max
}
