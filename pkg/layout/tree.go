package layout

import (
	"github.com/matzehuels/orgview/pkg/org"
)

// Tree is the top-down tidy-tree strategy. Each node is assigned a
// horizontal position such that sibling subtrees never overlap and every
// parent sits at the centroid of its children; vertical position is
// proportional to traversal depth.
type Tree struct {
	NodeW     float64 // card width
	NodeH     float64 // card height
	HGap      float64 // minimum horizontal separation between sibling cards
	VGap      float64 // vertical separation between levels
	RegionGap float64 // separation between the primary region and secondary trees
}

// NewTree returns a tree strategy with the default card geometry.
func NewTree() *Tree {
	return &Tree{
		NodeW:     180,
		NodeH:     64,
		HGap:      24,
		VGap:      48,
		RegionGap: 160,
	}
}

// Name returns the layout kind.
func (t *Tree) Name() string { return KindTree }

// Layout positions every visible node of the forest. Trees are laid out
// independently left to right: the primary tree first, then each secondary
// tree in its own region separated by RegionGap, so regions never overlap.
func (t *Tree) Layout(f *org.Forest, opts Options) (*Result, error) {
	visible := opts.Scope.Visible(f)
	if opts.Unified {
		visible[org.SyntheticRootID] = true
	}

	res := &Result{
		Kind:        KindTree,
		Positions:   make(map[string]Point),
		LevelCounts: make(map[int]int),
	}

	xCursor := 0.0
	first := true
	for _, root := range layoutRoots(f, opts) {
		if !visible[root.ID()] {
			continue
		}
		if !first {
			xCursor += t.RegionGap
		}
		width := t.layoutTree(root, opts.Order, visible, xCursor, res)
		xCursor += width + t.HGap
		first = false
	}

	for _, p := range res.Positions {
		res.Bounds = res.Bounds.Union(RectAround(p, t.NodeW, t.NodeH))
	}
	res.Clusters = clustersFor(f, res, t.NodeW, t.NodeH)
	return res, nil
}

// treeFrame is one explicit-stack frame of the position pass.
type treeFrame struct {
	node    *org.Node
	kids    []*org.Node
	next    int
	level   int
	offset  float64 // left edge of this node's subtree extent
	cursor  float64 // running offset for the next child subtree
	centerX float64 // accumulated sum of child centers
}

// layoutTree computes positions for one rooted subtree starting at the given
// horizontal offset and returns the subtree's total extent.
func (t *Tree) layoutTree(root *org.Node, order SiblingOrder, visible map[string]bool, offset float64, res *Result) float64 {
	extents := t.measure(root, order, visible)

	stack := []*treeFrame{{
		node:   root,
		kids:   orderedChildren(root, order, visible),
		offset: offset,
		cursor: offset,
	}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.kids) {
			child := f.kids[f.next]
			f.next++
			cf := &treeFrame{
				node:   child,
				kids:   orderedChildren(child, order, visible),
				level:  f.level + 1,
				offset: f.cursor,
				cursor: f.cursor,
			}
			f.cursor += extents[child] + t.HGap
			stack = append(stack, cf)
			continue
		}

		// Children placed: position the node at the centroid of its
		// children, or centered in its own extent when it is a leaf.
		var x float64
		if len(f.kids) == 0 {
			x = f.offset + extents[f.node]/2
		} else {
			x = f.centerX / float64(len(f.kids))
		}
		y := float64(f.level) * (t.NodeH + t.VGap)
		id := f.node.ID()
		res.Positions[id] = Point{X: x, Y: y}
		res.LevelCounts[f.level]++
		res.ZOrder = append(res.ZOrder, id)

		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			stack[len(stack)-1].centerX += x
		}
	}
	return extents[root]
}

// measure computes each subtree's horizontal extent bottom-up: a leaf takes
// one card width, an interior node the larger of its own card and the sum of
// its children's extents plus gaps.
func (t *Tree) measure(root *org.Node, order SiblingOrder, visible map[string]bool) map[*org.Node]float64 {
	extents := make(map[*org.Node]float64)
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
		ext := 0.0
		for _, c := range f.kids {
			ext += extents[c]
		}
		if n := len(f.kids); n > 0 {
			ext += t.HGap * float64(n-1)
		}
		if ext < t.NodeW {
			ext = t.NodeW
		}
		extents[f.node] = ext
		stack = stack[:len(stack)-1]
	}
	return extents
}
