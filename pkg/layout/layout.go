// Package layout assigns spatial positions to organizational forests.
//
// Two interchangeable strategies share one contract: given a committed
// [org.Forest] and per-node sibling ordering, produce a position for every
// visible node. [Tree] arranges nodes top-down in Cartesian space; [Radial]
// maps the same structure onto concentric rings, with an optional
// department-sector variant.
//
// Both strategies are deterministic: the same forest and the same options
// always yield bit-identical output, with no hidden randomness. Forests with
// multiple roots are laid out per tree and offset into disjoint regions.
package layout

import (
	"sort"
	"strings"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
	"github.com/matzehuels/orgview/pkg/org"
)

// Visualization kinds.
const (
	KindTree   = "tree"
	KindRadial = "radial"
	KindWedge  = "wedge"
)

// ValidKinds is the set of supported layout strategies.
var ValidKinds = map[string]bool{
	KindTree:   true,
	KindRadial: true,
	KindWedge:  true,
}

// ForKind resolves a layout kind name to a strategy with default geometry.
func ForKind(kind string) (Strategy, error) {
	switch kind {
	case KindTree:
		return NewTree(), nil
	case KindRadial:
		return NewRadial(), nil
	case KindWedge:
		return NewWedge(), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidViz, "invalid layout kind: %q (must be one of: tree, radial, wedge)", kind)
}

// Strategy is a layout algorithm over a committed forest.
type Strategy interface {
	// Name returns the layout kind identifier.
	Name() string
	// Layout computes positions for every visible node.
	Layout(f *org.Forest, opts Options) (*Result, error)
}

// Options are shared by all strategies.
type Options struct {
	// Order determines sibling ordering. Nil means [ByDepartment].
	Order SiblingOrder

	// Scope optionally narrows the visible node set. The zero scope shows
	// everything.
	Scope org.Scope

	// Unified lays out the forest under the synthetic aggregate root instead
	// of placing secondary trees in their own regions.
	Unified bool
}

// Result is the positioned node graph a strategy produces. All coordinates
// live in layout space; the camera transform maps them to screen space.
type Result struct {
	Kind string `json:"kind"`

	// Positions maps node ID to its center point. For radial kinds this is
	// the Cartesian projection of the node's polar position.
	Positions map[string]Point `json:"positions"`

	// Wedges carries the angular sector of each node for radial kinds.
	// Empty for the tree layout.
	Wedges map[string]Wedge `json:"wedges,omitempty"`

	// Bounds is the union of all node extents, used for fit-to-bounds.
	Bounds Rect `json:"bounds"`

	// LevelCounts is the number of positioned nodes per depth level.
	LevelCounts map[int]int `json:"level_counts"`

	// Clusters describes per-department groupings for background decoration.
	Clusters []Cluster `json:"clusters,omitempty"`

	// ZOrder lists node IDs in draw order (first drawn lowest). Hit testing
	// prefers the topmost match, so ties resolve to the last entry.
	ZOrder []string `json:"z_order"`
}

// Cluster is a department grouping with its display color and extent.
type Cluster struct {
	Department string  `json:"department"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Bounds     Rect    `json:"bounds"`
	Start      float64 `json:"start,omitempty"` // angular range, radial kinds only
	End        float64 `json:"end,omitempty"`
}

// SiblingOrder compares two sibling nodes for layout ordering. Negative
// means a sorts before b.
type SiblingOrder func(a, b *org.Node) int

// ByDepartment orders siblings by department name, then display name, then
// identifier. This is the default ordering.
func ByDepartment(a, b *org.Node) int {
	if c := strings.Compare(a.Record.Department, b.Record.Department); c != 0 {
		return c
	}
	return ByName(a, b)
}

// ByName orders siblings by display name, then identifier.
func ByName(a, b *org.Node) int {
	if c := strings.Compare(a.Record.Name, b.Record.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Record.ID, b.Record.ID)
}

// BySize orders siblings by descending subtree size, then identifier.
func BySize(a, b *org.Node) int {
	if d := b.SubtreeSize() - a.SubtreeSize(); d != 0 {
		return d
	}
	return strings.Compare(a.Record.ID, b.Record.ID)
}

// OrderByName resolves a user-facing ordering name. Unknown names fall back
// to the default.
func OrderByName(name string) SiblingOrder {
	switch name {
	case "name":
		return ByName
	case "size":
		return BySize
	default:
		return ByDepartment
	}
}

// orderedChildren returns a sorted copy of the node's visible children.
// The committed child slice is never reordered; determinism comes from the
// comparator with subtree size then ID as tie-breakers.
func orderedChildren(n *org.Node, order SiblingOrder, visible map[string]bool) []*org.Node {
	if order == nil {
		order = ByDepartment
	}
	kids := make([]*org.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if visible == nil || visible[c.ID()] {
			kids = append(kids, c)
		}
	}
	sort.SliceStable(kids, func(i, j int) bool {
		if c := order(kids[i], kids[j]); c != 0 {
			return c < 0
		}
		if d := kids[j].SubtreeSize() - kids[i].SubtreeSize(); d != 0 {
			return d < 0
		}
		return kids[i].Record.ID < kids[j].Record.ID
	})
	return kids
}

// layoutRoots resolves which roots a strategy lays out, honoring the
// Unified option.
func layoutRoots(f *org.Forest, opts Options) []*org.Node {
	if opts.Unified {
		if root := f.Unified(); root != nil {
			return []*org.Node{root}
		}
		return nil
	}
	return f.Roots()
}

// clustersFor aggregates positioned nodes by department.
func clustersFor(f *org.Forest, res *Result, nodeW, nodeH float64) []Cluster {
	byDept := make(map[string]*Cluster)
	var names []string
	for id, p := range res.Positions {
		n, ok := f.Lookup(id)
		if !ok || n.IsSynthetic() {
			continue
		}
		dept := n.Record.Department
		c, ok := byDept[dept]
		if !ok {
			c = &Cluster{Department: dept, Color: org.DepartmentColor(dept)}
			byDept[dept] = c
			names = append(names, dept)
		}
		c.Count++
		c.Bounds = c.Bounds.Union(RectAround(p, nodeW, nodeH))
		if w, ok := res.Wedges[id]; ok {
			if c.Count == 1 {
				c.Start, c.End = w.Start, w.End
			} else {
				if w.Start < c.Start {
					c.Start = w.Start
				}
				if w.End > c.End {
					c.End = w.End
				}
			}
		}
	}
	sort.Strings(names)
	clusters := make([]Cluster, 0, len(names))
	for _, name := range names {
		clusters = append(clusters, *byDept[name])
	}
	return clusters
}
