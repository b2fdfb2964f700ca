package org

// SyntheticRootID is the identifier of the aggregate root node returned by
// [Forest.Unified] when the dataset contains more than one true root.
const SyntheticRootID = "__company__"

// Node is a single position in the organizational forest. Once a Forest is
// committed, a Node's identity and parent/child edges never change; only
// derived views (layout, health classification) are recomputed.
type Node struct {
	Record Record // The employee record this node wraps

	// Children in encounter order. The slice is owned by the forest and
	// must not be mutated; layout strategies sort copies.
	Children []*Node

	// ParentID is a back-reference for lookup into the forest index, not an
	// owning pointer. Empty for roots.
	ParentID string

	// Computed during construction.
	Depth         int     // Root = 0, +1 per edge
	Descendants   int     // Total transitive report count
	DirectReports int     // len(Children) at commit time
	DirectFTE     float64 // Sum of children's FTE
}

// ID returns the node's employee identifier.
func (n *Node) ID() string { return n.Record.ID }

// IsLeaf reports whether the node has no reports.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsSynthetic reports whether the node is the aggregate root created by
// [Forest.Unified] rather than a real employee.
func (n *Node) IsSynthetic() bool { return n.Record.ID == SyntheticRootID }

// SubtreeSize returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) SubtreeSize() int { return 1 + n.Descendants }

// Health classifies the node's span of control against the given thresholds.
// The classification is derived from the stored direct report count on every
// call; it is never baked into the node.
func (n *Node) Health(t Thresholds) Health { return t.Classify(n.DirectReports) }

// Walk visits n and every node below it in depth-first pre-order. Traversal
// uses an explicit stack so degenerate chains (e.g. a 10,000-deep reporting
// line) cannot overflow the call stack. Children are visited in their
// committed encounter order.
func (n *Node) Walk(visit func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(cur)
		// Push children in reverse so the first child is processed first.
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// MaxDepth returns the deepest depth value found in the subtree rooted at n.
func (n *Node) MaxDepth() int {
	max := n.Depth
	n.Walk(func(d *Node) {
		if d.Depth > max {
			max = d.Depth
		}
	})
	return max
}

// LeafCount returns the number of leaves in the subtree rooted at n.
// A leaf node counts itself. Used as the angular weight in radial layouts.
func (n *Node) LeafCount() int {
	count := 0
	n.Walk(func(d *Node) {
		if d.IsLeaf() {
			count++
		}
	})
	return count
}
