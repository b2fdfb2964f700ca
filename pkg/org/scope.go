package org

// Scope narrows which nodes of a committed forest are visible. Scoping is a
// derived view: it never mutates parent/child edges, it only computes a
// visibility set that layout strategies consult.
//
// The zero value is the unfiltered scope.
type Scope struct {
	// MaxDepth hides nodes deeper than this committed depth. Zero means
	// unlimited.
	MaxDepth int

	// Department keeps nodes in the named department plus their ancestors,
	// so the path from the root stays intact. Empty means all departments.
	Department string

	// Location behaves like Department for the location field.
	Location string
}

// IsZero reports whether the scope filters nothing.
func (s Scope) IsZero() bool {
	return s.MaxDepth == 0 && s.Department == "" && s.Location == ""
}

// matches reports whether the node itself satisfies the department and
// location selections.
func (s Scope) matches(n *Node) bool {
	if s.Department != "" && n.Record.Department != s.Department {
		return false
	}
	if s.Location != "" && n.Record.Location != s.Location {
		return false
	}
	return true
}

// Visible computes the set of visible node identifiers for the forest under
// this scope. A node is visible when it is within the depth limit and either
// matches the selections itself or has a matching node somewhere below it
// (ancestors of matches stay visible so trees never fracture).
func (s Scope) Visible(f *Forest) map[string]bool {
	visible := make(map[string]bool, len(f.Index))
	if s.IsZero() {
		for id := range f.Index {
			if id != SyntheticRootID {
				visible[id] = true
			}
		}
		return visible
	}

	for _, root := range f.Roots() {
		s.mark(root, visible)
	}
	return visible
}

// mark post-order walks the subtree, marking nodes that match or carry a
// matching descendant. Returns whether the subtree contains any match.
// Uses an explicit stack: scope filters run against the same degenerate
// inputs the builder does.
func (s Scope) mark(root *Node, visible map[string]bool) bool {
	type frame struct {
		node    *Node
		next    int
		carries bool
	}
	stack := []*frame{{node: root}}
	result := false
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if s.MaxDepth > 0 && f.node.Depth > s.MaxDepth {
			stack = stack[:len(stack)-1]
			continue
		}
		if f.next < len(f.node.Children) {
			child := f.node.Children[f.next]
			f.next++
			stack = append(stack, &frame{node: child})
			continue
		}
		match := f.carries || s.matches(f.node)
		if match {
			visible[f.node.ID()] = true
		}
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.carries = parent.carries || match
		} else {
			result = match
		}
	}
	return result
}
