package org

import (
	"slices"
	"sort"
)

// Stats carries dataset-level statistics for one construction run.
type Stats struct {
	TotalRows     int      `json:"total_rows"`     // Rows handed to Build, before any filtering
	ValidRows     int      `json:"valid_rows"`     // Rows surviving blank-ID filtering and dedupe
	DuplicateRows int      `json:"duplicate_rows"` // Later rows dropped by the first-wins policy
	Orphans       int      `json:"orphans"`        // Unknown-manager rows plus all secondary-tree nodes
	CycleDetected bool     `json:"cycle_detected"` // At least one manager reference closed a loop
	RootIDs       []string `json:"root_ids"`       // All root identifiers, primary first
}

// Forest is the committed result of one construction run: a primary tree,
// any number of secondary trees, and a full identifier index. A Forest is
// immutable after Build returns; derived views (layout, health, scoping) are
// recomputed from it rather than mutating it.
type Forest struct {
	// DatasetID uniquely identifies this construction run. It scopes cache
	// keys and API responses when multiple files are ingested in a session.
	DatasetID string

	// Root is the primary tree: the largest connected tree by total size.
	Root *Node

	// Secondary holds the roots of all other disconnected trees, sorted by
	// descending subtree size.
	Secondary []*Node

	// Index maps every committed identifier to its node, across all trees.
	// The synthetic aggregate root is added here only once Unified is called.
	Index map[string]*Node

	Stats Stats

	// Warnings are non-fatal structural findings (cycles, orphans) in the
	// order they were discovered.
	Warnings []string

	unified *Node
}

// Roots returns all true roots, primary first. The synthetic aggregate root
// is never included.
func (f *Forest) Roots() []*Node {
	roots := make([]*Node, 0, 1+len(f.Secondary))
	if f.Root != nil {
		roots = append(roots, f.Root)
	}
	return append(roots, f.Secondary...)
}

// NodeCount returns the number of committed nodes across all trees.
func (f *Forest) NodeCount() int {
	total := 0
	for _, r := range f.Roots() {
		total += r.SubtreeSize()
	}
	return total
}

// Lookup resolves an identifier to its node.
func (f *Forest) Lookup(id string) (*Node, bool) {
	n, ok := f.Index[id]
	return n, ok
}

// Walk visits every node in every tree in depth-first pre-order, primary
// tree first.
func (f *Forest) Walk(visit func(*Node)) {
	for _, r := range f.Roots() {
		r.Walk(visit)
	}
}

// Unified returns a single-tree view of the forest. With exactly one true
// root it returns that root unchanged. With multiple roots it returns a
// synthetic aggregate node whose children are the true roots, registered in
// the index under [SyntheticRootID]. The synthetic node sits above the
// committed depth-0 roots and carries aggregate metrics; committed nodes are
// never modified.
func (f *Forest) Unified() *Node {
	if len(f.Secondary) == 0 {
		return f.Root
	}
	if f.unified != nil {
		return f.unified
	}

	roots := f.Roots()
	agg := &Node{
		Record: Record{
			ID:   SyntheticRootID,
			Name: "Organization",
			FTE:  0,
		},
		Children:      roots,
		Depth:         -1, // sits above the committed depth-0 roots
		DirectReports: len(roots),
	}
	for _, r := range roots {
		agg.Descendants += r.SubtreeSize()
		agg.DirectFTE += r.Record.FTE
	}
	f.unified = agg
	if f.Index != nil {
		f.Index[SyntheticRootID] = agg
	}
	return agg
}

// Departments returns the distinct department names across all trees,
// sorted lexicographically.
func (f *Forest) Departments() []string {
	seen := make(map[string]bool)
	f.Walk(func(n *Node) {
		if n.Record.Department != "" {
			seen[n.Record.Department] = true
		}
	})
	depts := make([]string, 0, len(seen))
	for d := range seen {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	return depts
}

// MaxDepth returns the deepest committed depth across all trees.
func (f *Forest) MaxDepth() int {
	max := 0
	f.Walk(func(n *Node) {
		if n.Depth > max {
			max = n.Depth
		}
	})
	return max
}

// DepthCounts returns the number of nodes at each committed depth across all
// trees. Radial layouts use this to size rings so the most crowded depth
// cannot collide.
func (f *Forest) DepthCounts() map[int]int {
	counts := make(map[int]int)
	f.Walk(func(n *Node) {
		counts[n.Depth]++
	})
	return counts
}

// HasWarnings reports whether construction recorded any structural warnings.
func (f *Forest) HasWarnings() bool { return len(f.Warnings) > 0 }

// ContainsRoot reports whether id is one of the true root identifiers.
func (f *Forest) ContainsRoot(id string) bool {
	return slices.Contains(f.Stats.RootIDs, id)
}
