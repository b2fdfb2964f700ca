package org

import (
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
)

// Options configures a construction run.
type Options struct {
	// Logger receives structural warnings as they are discovered.
	// Defaults to a discard logger.
	Logger *log.Logger
}

// Build constructs a Forest from a slice of employee records.
//
// Construction is a fixed sequence of passes:
//
//  1. Normalize and filter rows with blank identifiers, then deduplicate
//     first-wins by input order.
//  2. Create one node per surviving row.
//  3. Link children to managers. Unknown manager references classify the row
//     as an orphan and promote it to a root candidate.
//  4. Depth-first traversal from every root candidate computes depth,
//     descendant counts and span-of-control figures while rejecting any edge
//     that would revisit a node on the active path. Nodes unreachable from
//     any candidate (closed reporting loops) are promoted to roots with
//     their looping edge severed, so every valid row ends up in exactly one
//     tree and traversal always terminates.
//  5. Root candidates are ordered by descending subtree size; the largest
//     becomes the primary tree.
//
// The only fatal failures are an empty dataset and a dataset with no usable
// identifiers; both return a coded error and no forest. Cycles and orphans
// are reported through Forest.Warnings.
func Build(records []Record, opts Options) (*Forest, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if len(records) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyDataset, "dataset contains no rows")
	}

	// Pass 1: normalize, drop blank identifiers, dedupe first-wins.
	index := make(map[string]*Node, len(records))
	order := make([]*Node, 0, len(records))
	duplicates := 0
	for _, rec := range records {
		rec = rec.Normalize()
		if rec.ID == "" {
			continue
		}
		if _, exists := index[rec.ID]; exists {
			duplicates++
			continue
		}
		n := &Node{Record: rec}
		index[rec.ID] = n
		order = append(order, n)
	}
	if len(order) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyDataset, "dataset contains no rows with usable identifiers")
	}

	var (
		warnings   []string
		orphanIDs  []string
		candidates []*Node
		cycle      bool
	)
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		logger.Warn(msg)
	}

	// Pass 2: link children to managers in input order.
	for _, n := range order {
		mgrID := n.Record.ManagerID
		if mgrID == "" {
			candidates = append(candidates, n)
			continue
		}
		mgr, ok := index[mgrID]
		switch {
		case !ok:
			warn("orphan: %s (%s) reports to unknown manager %s", n.Record.Name, n.ID(), mgrID)
			orphanIDs = append(orphanIDs, n.ID())
			candidates = append(candidates, n)
		case mgr == n:
			warn("cycle detected: %s reports to itself; treating as root", n.ID())
			cycle = true
			candidates = append(candidates, n)
		default:
			mgr.Children = append(mgr.Children, n)
			n.ParentID = mgrID
		}
	}

	// Pass 3: traverse from each candidate, computing metrics and rejecting
	// cycle edges.
	visited := make(map[string]bool, len(order))
	traverse := func(root *Node) {
		if visited[root.ID()] {
			return
		}
		root.Depth = 0
		visited[root.ID()] = true
		onPath := map[string]bool{root.ID(): true}
		stack := []*walkFrame{{node: root}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.next < len(f.node.Children) {
				child := f.node.Children[f.next]
				if onPath[child.ID()] {
					warn("cycle detected: edge %s -> %s rejected", f.node.ID(), child.ID())
					cycle = true
					f.node.Children = slices.Delete(f.node.Children, f.next, f.next+1)
					if child.ParentID == f.node.ID() {
						child.ParentID = ""
					}
					continue
				}
				f.next++
				if visited[child.ID()] {
					continue
				}
				child.Depth = f.node.Depth + 1
				visited[child.ID()] = true
				onPath[child.ID()] = true
				stack = append(stack, &walkFrame{node: child})
				continue
			}
			// All children processed: commit metrics bottom-up.
			n := f.node
			n.DirectReports = len(n.Children)
			n.Descendants = 0
			n.DirectFTE = 0
			for _, c := range n.Children {
				n.Descendants += c.SubtreeSize()
				n.DirectFTE += c.Record.FTE
			}
			delete(onPath, n.ID())
			stack = stack[:len(stack)-1]
		}
	}
	for _, root := range candidates {
		traverse(root)
	}

	// Pass 4: recover closed reporting loops. Any node still unvisited sits
	// in a cycle with no root; sever its manager edge and promote it.
	for _, n := range order {
		if visited[n.ID()] {
			continue
		}
		if mgr, ok := index[n.Record.ManagerID]; ok {
			if i := slices.Index(mgr.Children, n); i >= 0 {
				mgr.Children = slices.Delete(mgr.Children, i, i+1)
			}
		}
		n.ParentID = ""
		warn("cycle detected: reporting loop at %s has no root; promoting to root", n.ID())
		cycle = true
		candidates = append(candidates, n)
		traverse(n)
	}

	// Pass 5: largest tree wins the primary slot; ties keep input order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SubtreeSize() > candidates[j].SubtreeSize()
	})

	f := &Forest{
		DatasetID: uuid.NewString(),
		Root:      candidates[0],
		Secondary: candidates[1:],
		Index:     index,
		Warnings:  warnings,
	}

	rootIDs := make([]string, len(candidates))
	secondaryNodes := 0
	for i, r := range candidates {
		rootIDs[i] = r.ID()
		if i > 0 {
			secondaryNodes += r.SubtreeSize()
		}
	}
	f.Stats = Stats{
		TotalRows:     len(records),
		ValidRows:     len(order),
		DuplicateRows: duplicates,
		Orphans:       len(orphanIDs) + secondaryNodes,
		CycleDetected: cycle,
		RootIDs:       rootIDs,
	}

	logger.Debug("forest committed",
		"nodes", f.Stats.ValidRows,
		"roots", len(rootIDs),
		"orphans", f.Stats.Orphans,
		"cycle", cycle)

	return f, nil
}

// walkFrame is one explicit-stack frame of the construction traversal.
type walkFrame struct {
	node *Node
	next int
}
