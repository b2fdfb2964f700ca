// Package export serializes committed forests and layout results into
// interchange formats: deterministic JSON for caching and the HTTP API,
// Graphviz DOT, and standalone SVG.
package export

import (
	"encoding/json"
	"sort"

	"github.com/matzehuels/orgview/pkg/layout"
	"github.com/matzehuels/orgview/pkg/org"
)

// NodeJSON is the wire form of a single org node. Derived metrics are
// baked in at export time; health reflects the thresholds passed to
// MarshalForest.
type NodeJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ManagerID     string  `json:"manager_id,omitempty"`
	Department    string  `json:"department,omitempty"`
	Title         string  `json:"title,omitempty"`
	Location      string  `json:"location,omitempty"`
	FTE           float64 `json:"fte"`
	Depth         int     `json:"depth"`
	DirectReports int     `json:"direct_reports"`
	Descendants   int     `json:"descendants"`
	DirectFTE     float64 `json:"direct_fte"`
	Health        string  `json:"health"`
	Color         string  `json:"color"`
}

// ForestJSON is the wire form of a committed forest.
type ForestJSON struct {
	DatasetID string     `json:"dataset_id"`
	Stats     org.Stats  `json:"stats"`
	Warnings  []string   `json:"warnings,omitempty"`
	Nodes     []NodeJSON `json:"nodes"`
}

// DocumentJSON bundles a forest with its layout and camera transform, the
// shape the HTTP API and the TUI state file use.
type DocumentJSON struct {
	Forest *ForestJSON    `json:"forest"`
	Layout *layout.Result `json:"layout,omitempty"`
}

// ForestDocument converts a forest to its wire form. Nodes are sorted by
// identifier, so identical forests always serialize identically.
func ForestDocument(f *org.Forest, t org.Thresholds) *ForestJSON {
	nodes := make([]NodeJSON, 0, len(f.Index))
	for _, n := range f.Index {
		if n.IsSynthetic() {
			continue
		}
		nodes = append(nodes, NodeJSON{
			ID:            n.Record.ID,
			Name:          n.Record.Name,
			ManagerID:     n.ParentID,
			Department:    n.Record.Department,
			Title:         n.Record.Title,
			Location:      n.Record.Location,
			FTE:           n.Record.FTE,
			Depth:         n.Depth,
			DirectReports: n.DirectReports,
			Descendants:   n.Descendants,
			DirectFTE:     n.DirectFTE,
			Health:        n.Health(t).String(),
			Color:         org.DepartmentColor(n.Record.Department),
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return &ForestJSON{
		DatasetID: f.DatasetID,
		Stats:     f.Stats,
		Warnings:  f.Warnings,
		Nodes:     nodes,
	}
}

// MarshalForest serializes a forest as indented JSON.
func MarshalForest(f *org.Forest, t org.Thresholds) ([]byte, error) {
	return json.MarshalIndent(ForestDocument(f, t), "", "  ")
}

// MarshalForestContent serializes a forest for content addressing. The
// run-scoped dataset ID is omitted, so two builds of the same roster
// produce identical bytes and hash to the same cache key.
func MarshalForestContent(f *org.Forest, t org.Thresholds) ([]byte, error) {
	doc := ForestDocument(f, t)
	doc.DatasetID = ""
	return json.Marshal(doc)
}

// MarshalLayout serializes a layout result. Map keys are emitted in sorted
// order by encoding/json, so the output is deterministic.
func MarshalLayout(res *layout.Result) ([]byte, error) {
	return json.Marshal(res)
}

// UnmarshalLayout restores a layout result, used on the cache read path.
func UnmarshalLayout(data []byte) (*layout.Result, error) {
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// MarshalDocument serializes a forest together with its layout.
func MarshalDocument(f *org.Forest, t org.Thresholds, res *layout.Result) ([]byte, error) {
	return json.MarshalIndent(DocumentJSON{Forest: ForestDocument(f, t), Layout: res}, "", "  ")
}
