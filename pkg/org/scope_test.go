package org

import "testing"

func scopeForest(t *testing.T) *Forest {
	t.Helper()
	records := []Record{
		{ID: "1", Name: "A", Department: "Exec", Location: "NYC"},
		{ID: "2", Name: "B", ManagerID: "1", Department: "Engineering", Location: "NYC"},
		{ID: "3", Name: "C", ManagerID: "1", Department: "Sales", Location: "SF"},
		{ID: "4", Name: "D", ManagerID: "2", Department: "Engineering", Location: "Berlin"},
		{ID: "5", Name: "E", ManagerID: "4", Department: "Engineering", Location: "Berlin"},
	}
	f, err := Build(records, Options{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return f
}

func TestScopeZeroShowsEverything(t *testing.T) {
	f := scopeForest(t)
	visible := Scope{}.Visible(f)
	if len(visible) != 5 {
		t.Errorf("visible = %d nodes, want 5", len(visible))
	}
}

func TestScopeMaxDepth(t *testing.T) {
	f := scopeForest(t)
	visible := Scope{MaxDepth: 1}.Visible(f)
	for _, id := range []string{"1", "2", "3"} {
		if !visible[id] {
			t.Errorf("node %s should be visible at depth limit 1", id)
		}
	}
	for _, id := range []string{"4", "5"} {
		if visible[id] {
			t.Errorf("node %s should be hidden at depth limit 1", id)
		}
	}
}

func TestScopeDepartmentKeepsAncestors(t *testing.T) {
	f := scopeForest(t)
	visible := Scope{Department: "Engineering"}.Visible(f)
	// Engineering nodes plus their ancestor path (the Exec root).
	for _, id := range []string{"1", "2", "4", "5"} {
		if !visible[id] {
			t.Errorf("node %s should be visible", id)
		}
	}
	if visible["3"] {
		t.Error("Sales node should be hidden")
	}
}

func TestScopeLocation(t *testing.T) {
	f := scopeForest(t)
	visible := Scope{Location: "Berlin"}.Visible(f)
	for _, id := range []string{"1", "2", "4", "5"} {
		if !visible[id] {
			t.Errorf("node %s should be visible (Berlin subtree or ancestor)", id)
		}
	}
	if visible["3"] {
		t.Error("SF-only node should be hidden")
	}
}

func TestScopeNeverMutatesForest(t *testing.T) {
	f := scopeForest(t)
	before := f.NodeCount()
	childrenBefore := len(f.Root.Children)

	Scope{Department: "Engineering", MaxDepth: 1}.Visible(f)

	if f.NodeCount() != before {
		t.Error("scope mutated node count")
	}
	if len(f.Root.Children) != childrenBefore {
		t.Error("scope mutated committed children")
	}
}
