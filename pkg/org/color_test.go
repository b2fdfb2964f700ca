package org

import "testing"

func TestDepartmentColorDeterministic(t *testing.T) {
	for _, dept := range []string{"Engineering", "Sales", "People Ops", ""} {
		first := DepartmentColor(dept)
		for i := 0; i < 5; i++ {
			if got := DepartmentColor(dept); got != first {
				t.Errorf("DepartmentColor(%q) unstable: %s then %s", dept, first, got)
			}
		}
	}
}

func TestDepartmentColorTrimsWhitespace(t *testing.T) {
	if DepartmentColor("Engineering") != DepartmentColor("  Engineering  ") {
		t.Error("trimmed and untrimmed names should share a color")
	}
}

func TestDepartmentColorEmptyUsesDefault(t *testing.T) {
	if got := DepartmentColor(""); got != DefaultColor {
		t.Errorf("DepartmentColor(\"\") = %s, want %s", got, DefaultColor)
	}
	if got := DepartmentColor("   "); got != DefaultColor {
		t.Errorf("DepartmentColor(blank) = %s, want %s", got, DefaultColor)
	}
}

func TestDepartmentColorInPalette(t *testing.T) {
	inPalette := func(c string) bool {
		for _, p := range palette {
			if p == c {
				return true
			}
		}
		return false
	}
	for _, dept := range []string{"Engineering", "Sales", "Finance", "Legal", "Support"} {
		if c := DepartmentColor(dept); !inPalette(c) {
			t.Errorf("DepartmentColor(%q) = %s, not in palette", dept, c)
		}
	}
}
