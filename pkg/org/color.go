package org

import (
	"hash/fnv"
	"strings"
)

// palette is the fixed set of department colors. The assignment function
// below hashes a department name into this slice, so the same name yields
// the same color in every session and across re-parses.
var palette = [...]string{
	"#4E79A7", // blue
	"#F28E2B", // orange
	"#E15759", // red
	"#76B7B2", // teal
	"#59A14F", // green
	"#EDC948", // yellow
	"#B07AA1", // purple
	"#FF9DA7", // pink
	"#9C755F", // brown
	"#BAB0AC", // gray
	"#86BCB6", // seafoam
	"#D37295", // rose
	"#A0CBE8", // light blue
	"#F1CE63", // gold
}

// DefaultColor is assigned to nodes with no department.
const DefaultColor = "#8A8A8A"

// DepartmentColor returns the display color for a department name. The
// mapping is a pure function (FNV-1a hash into the fixed palette): no state
// is kept, so results are reproducible and safe to compute from any
// goroutine.
func DepartmentColor(department string) string {
	department = strings.TrimSpace(department)
	if department == "" {
		return DefaultColor
	}
	h := fnv.New32a()
	h.Write([]byte(department))
	return palette[h.Sum32()%uint32(len(palette))]
}

// PaletteSize returns the number of distinct department colors available.
func PaletteSize() int { return len(palette) }
