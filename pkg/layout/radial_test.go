package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/orgview/pkg/org"
)

func TestRadialLayoutPositionsEveryNode(t *testing.T) {
	f := sampleForest(t)
	res, err := NewRadial().Layout(f, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if len(res.Positions) != f.NodeCount() {
		t.Errorf("positioned %d nodes, want %d", len(res.Positions), f.NodeCount())
	}
	if len(res.Wedges) != len(res.Positions) {
		t.Errorf("wedges = %d, want %d", len(res.Wedges), len(res.Positions))
	}
}

func TestRadialRadiusIsFunctionOfDepth(t *testing.T) {
	f := sampleForest(t)
	r := NewRadial()
	res, err := r.Layout(f, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}

	center := res.Positions[f.Root.ID()]
	f.Root.Walk(func(n *org.Node) {
		p := res.Positions[n.ID()]
		radius := math.Hypot(p.X-center.X, p.Y-center.Y)
		want := float64(n.Depth) * r.MinRing
		if math.Abs(radius-want) > 1e-6 {
			t.Errorf("node %s at depth %d: radius = %v, want %v", n.ID(), n.Depth, radius, want)
		}
	})
}

func TestRadialAngularExtentProportionalToLeafWeight(t *testing.T) {
	// Root with two children: one carrying three leaves, one carrying one.
	f := buildForest(t, []org.Record{
		rec("r", "Root", "", "X"),
		rec("a", "Big", "r", "A"),
		rec("a1", "L1", "a", "A"),
		rec("a2", "L2", "a", "A"),
		rec("a3", "L3", "a", "A"),
		rec("b", "Small", "r", "B"),
	})

	res, err := NewRadial().Layout(f, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}

	spanA := res.Wedges["a"].Span()
	spanB := res.Wedges["b"].Span()
	if math.Abs(spanA-3*spanB) > 1e-9 {
		t.Errorf("span(a) = %v, want 3x span(b) = %v", spanA, 3*spanB)
	}
	total := spanA + spanB
	if math.Abs(total-2*math.Pi) > 1e-9 {
		t.Errorf("children spans sum to %v, want 2*pi", total)
	}
}

func TestRadialSiblingSpansDisjointAndOrdered(t *testing.T) {
	f := sampleForest(t)
	res, err := NewRadial().Layout(f, Options{Order: ByName})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}

	f.Walk(func(n *org.Node) {
		kids := orderedChildren(n, ByName, nil)
		for i := 1; i < len(kids); i++ {
			prev := res.Wedges[kids[i-1].ID()]
			cur := res.Wedges[kids[i].ID()]
			if cur.Start < prev.End-1e-9 {
				t.Errorf("sibling wedges overlap: %s ends %v, %s starts %v",
					kids[i-1].ID(), prev.End, kids[i].ID(), cur.Start)
			}
		}
	})
}

func TestRadialIdempotent(t *testing.T) {
	f := sampleForest(t)
	r := NewRadial()
	first, err := r.Layout(f, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	second, err := r.Layout(f, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	for id, p := range first.Positions {
		if q := second.Positions[id]; p != q {
			t.Errorf("node %s: first = %v, second = %v", id, p, q)
		}
	}
	for id, w := range first.Wedges {
		if q := second.Wedges[id]; w != q {
			t.Errorf("wedge %s: first = %v, second = %v", id, w, q)
		}
	}
}

func TestRadialRingWidthGrowsWithCrowding(t *testing.T) {
	// 200 direct reports at depth 1 cannot fit on the default ring.
	records := []org.Record{rec("r", "Root", "", "X")}
	for i := 0; i < 200; i++ {
		records = append(records, rec(string(rune('a'+i%26))+string(rune('0'+i/26)), "E", "r", "X"))
	}
	f := buildForest(t, records)

	r := NewRadial()
	needed := 200 * r.NodeSize / (2 * math.Pi)
	if got := r.ringWidth(map[int]int{0: 1, 1: 200}); math.Abs(got-needed) > 1e-9 {
		t.Errorf("ringWidth = %v, want %v", got, needed)
	}

	res, err := r.Layout(f, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	center := res.Positions["r"]
	for id, p := range res.Positions {
		if id == "r" {
			continue
		}
		radius := math.Hypot(p.X-center.X, p.Y-center.Y)
		if math.Abs(radius-needed) > 1e-6 {
			t.Errorf("node %s radius = %v, want %v", id, radius, needed)
			break
		}
	}
}

func TestWedgeVariantStableDepartmentSectors(t *testing.T) {
	base := []org.Record{
		rec("r", "Root", "", "Exec"),
		rec("e1", "Eng1", "r", "Engineering"),
		rec("s1", "Sales1", "r", "Sales"),
	}
	f1 := buildForest(t, base)

	// Same departments, wildly different sizes: Engineering gains a large
	// subtree but each department's sector must not move.
	grown := append([]org.Record{}, base...)
	for i := 0; i < 30; i++ {
		grown = append(grown, rec(string(rune('A'+i)), "E", "e1", "Engineering"))
	}
	f2 := buildForest(t, grown)

	w := NewWedge()
	res1, err := w.Layout(f1, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	res2, err := w.Layout(f2, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}

	for _, id := range []string{"e1", "s1"} {
		w1, w2 := res1.Wedges[id], res2.Wedges[id]
		if math.Abs(w1.Start-w2.Start) > 1e-9 || math.Abs(w1.End-w2.End) > 1e-9 {
			t.Errorf("department sector for %s moved: [%v,%v] -> [%v,%v]",
				id, w1.Start, w1.End, w2.Start, w2.End)
		}
	}
}

func TestRadialSecondaryCirclesDisjoint(t *testing.T) {
	f := buildForest(t, []org.Record{
		rec("1", "Ada", "", "Exec"),
		rec("2", "Grace", "1", "Engineering"),
		rec("s1", "Solo", "999", "Sales"),
		rec("s2", "SoloChild", "s1", "Sales"),
	})
	r := NewRadial()
	res, err := r.Layout(f, Options{})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}

	c1 := res.Positions["1"]
	c2 := res.Positions["s1"]
	dist := math.Hypot(c1.X-c2.X, c1.Y-c2.Y)
	// Two circles of one ring each must be separated by at least the region gap.
	if dist < 2*r.MinRing+r.RegionGap {
		t.Errorf("circle centers %v apart, want at least %v", dist, 2*r.MinRing+r.RegionGap)
	}
}

func TestWedgeContains(t *testing.T) {
	w := Wedge{Center: Point{}, Start: 0, End: math.Pi / 2, Inner: 50, Outer: 150}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside mid-wedge", Point{X: 70, Y: 70}, true},
		{"outside angular range", Point{X: -70, Y: 70}, false},
		{"inside radius hole", Point{X: 10, Y: 10}, false},
		{"beyond outer radius", Point{X: 150, Y: 150}, false},
		{"on start edge", Point{X: 100, Y: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
