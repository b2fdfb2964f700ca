package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/orgview/pkg/layout"
	"github.com/matzehuels/orgview/pkg/org"
)

func testForest(t *testing.T) *org.Forest {
	t.Helper()
	records := []org.Record{
		{ID: "1", Name: "Avery <CEO>", Title: "CEO", Department: "Executive"},
		{ID: "2", Name: "Blake", ManagerID: "1", Department: "Engineering"},
		{ID: "3", Name: "Casey", ManagerID: "2", Department: "Engineering"},
		{ID: "4", Name: "Drew", ManagerID: "1", Department: "Sales"},
	}
	f, err := org.Build(records, org.Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return f
}

func TestForestDocumentSortedAndComplete(t *testing.T) {
	f := testForest(t)
	doc := ForestDocument(f, org.DefaultThresholds)

	if len(doc.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(doc.Nodes))
	}
	for i := 1; i < len(doc.Nodes); i++ {
		if doc.Nodes[i-1].ID >= doc.Nodes[i].ID {
			t.Errorf("nodes not sorted: %s before %s", doc.Nodes[i-1].ID, doc.Nodes[i].ID)
		}
	}

	root := doc.Nodes[0]
	if root.Descendants != 3 || root.DirectReports != 2 {
		t.Errorf("root metrics: descendants=%d reports=%d, want 3/2", root.Descendants, root.DirectReports)
	}
	if root.Health != "low" {
		t.Errorf("root health = %s, want low (2 reports under threshold 3)", root.Health)
	}
	if root.Color == "" || root.Color[0] != '#' {
		t.Errorf("root color = %q, want hex color", root.Color)
	}
}

func TestMarshalForestContentStableAcrossBuilds(t *testing.T) {
	a := testForest(t)
	b := testForest(t)
	if a.DatasetID == b.DatasetID {
		t.Fatal("separate builds should stamp distinct dataset IDs")
	}

	contentA, err := MarshalForestContent(a, org.DefaultThresholds)
	if err != nil {
		t.Fatal(err)
	}
	contentB, err := MarshalForestContent(b, org.DefaultThresholds)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(contentA, contentB) {
		t.Error("content serialization of identical rosters diverges")
	}
	if bytes.Contains(contentA, []byte(a.DatasetID)) {
		t.Error("content serialization leaks the dataset ID")
	}
}

func TestMarshalForestDeterministic(t *testing.T) {
	f := testForest(t)
	a, err := MarshalForest(f, org.DefaultThresholds)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalForest(f, org.DefaultThresholds)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("forest serialization is not deterministic")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	f := testForest(t)
	res, err := layout.NewRadial().Layout(f, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalLayout(res)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}

	if got.Kind != res.Kind {
		t.Errorf("kind = %s, want %s", got.Kind, res.Kind)
	}
	if len(got.Positions) != len(res.Positions) {
		t.Errorf("positions = %d, want %d", len(got.Positions), len(res.Positions))
	}
	if len(got.ZOrder) != len(res.ZOrder) {
		t.Errorf("z-order = %d, want %d", len(got.ZOrder), len(res.ZOrder))
	}
	for id, p := range res.Positions {
		if got.Positions[id] != p {
			t.Errorf("position of %s changed across round trip", id)
		}
	}
}

func TestToDOT(t *testing.T) {
	f := testForest(t)
	dot := ToDOT(f, DotOptions{Thresholds: org.DefaultThresholds})

	if !strings.HasPrefix(dot, "digraph org {") {
		t.Fatalf("unexpected DOT prefix: %s", dot[:20])
	}
	for _, want := range []string{`"1" -> "2"`, `"1" -> "4"`, `"2" -> "3"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing edge %s", want)
		}
	}
	if strings.Contains(dot, org.SyntheticRootID) {
		t.Error("DOT should not contain the synthetic root")
	}
	// Same forest, same DOT.
	if dot != ToDOT(f, DotOptions{Thresholds: org.DefaultThresholds}) {
		t.Error("DOT output is not deterministic")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	f := testForest(t)
	dot := ToDOT(f, DotOptions{Detailed: true, Thresholds: org.DefaultThresholds})
	if !strings.Contains(dot, "reports: 2 / org: 4") {
		t.Errorf("detailed DOT missing metrics line:\n%s", dot)
	}
}

func TestRenderSVGTree(t *testing.T) {
	f := testForest(t)
	res, err := layout.NewTree().Layout(f, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}

	svg := string(RenderSVG(f, res, WithSVGEdges()))
	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Fatalf("unexpected SVG prefix: %s", svg[:20])
	}
	if got := strings.Count(svg, "<rect"); got != 4 {
		t.Errorf("card count = %d, want 4", got)
	}
	if got := strings.Count(svg, "<path"); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
	if !strings.Contains(svg, "Avery &lt;CEO&gt;") {
		t.Error("node name not XML-escaped")
	}
}

func TestRenderSVGRadial(t *testing.T) {
	f := testForest(t)
	res, err := layout.NewRadial().Layout(f, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}

	svg := string(RenderSVG(f, res))
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("marker count = %d, want 4", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 200.00" xmlns="http://www.w3.org/2000/svg">body</svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 200.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.HasSuffix(out, "body</svg>") {
		t.Errorf("body lost: %s", out)
	}
}

func TestDocumentJSONShape(t *testing.T) {
	f := testForest(t)
	res, err := layout.NewTree().Layout(f, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := MarshalDocument(f, org.DefaultThresholds, res)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"forest", "layout"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
}
