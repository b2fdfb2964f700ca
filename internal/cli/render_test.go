package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single", "dot", []string{"dot"}},
		{"multiple with spaces", "svg, dot ,json", []string{"svg", "dot", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		kind   string
		ext    string
		multi  bool
		want   string
	}{
		{"derived from input", "roster.csv", "", "tree", "svg", false, "roster-tree.svg"},
		{"explicit output wins", "roster.csv", "chart.svg", "tree", "svg", false, "chart.svg"},
		{"explicit output as base when multi", "roster.csv", "chart", "tree", "dot", true, "chart.dot"},
		{"derived when multi", "data/roster.csv", "", "radial", "json", true, "data/roster-radial.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.input, tt.output, tt.kind, tt.ext, tt.multi)
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
