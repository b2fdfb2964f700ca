package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgview/pkg/export"
	"github.com/matzehuels/orgview/pkg/org"
	"github.com/matzehuels/orgview/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output     string // JSON output path (print summary only if empty)
	lowSpan    int    // low span-of-control threshold
	highSpan   int    // high span-of-control threshold
	showHealth bool   // list managers outside the thresholds
}

// newParseCmd creates the parse command. It validates a roster CSV, commits
// the reporting forest, and reports structure and data-quality findings
// without rendering anything.
func newParseCmd() *cobra.Command {
	opts := parseOpts{
		lowSpan:  org.DefaultThresholds.Low,
		highSpan: org.DefaultThresholds.High,
	}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Validate a roster CSV and report the committed structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the forest as JSON to this file")
	cmd.Flags().IntVar(&opts.lowSpan, "span-low", opts.lowSpan, "flag managers with fewer direct reports")
	cmd.Flags().IntVar(&opts.highSpan, "span-high", opts.highSpan, "flag managers with more direct reports")
	cmd.Flags().BoolVar(&opts.showHealth, "health", false, "list managers outside the span thresholds")

	return cmd
}

func runParse(cmd *cobra.Command, input string, opts *parseOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	thresholds := org.Thresholds{Low: opts.lowSpan, High: opts.highSpan}

	runner := pipeline.NewRunner(nil, nil, logger)
	defer runner.Close()

	prog := newProgress(logger)
	f, err := runner.Build(ctx, pipeline.Options{
		Input:      input,
		Thresholds: thresholds,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Committed %d people into %d tree(s)", f.NodeCount(), len(f.Roots())))

	printSummary(f, thresholds, opts.showHealth)

	if opts.output != "" {
		data, err := export.MarshalForest(f, thresholds)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, data, 0644); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

func printSummary(f *org.Forest, t org.Thresholds, showHealth bool) {
	s := f.Stats
	printSuccess("Roster parsed")
	printKeyValue("rows", fmt.Sprintf("%d total, %d valid, %d duplicates", s.TotalRows, s.ValidRows, s.DuplicateRows))
	printKeyValue("trees", fmt.Sprintf("%d (primary root: %s)", len(f.Roots()), rootName(f)))
	printKeyValue("depth", fmt.Sprintf("%d levels", f.MaxDepth()+1))
	printKeyValue("departments", fmt.Sprintf("%d", len(f.Departments())))
	if s.Orphans > 0 {
		printKeyValue("orphaned", fmt.Sprintf("%d", s.Orphans))
	}
	if s.CycleDetected {
		printWarning("Cyclic reporting references were detected and severed")
	}
	for _, w := range f.Warnings {
		printDetail("%s", w)
	}

	if showHealth {
		printHealthFindings(f, t)
	}
}

func printHealthFindings(f *org.Forest, t org.Thresholds) {
	type finding struct {
		name    string
		reports int
		health  org.Health
	}
	var findings []finding
	f.Walk(func(n *org.Node) {
		if n.IsSynthetic() {
			return
		}
		if h := n.Health(t); h != org.HealthOK {
			findings = append(findings, finding{n.Record.Name, n.DirectReports, h})
		}
	})
	if len(findings) == 0 {
		printInfo("All managers are within span thresholds")
		return
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].reports > findings[j].reports })
	printInfo("%d manager(s) outside span thresholds [%d, %d]:", len(findings), t.Low, t.High)
	for _, fd := range findings {
		printDetail("%s: %d direct reports (%s)", fd.name, fd.reports, fd.health)
	}
}

func rootName(f *org.Forest) string {
	if f.Root == nil {
		return "none"
	}
	return f.Root.Record.Name
}
