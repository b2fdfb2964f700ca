package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgview/pkg/layout"
	"github.com/matzehuels/orgview/pkg/org"
	"github.com/matzehuels/orgview/pkg/pipeline"
	"github.com/matzehuels/orgview/pkg/view"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	kind     string
	orderBy  string
	unified  bool
	maxDepth int
}

// newViewCmd creates the view command: an interactive terminal explorer
// with pan, zoom, and pointer hit testing over the laid-out chart.
func newViewCmd() *cobra.Command {
	opts := viewOpts{kind: "tree", orderBy: "department"}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore an org chart interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "type", "t", opts.kind, "layout type: tree (default), radial, wedge")
	cmd.Flags().StringVar(&opts.orderBy, "order", opts.orderBy, "sibling ordering: department (default), name, size")
	cmd.Flags().BoolVar(&opts.unified, "unified", false, "aggregate disconnected trees under one root")
	cmd.Flags().IntVar(&opts.maxDepth, "depth", 0, "limit visible depth (0 = unlimited)")

	return cmd
}

func runView(cmd *cobra.Command, input string, opts *viewOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner := pipeline.NewRunner(nil, nil, logger)
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Input:    input,
		Kind:     opts.kind,
		OrderBy:  opts.orderBy,
		Unified:  opts.unified,
		MaxDepth: opts.maxDepth,
		Logger:   logger,
	}
	f, err := runner.Build(ctx, pipeOpts)
	if err != nil {
		return err
	}
	res, err := runner.Layout(ctx, f, "", pipeOpts)
	if err != nil {
		return err
	}

	model := newChartModel(f, res)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	return err
}

const (
	panStep     = 6.0
	headerLines = 2
	footerLines = 2
)

// chartModel is the bubbletea model for the interactive chart. The camera
// maps layout space to terminal cells; every pointer event goes through
// the hit-test engine.
type chartModel struct {
	forest *org.Forest
	res    *layout.Result

	cam    *view.Camera
	engine *view.Engine

	width  int
	height int

	hovered  string
	selected string
	ready    bool
}

func newChartModel(f *org.Forest, res *layout.Result) *chartModel {
	cam := view.New(view.DefaultConfig(), 80, 24)
	cam.SetContent(res.Bounds)

	tester := view.NewNearestTester(res, 3)
	if res.Kind == layout.KindTree {
		tester = view.NewNearestTester(res, 6)
	}
	return &chartModel{
		forest: f,
		res:    res,
		cam:    cam,
		engine: view.NewEngine(cam, tester),
	}
}

func (m *chartModel) Init() tea.Cmd {
	return nil
}

func (m *chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - headerLines - footerLines
		if m.height < 1 {
			m.height = 1
		}
		m.cam.SetViewport(float64(m.width), float64(m.height))
		if !m.ready {
			m.cam.FitToBounds(m.res.Bounds, 2)
			m.ready = true
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.cam.Pan(panStep, 0)
		case "right", "l":
			m.cam.Pan(-panStep, 0)
		case "up", "k":
			m.cam.Pan(0, panStep)
		case "down", "j":
			m.cam.Pan(0, -panStep)
		case "+", "=":
			m.cam.ZoomIn()
		case "-", "_":
			m.cam.ZoomOut()
		case "f":
			m.cam.FitToBounds(m.res.Bounds, 2)
		case "r":
			m.cam.Reset()
		}

	case tea.MouseMsg:
		p := layout.Point{X: float64(msg.X), Y: float64(msg.Y - headerLines)}
		switch msg.Action {
		case tea.MouseActionMotion:
			if id, hit, changed := m.engine.Hover(p); changed {
				if hit {
					m.hovered = id
				} else {
					m.hovered = ""
				}
			}
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonLeft:
				if id, hit := m.engine.At(p); hit {
					m.selected = id
				} else {
					m.selected = ""
				}
			case tea.MouseButtonWheelUp:
				m.cam.ZoomAt(p, view.DefaultConfig().ZoomStep)
			case tea.MouseButtonWheelDown:
				m.cam.ZoomAt(p, 1/view.DefaultConfig().ZoomStep)
			}
		}
	}
	return m, nil
}

func (m *chartModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("orgview"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %d people · zoom %.2fx", m.res.Kind, m.forest.NodeCount(), m.cam.Scale())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑↓→ pan  +/- zoom  f fit  r reset  click select  q quit"))
	b.WriteString("\n")

	b.WriteString(m.renderCanvas())

	b.WriteString(m.statusLine())
	return b.String()
}

// renderCanvas projects every visible node into the terminal cell grid.
func (m *chartModel) renderCanvas() string {
	type cell struct {
		ch    string
		style lipgloss.Style
	}
	grid := make([]cell, m.width*m.height)

	for _, id := range m.res.ZOrder {
		p, ok := m.res.Positions[id]
		if !ok {
			continue
		}
		s := m.cam.ToScreen(p)
		x, y := int(s.X), int(s.Y)
		if x < 0 || x >= m.width || y < 0 || y >= m.height {
			continue
		}
		n, ok := m.forest.Lookup(id)
		if !ok {
			continue
		}
		grid[y*m.width+x] = cell{ch: nodeGlyph(n, id == m.selected, id == m.hovered), style: nodeStyle(n, id == m.selected)}
	}

	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := grid[y*m.width+x]
			if c.ch == "" {
				b.WriteString(" ")
				continue
			}
			b.WriteString(c.style.Render(c.ch))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *chartModel) statusLine() string {
	id := m.selected
	if id == "" {
		id = m.hovered
	}
	if id == "" {
		return StyleDim.Render("hover or click a node for details")
	}
	n, ok := m.forest.Lookup(id)
	if !ok {
		return ""
	}
	info := n.Record.Name
	if n.Record.Title != "" {
		info += " · " + n.Record.Title
	}
	if n.Record.Department != "" {
		info += " · " + n.Record.Department
	}
	info += fmt.Sprintf(" · %d reports · org %d", n.DirectReports, n.SubtreeSize())
	return StyleValue.Render(info)
}

func nodeGlyph(n *org.Node, selected, hovered bool) string {
	switch {
	case selected:
		return "◉"
	case hovered:
		return "◎"
	case n.IsLeaf():
		return "·"
	default:
		return "●"
	}
}

func nodeStyle(n *org.Node, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(org.DepartmentColor(n.Record.Department)))
	if selected {
		s = s.Bold(true)
	}
	return s
}
