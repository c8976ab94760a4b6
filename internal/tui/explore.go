package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cnconv/internal/analysis"
	"github.com/san-kum/cnconv/internal/dynamo"
	"github.com/san-kum/cnconv/internal/integrators"
	"github.com/san-kum/cnconv/internal/report"
)

const (
	maxExploreExp = 14
	minCoeffMag   = 1.0 / 64
	maxCoeffMag   = 1 << 20
)

type model struct {
	params   dynamo.Params
	minExp   int
	maxExp   int
	names    []string
	cursor   int
	registry *integrators.Registry

	table    *analysis.Table
	err      error
	showPlot bool
}

// NewExplorer starts on the given problem and integrator. An unknown
// integrator name falls back to the first registered one.
func NewExplorer(params dynamo.Params, minExp, maxExp int, integrator string) tea.Model {
	reg := integrators.NewRegistry()
	m := model{
		params:   params,
		minExp:   minExp,
		maxExp:   maxExp,
		names:    reg.List(),
		registry: reg,
	}
	if s, err := reg.Get(integrator); err == nil {
		for i, name := range m.names {
			if name == s.Name() {
				m.cursor = i
			}
		}
	}
	m.recompute()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "+", "=":
		m.scaleCoefficient(2)
	case "-", "_":
		m.scaleCoefficient(0.5)
	case "n":
		m.params.A = -m.params.A
	case "tab", "right", "l":
		m.cursor = (m.cursor + 1) % len(m.names)
	case "shift+tab", "left", "h":
		m.cursor = (m.cursor - 1 + len(m.names)) % len(m.names)
	case "up", "k":
		if m.maxExp < maxExploreExp {
			m.maxExp++
		}
	case "down", "j":
		if m.maxExp > m.minExp+1 {
			m.maxExp--
		}
	case "p":
		m.showPlot = !m.showPlot
		return m, nil
	default:
		return m, nil
	}

	m.recompute()
	return m, nil
}

func (m *model) scaleCoefficient(f float64) {
	a := m.params.A * f
	switch {
	case a == 0:
		a = -1
	case a > -minCoeffMag && a < minCoeffMag:
		return
	case a > maxCoeffMag || a < -maxCoeffMag:
		return
	}
	m.params.A = a
}

func (m *model) recompute() {
	s, err := m.registry.Get(m.names[m.cursor])
	if err != nil {
		m.table, m.err = nil, err
		return
	}
	ns, err := analysis.Resolutions(m.minExp, m.maxExp)
	if err != nil {
		m.table, m.err = nil, err
		return
	}
	m.table, m.err = analysis.NewStudy(m.params, ns, s, nil).Run(context.Background())
}

func (m model) View() string {
	var sb strings.Builder

	if m.err != nil {
		sb.WriteString(report.RateOff.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	} else if m.table != nil {
		sb.WriteString(report.Pretty(m.table))
		sb.WriteString("\n")
		if m.showPlot {
			if graph, err := report.PlotASCII(m.table); err == nil {
				sb.WriteString(graph)
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString(report.Subtle.Render(fmt.Sprintf(
		"[+/-] a x2 / x0.5  [n] flip sign  [tab] integrator  [up/down] N max 2^%d  [p] plot  [q] quit",
		m.maxExp)))
	return sb.String()
}

func RunExplorer(params dynamo.Params, minExp, maxExp int, integrator string) error {
	p := tea.NewProgram(NewExplorer(params, minExp, maxExp, integrator), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
