package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cnconv/internal/analysis"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	// Rate colours by distance from the theoretical order.
	RateGood = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	RateNear = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	RateOff  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

const cellWidth = 24

// RateStyle picks a colour for an observed rate against the expected order.
func RateStyle(rate float64, order int) lipgloss.Style {
	d := math.Abs(rate - float64(order))
	switch {
	case d < 0.1:
		return RateGood
	case d < 0.5:
		return RateNear
	default:
		return RateOff
	}
}

// Pretty renders the table inside a bordered panel for terminals.
func Pretty(t *analysis.Table) string {
	var sb strings.Builder

	sb.WriteString(Title.Render(fmt.Sprintf("%s (order %d)", t.Integrator, t.Order)))
	sb.WriteString("  ")
	sb.WriteString(Subtle.Render(t.Params.String()))
	sb.WriteString("\n\n")

	header := fmt.Sprintf("%-8s%-*s%-*s%s", "N", cellWidth, "h", cellWidth, "E_h", "r")
	sb.WriteString(HeaderStyle.Render(header))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		rate := Subtle.Render(Placeholder)
		if row.HasRate {
			rate = RateStyle(row.Rate, t.Order).Render(fmt.Sprintf("%.4f", row.Rate))
		}
		fmt.Fprintf(&sb, "%-8d%-*s%-*s%s\n", row.N,
			cellWidth, FormatFloat(row.H),
			cellWidth, FormatFloat(row.MaxError),
			rate)
	}

	if order, ok := t.ObservedOrder(); ok {
		sb.WriteString("\n")
		sb.WriteString(Subtle.Render("observed order "))
		sb.WriteString(RateStyle(order, t.Order).Render(fmt.Sprintf("%.4f", order)))
		sb.WriteString(Subtle.Render("  rates "))
		sb.WriteString(Sparkline(rates(t)))
	}

	return Panel.Render(sb.String())
}

func rates(t *analysis.Table) []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.HasRate {
			out = append(out, row.Rate)
		}
	}
	return out
}

// Sparkline renders one block character per value, scaled to the min/max.
func Sparkline(values []float64) string {
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if len(values) == 0 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var sb strings.Builder
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			sb.WriteRune('?')
			continue
		}
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(chars)-1))
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
