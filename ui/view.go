package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"electrorustogram/model"
)

func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	plotHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	plotWidth := m.plotWidth()

	var body string
	if plotHeight < minPlotHeight || plotWidth < minPlotWidth {
		body = m.renderTooSmall(max(plotHeight, 1))
	} else {
		body = m.renderPlot(plotWidth, plotHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	p := m.trace.LastPoint()
	fps := m.trace.FPS()

	osc := 0.0
	if p.PhaseDelta > 0 {
		osc = p.PhaseDelta * float64(fps) / (2 * math.Pi)
	}

	header := fmt.Sprintf(
		"CPU ECG  load: %5.1f%%  fps: %2d  osc: %4.2fHz  phase: %5.1f  pulse: %4.2f",
		m.trace.Load().Percent(), fps, osc, m.trace.Phase(), m.trace.Pulse(),
	)
	if m.info.HasLoad {
		header += fmt.Sprintf("  avg: %.2f", m.info.Load1)
	}
	if m.info.HasUptime {
		header += "  up: " + FormatUptime(m.info.Uptime)
	}
	return headerStyle.Render(padToWidth(header, m.width))
}

func (m Model) renderFooter() string {
	footer := m.help.View(m.keys)
	if m.statusText == "" {
		return footer
	}
	style := successStyle
	if m.statusError {
		style = errorStyle
	}
	return footer + "  " + style.Render(m.statusText)
}

func (m Model) renderTooSmall(height int) string {
	lines := make([]string, height)
	lines[0] = keybindDescStyle.Render("terminal too small")
	return strings.Join(lines, "\n")
}

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellGrid
	cellTrace
)

// renderPlot draws the dotted grid with the trace on top. Columns where the
// trace jumps get a vertical connector so the line stays continuous.
func (m Model) renderPlot(width, height int) string {
	glyphs := make([][]rune, height)
	kinds := make([][]cellKind, height)
	for row := range glyphs {
		glyphs[row] = []rune(strings.Repeat(" ", width))
		kinds[row] = make([]cellKind, width)
		if row%gridRowStep != 0 {
			continue
		}
		for col := 0; col < width; col += gridColStep {
			glyphs[row][col] = '.'
			kinds[row][col] = cellGrid
		}
	}

	prevY := -1
	for x, sample := range m.trace.Samples() {
		if x >= width {
			break
		}
		y := model.Row(sample, height)
		glyphs[y][x] = '*'
		kinds[y][x] = cellTrace
		if prevY >= 0 && prevY != y {
			lo, hi := min(prevY, y), max(prevY, y)
			for row := lo + 1; row < hi; row++ {
				glyphs[row][x] = '|'
				kinds[row][x] = cellTrace
			}
		}
		prevY = y
	}

	trace := bandStyle(m.trace.Band())
	axisMid := height / 2

	var b strings.Builder
	for row := 0; row < height; row++ {
		gutter := "     "
		switch row {
		case 0:
			gutter = " 1.0|"
		case axisMid:
			gutter = " 0.0|"
		case height - 1:
			gutter = "-1.0|"
		}
		b.WriteString(gridStyle.Render(gutter))
		writeRuns(&b, glyphs[row], kinds[row], trace)
		if row < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// writeRuns styles consecutive cells of the same kind together, which keeps
// the escape sequence count per frame low.
func writeRuns(b *strings.Builder, glyphs []rune, kinds []cellKind, trace lipgloss.Style) {
	start := 0
	for i := 1; i <= len(glyphs); i++ {
		if i < len(glyphs) && kinds[i] == kinds[start] {
			continue
		}
		run := string(glyphs[start:i])
		switch kinds[start] {
		case cellTrace:
			b.WriteString(trace.Render(run))
		case cellGrid:
			b.WriteString(gridStyle.Render(run))
		default:
			b.WriteString(run)
		}
		start = i
	}
}
