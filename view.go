package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	seatStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	guideStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellGuide
	cellSeat
	cellSection
	cellSelected
	cellCapture
)

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.help {
		return m.renderHelp()
	}

	canvasH := m.height - 1
	if canvasH < 1 {
		canvasH = 1
	}

	runes := make([][]rune, canvasH)
	kinds := make([][]cellKind, canvasH)
	for y := range runes {
		runes[y] = make([]rune, m.width)
		kinds[y] = make([]cellKind, m.width)
		for x := range runes[y] {
			runes[y][x] = ' '
		}
	}

	m.drawContentFrame(runes, kinds)
	m.drawMarkers(runes, kinds)
	m.drawMarquee(runes, kinds)
	m.drawDrawing(runes, kinds)

	var b strings.Builder
	for y := 0; y < canvasH; y++ {
		for x := 0; x < m.width; x++ {
			ch := string(runes[y][x])
			switch kinds[y][x] {
			case cellGuide:
				b.WriteString(guideStyle.Render(ch))
			case cellSeat:
				b.WriteString(seatStyle.Render(ch))
			case cellSection:
				b.WriteString(sectionStyle.Render(ch))
			case cellSelected, cellCapture:
				b.WriteString(selectedStyle.Render(ch))
			default:
				b.WriteString(ch)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m *model) plot(runes [][]rune, kinds [][]cellKind, sx, sy float64, r rune, k cellKind) {
	x, y := int(sx), int(sy)
	if y < 0 || y >= len(runes) || x < 0 || x >= len(runes[y]) {
		return
	}
	runes[y][x] = r
	kinds[y][x] = k
}

// drawContentFrame outlines the letterboxed content rectangle so the
// percent space is visible inside the terminal container.
func (m *model) drawContentFrame(runes [][]rune, kinds [][]cellKind) {
	for _, pos := range [][2]float64{{0, 0}, {100, 0}, {0, 100}, {100, 100}} {
		sx, sy := m.viewport.PercentageToStage(pos[0], pos[1])
		m.plot(runes, kinds, sx, sy, '+', cellGuide)
	}
	for pct := 10.0; pct < 100; pct += 10 {
		sx, sy := m.viewport.PercentageToStage(pct, 0)
		m.plot(runes, kinds, sx, sy, '·', cellGuide)
		sx, sy = m.viewport.PercentageToStage(pct, 100)
		m.plot(runes, kinds, sx, sy, '·', cellGuide)
		sx, sy = m.viewport.PercentageToStage(0, pct)
		m.plot(runes, kinds, sx, sy, '·', cellGuide)
		sx, sy = m.viewport.PercentageToStage(100, pct)
		m.plot(runes, kinds, sx, sy, '·', cellGuide)
	}
}

func (m *model) drawMarkers(runes [][]rune, kinds [][]cellKind) {
	sections := VisibleMarkers(m.contextSections(), m.viewport, m.selection, m.config.VirtualizeThreshold)
	for _, marker := range sections {
		sx, sy := m.viewport.PercentageToStage(marker.X, marker.Y)
		r, k := '▢', cellSection
		if m.selection.Has(KindSection, marker.ID) {
			r, k = '▣', cellSelected
		}
		m.plot(runes, kinds, sx, sy, r, k)
	}
	seats := VisibleMarkers(m.contextSeats(), m.viewport, m.selection, m.config.VirtualizeThreshold)
	for _, marker := range seats {
		sx, sy := m.viewport.PercentageToStage(marker.X, marker.Y)
		r, k := 'o', cellSeat
		if m.selection.Has(KindSeat, marker.ID) {
			r, k = '●', cellSelected
		}
		m.plot(runes, kinds, sx, sy, r, k)
	}
}

func (m *model) drawMarquee(runes [][]rune, kinds [][]cellKind) {
	if m.marquee == nil {
		return
	}
	r := m.marquee.Rect()
	x1, y1 := m.viewport.PercentageToStage(r.MinX, r.MinY)
	x2, y2 := m.viewport.PercentageToStage(r.MaxX, r.MaxY)
	for x := int(x1); x <= int(x2); x++ {
		m.plot(runes, kinds, float64(x), y1, '-', cellGuide)
		m.plot(runes, kinds, float64(x), y2, '-', cellGuide)
	}
	for y := int(y1); y <= int(y2); y++ {
		m.plot(runes, kinds, x1, float64(y), '|', cellGuide)
		m.plot(runes, kinds, x2, float64(y), '|', cellGuide)
	}
}

func (m *model) drawDrawing(runes [][]rune, kinds [][]cellKind) {
	switch m.drawing.Phase {
	case DrawDragging:
		r := NormalizedRect(m.drawing.Start.X, m.drawing.Start.Y, m.drawing.Current.X, m.drawing.Current.Y)
		for _, corner := range [][2]float64{{r.MinX, r.MinY}, {r.MaxX, r.MinY}, {r.MinX, r.MaxY}, {r.MaxX, r.MaxY}} {
			sx, sy := m.viewport.PercentageToStage(corner[0], corner[1])
			m.plot(runes, kinds, sx, sy, '+', cellCapture)
		}
	case DrawFreeform:
		for i := 0; i+1 < len(m.drawing.Points); i += 2 {
			sx, sy := m.viewport.PercentageToStage(m.drawing.Points[i], m.drawing.Points[i+1])
			r := '+'
			if i == 0 {
				r = '*'
			}
			m.plot(runes, kinds, sx, sy, r, cellCapture)
		}
	}
}

func (m model) renderStatusLine() string {
	var parts []string

	switch m.mode {
	case ModeNameInput:
		return statusStyle.Render(padLine(fmt.Sprintf(" Section name: %s▌  (enter to create, esc to discard)", m.nameInput), m.width))
	case ModeAlign:
		return statusStyle.Render(padLine(" Align: [l]eft [r]ight [t]op [b]ottom [c]enter [m]iddle [h]/[v] space [x] both [w] width [H] height  esc", m.width))
	case ModeConfirm:
		prompt := "Delete selected markers? (y/n)"
		if m.confirmAction == ConfirmQuit {
			prompt = "Unsaved changes. Quit anyway? (y/n)"
		}
		return statusStyle.Render(padLine(" "+prompt, m.width))
	}

	if m.focusSection != "" {
		name := m.focusSection
		if sec, ok := m.plan.Get(KindSection, m.focusSection); ok && sec.Label != "" {
			name = sec.Label
		}
		parts = append(parts, fmt.Sprintf("section:%s", name))
	}
	if m.drawing.Tool != ToolNone {
		parts = append(parts, fmt.Sprintf("tool:%s", m.drawing.Tool))
	}
	parts = append(parts, fmt.Sprintf("seats:%d sections:%d", len(m.plan.Seats()), len(m.plan.Sections())))
	parts = append(parts, fmt.Sprintf("zoom:%.0f%%", m.viewport.Zoom*100))
	if m.grid.Enabled {
		parts = append(parts, fmt.Sprintf("grid:%.1f", m.grid.Size))
	}
	if m.history.IsDirty() {
		parts = append(parts, "[+]")
	}
	if !HoverEffectsEnabled(len(m.contextSeats())+len(m.contextSections()), m.config.HoverEffectThreshold) {
		parts = append(parts, "fx:off")
	}
	if m.saving {
		parts = append(parts, "saving…")
	}

	line := " " + strings.Join(parts, "  ")
	if m.errorMessage != "" {
		return errorStyle.Render(padLine(" "+m.errorMessage, m.width))
	}
	if m.successMessage != "" {
		return successStyle.Render(padLine(" "+m.successMessage, m.width))
	}
	return statusStyle.Render(padLine(line+"  ?:help", m.width))
}

func (m model) renderHelp() string {
	lines := []string{
		"Seatplan Help",
		"=============",
		"",
		"Mouse:",
		"  click            Select marker (alt+click adds/removes)",
		"  drag marker      Move it; dragging a multi-selection moves all members",
		"  drag empty       Marquee-select markers inside the rectangle",
		"  wheel            Zoom",
		"",
		"Tools (drag on canvas to draw, esc to put the tool away):",
		"  s seat   r rectangle   o circle   e ellipse",
		"  n polygon   f sofa   t stage   d freeform (click points, click start to close)",
		"",
		"Editing:",
		"  arrows           Move selection by 1 unit (shift: 0.1)",
		"  a                Align/distribute the selection",
		"  y / p            Copy / paste selection",
		"  delete           Delete selection (freeform capture: drop last point)",
		"  u / ctrl+r       Undo / redo",
		"  enter            Drill into the selected section",
		"  ctrl+a           Select all in the current context",
		"",
		"View & plan:",
		"  h/j/k/l          Pan        +/-/0  Zoom / reset",
		"  g                Toggle grid snap",
		"  B / F            Cycle background color / fill transparency",
		"  w                Save       x      Export PNG",
		"  esc              Cancel gesture, clear selection, leave section",
		"  q                Quit",
	}
	var b strings.Builder
	for i, line := range lines {
		if i >= m.height-1 {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(padLine(" ?/esc closes help", m.width)))
	return b.String()
}

func padLine(s string, width int) string {
	if len(s) >= width {
		if width < 1 {
			return ""
		}
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
