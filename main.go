package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()

	store, err := OpenStore(config.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	plan, err := store.Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(
		initialModel(config, store, plan),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	width  int
	height int

	config *Config
	store  *Store

	plan      *Plan
	viewport  *Viewport
	selection *Selection
	history   *History
	drawing   *Drawing
	grid      GridConfig

	drag    *DragSession
	marquee *MarqueeSession
	press   pressState

	mode          Mode
	confirmAction ConfirmAction
	help          bool
	focusSection  string

	nameInput    string
	pendingShape *Shape
	pendingPos   Position

	saving         bool
	errorMessage   string
	successMessage string
}

func initialModel(config *Config, store *Store, plan *Plan) model {
	viewport := NewViewport(config.FallbackAspect)
	if ref := plan.BackgroundImage(); ref != "" {
		if aspect, err := measureImageAspect(ref); err == nil {
			viewport.SetImageAspect(aspect)
		}
	}
	return model{
		config:    config,
		store:     store,
		plan:      plan,
		viewport:  viewport,
		selection: NewSelection(),
		history:   NewHistory(),
		drawing:   NewDrawing(),
		grid:      config.Grid(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetContainerSize(float64(msg.Width), float64(msg.Height-1))
		return m, nil

	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.history.Clear()
			m.successMessage = "saved"
		}
		return m, nil

	case exportResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.successMessage = "exported " + msg.filename
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		m.errorMessage = ""
		m.successMessage = ""

		if m.help {
			switch msg.String() {
			case "?", "esc", "q":
				m.help = false
			}
			return m, nil
		}

		switch m.mode {
		case ModeNameInput:
			return m.handleNameInput(msg)
		case ModeAlign:
			return m.handleAlignKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.config.Confirmations && m.history.IsDirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true

	case "esc":
		m.cancelAll()
	case "u":
		if !m.history.Undo(m.plan) {
			m.successMessage = "nothing to undo"
		}
	case "ctrl+r":
		if !m.history.Redo(m.plan) {
			m.successMessage = "nothing to redo"
		}

	case "ctrl+a":
		m.selectAllInContext()
	case "delete", "backspace":
		if m.drawing.Phase == DrawFreeform && len(m.drawing.Points) > 0 {
			m.drawing.RemoveLastPoint()
			return m, nil
		}
		if m.selection.Total() == 0 {
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteSelection
			return m, nil
		}
		m.deleteSelection()
	case "y":
		if n, err := copySelection(m.plan, m.selection); err != nil {
			m.errorMessage = err.Error()
		} else if n > 0 {
			m.successMessage = fmt.Sprintf("copied %d markers", n)
		}
	case "p":
		if n, err := pasteClipboard(m.plan, m.selection, m.history); err != nil {
			m.errorMessage = err.Error()
		} else if n > 0 {
			m.successMessage = fmt.Sprintf("pasted %d markers", n)
		}

	case "up", "down", "left", "right":
		m.nudgeSelection(msg.String(), 1)
	case "shift+up", "shift+down", "shift+left", "shift+right":
		m.nudgeSelection(msg.String(), 0.1)

	case "enter":
		if id := m.selection.SelectedSection(); id != "" && m.focusSection == "" {
			m.focusSection = id
			m.selection.Clear()
			m.drawing.Cancel()
		}

	case "a":
		if m.alignKind() != nil {
			m.mode = ModeAlign
		}

	case "h":
		m.viewport.PanX += 4
	case "l":
		m.viewport.PanX -= 4
	case "k":
		m.viewport.PanY += 2
	case "j":
		m.viewport.PanY -= 2
	case "+", "=":
		m.viewport.ZoomBy(1.25)
	case "-":
		m.viewport.ZoomBy(0.8)
	case "0":
		m.viewport.SetZoom(1)
		m.viewport.PanX = 0
		m.viewport.PanY = 0

	case "s":
		m.drawing.SelectTool(ToolSeat)
	case "r":
		m.drawing.SelectTool(ToolRectangle)
	case "o":
		m.drawing.SelectTool(ToolCircle)
	case "e":
		m.drawing.SelectTool(ToolEllipse)
	case "n":
		m.drawing.SelectTool(ToolPolygon)
	case "f":
		m.drawing.SelectTool(ToolSofa)
	case "t":
		m.drawing.SelectTool(ToolStage)
	case "d":
		m.drawing.SelectTool(ToolFreeform)
	case "v":
		m.drawing.SelectTool(ToolNone)

	case "g":
		m.grid.Enabled = !m.grid.Enabled
	case "B":
		m.cycleBackgroundColor()
	case "F":
		m.cycleFillAlpha()

	case "w":
		if !m.saving {
			m.saving = true
			return m, m.saveCmd()
		}
	case "x":
		return m, m.exportCmd()
	}
	return m, nil
}

func (m model) handleNameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.pendingShape = nil
		m.nameInput = ""
		m.mode = ModeNormal
	case tea.KeyEnter:
		if m.nameInput == "" {
			return m, nil
		}
		m.history.Record(m.plan)
		id := m.plan.Add(Marker{
			Kind:  KindSection,
			X:     m.pendingPos.X,
			Y:     m.pendingPos.Y,
			Shape: m.pendingShape,
			Label: m.nameInput,
		})
		m.selection.Replace(KindSection, []string{id})
		m.pendingShape = nil
		m.nameInput = ""
		m.mode = ModeNormal
	case tea.KeyBackspace:
		if len(m.nameInput) > 0 {
			runes := []rune(m.nameInput)
			m.nameInput = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.nameInput += " "
	case tea.KeyRunes:
		m.nameInput += string(msg.Runes)
	}
	return m, nil
}

func (m model) handleAlignKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ops := map[string]AlignOp{
		"l": AlignLeft,
		"r": AlignRight,
		"t": AlignTop,
		"b": AlignBottom,
		"c": AlignCenter,
		"m": AlignMiddle,
		"h": SpaceBetweenH,
		"v": SpaceBetweenV,
		"x": SpaceBetweenBoth,
		"w": SameWidth,
		"H": SameHeight,
	}
	if op, ok := ops[msg.String()]; ok {
		m.applyAlign(op)
	}
	m.mode = ModeNormal
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = ModeNormal
		if m.confirmAction == ConfirmQuit {
			return m, tea.Quit
		}
		m.deleteSelection()
	case "n", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px, py := m.viewport.PointerToPercentage(float64(msg.X), float64(msg.Y))
	pct := Position{X: px, Y: py}

	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.ZoomBy(1.1)
	case tea.MouseWheelDown:
		m.viewport.ZoomBy(1 / 1.1)

	case tea.MouseLeft:
		if !m.press.active {
			m.beginPress(msg, pct)
			return m, nil
		}
		m.trackPress(pct)

	case tea.MouseRelease:
		m.finishPress(pct)
	}
	return m, nil
}

// beginPress classifies the press target; sessions start lazily on the
// first motion so a plain click never opens a drag.
func (m *model) beginPress(msg tea.MouseMsg, pct Position) {
	m.press = pressState{active: true, additive: msg.Alt, at: pct}
	if m.drawing.PointerDown(pct) {
		return
	}
	if m.drawing.Phase == DrawFreeform {
		return
	}
	if marker, ok := m.hitTest(pct); ok {
		m.press.onMarker = true
		m.press.kind = marker.Kind
		m.press.id = marker.ID
	}
}

func (m *model) trackPress(pct Position) {
	if !m.press.moved && m.movedEnough(pct) {
		m.press.moved = true
		switch {
		case m.drawing.Phase == DrawDragging:
		case m.press.onMarker:
			m.history.Record(m.plan)
			m.drag = StartDrag(m.plan, m.selection, m.press.kind, m.press.id, m.press.at)
		case m.drawing.Phase == DrawFreeform:
		default:
			m.marquee = &MarqueeSession{Start: m.press.at, Current: pct}
		}
	}
	m.drawing.PointerMove(pct)
	if m.drag != nil {
		m.drag.Move(m.plan, pct)
	}
	if m.marquee != nil {
		m.marquee.Current = pct
	}
}

func (m *model) finishPress(pct Position) {
	defer func() { m.press = pressState{} }()

	if m.drawing.Phase == DrawDragging {
		if shape, center, ok := m.drawing.PointerUp(pct); ok {
			m.commitShape(shape, center)
		}
		return
	}
	if m.drag != nil {
		m.drag.End(m.plan, m.selection, pct, m.grid)
		m.drag = nil
		return
	}
	if m.marquee != nil {
		m.selection.Marquee(m.marquee.Rect(), m.contextSeats(), m.contextSections())
		m.marquee = nil
		return
	}
	if m.drawing.Phase == DrawFreeform && m.press.active && !m.press.moved {
		if shape, center, ok := m.drawing.FreeformClick(pct); ok {
			m.commitShape(shape, center)
		}
		return
	}
	if m.press.active && !m.press.moved {
		if m.press.onMarker {
			m.selection.Click(m.press.kind, m.press.id, m.press.additive)
		} else if !m.press.additive {
			m.selection.Clear()
		}
	}
}

// movedEnough filters out sub-cell jitter; terminal cell motion means
// any cell change is a real move.
func (m *model) movedEnough(pct Position) bool {
	sx1, sy1 := m.viewport.PercentageToStage(m.press.at.X, m.press.at.Y)
	sx2, sy2 := m.viewport.PercentageToStage(pct.X, pct.Y)
	return int(sx1) != int(sx2) || int(sy1) != int(sy2)
}

// commitShape materializes a drawn shape: seats directly, sections via
// the staged name-entry step.
func (m *model) commitShape(shape *Shape, center Position) {
	if m.drawing.Tool == ToolSeat || m.focusSection != "" {
		m.history.Record(m.plan)
		id := m.plan.Add(Marker{
			Kind:    KindSeat,
			X:       center.X,
			Y:       center.Y,
			Shape:   shape,
			Section: m.focusSection,
		})
		m.selection.Replace(KindSeat, []string{id})
		return
	}
	m.pendingShape = shape
	m.pendingPos = center
	m.nameInput = ""
	m.mode = ModeNameInput
}

// cancelAll is the Escape cascade: the innermost live gesture dies
// first, then selection, then the section focus.
func (m *model) cancelAll() {
	switch {
	case m.drag != nil:
		m.drag.Cancel(m.plan)
		m.drag = nil
		m.history.DropLast()
	case m.marquee != nil:
		m.marquee = nil
	case m.drawing.Active():
		m.drawing.Cancel()
	case m.selection.Total() > 0:
		m.selection.Clear()
	case m.focusSection != "":
		m.focusSection = ""
	}
	m.press = pressState{}
}

// contextSeats returns the seats in the current editing context: a
// drilled-into section's seats, or the unassigned floor seats at top
// level.
func (m *model) contextSeats() []Marker {
	return m.plan.SeatsIn(m.focusSection)
}

func (m *model) contextSections() []Marker {
	if m.focusSection != "" {
		return nil
	}
	return m.plan.Sections()
}

func (m *model) hitTest(pct Position) (Marker, bool) {
	return m.plan.MarkerAt(pct.X, pct.Y, m.contextSeats(), m.contextSections())
}

func (m *model) selectAllInContext() {
	if m.focusSection != "" || len(m.plan.Sections()) == 0 {
		seats := m.contextSeats()
		ids := make([]string, len(seats))
		for i, s := range seats {
			ids[i] = s.ID
		}
		m.selection.Replace(KindSeat, ids)
		return
	}
	sections := m.plan.Sections()
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	m.selection.Replace(KindSection, ids)
}

func (m *model) deleteSelection() {
	if m.selection.Total() == 0 {
		return
	}
	m.history.Record(m.plan)
	m.plan.Remove(KindSeat, m.selection.Ordered(KindSeat, m.plan.Seats())...)
	m.plan.Remove(KindSection, m.selection.Ordered(KindSection, m.plan.Sections())...)
	m.selection.Clear()
}

func (m *model) nudgeSelection(key string, step float64) {
	if m.selection.Total() == 0 {
		return
	}
	var dx, dy float64
	switch key {
	case "up", "shift+up":
		dy = -step
	case "down", "shift+down":
		dy = step
	case "left", "shift+left":
		dx = -step
	case "right", "shift+right":
		dx = step
	}
	m.history.Record(m.plan)
	MoveSelection(m.plan, m.selection, dx, dy)
}

// alignKind picks which kind the alignment applies to: whichever set
// has at least two members, seats first.
func (m *model) alignKind() *MarkerKind {
	if m.selection.Count(KindSeat) >= 2 {
		k := KindSeat
		return &k
	}
	if m.selection.Count(KindSection) >= 2 {
		k := KindSection
		return &k
	}
	return nil
}

func (m *model) applyAlign(op AlignOp) {
	kindPtr := m.alignKind()
	if kindPtr == nil {
		return
	}
	kind := *kindPtr
	var markers []Marker
	for _, id := range m.selection.Ordered(kind, *m.plan.markers(kind)) {
		if marker, ok := m.plan.Get(kind, id); ok {
			markers = append(markers, marker)
		}
	}
	updates := Align(op, markers)
	if len(updates) == 0 {
		return
	}
	m.history.Record(m.plan)
	m.plan.ApplyUpdates(kind, updates)
}

var backgroundPalette = []string{"", "#1d2433", "#f5efdc", "#14281d", "#2b1b2b"}
var fillAlphaSteps = []float64{1, 0.75, 0.5, 0.25}

func (m *model) cycleBackgroundColor() {
	current := 0
	for i, c := range backgroundPalette {
		if c == m.plan.BackgroundColor() {
			current = i
			break
		}
	}
	m.history.Record(m.plan)
	m.plan.SetBackgroundColor(backgroundPalette[(current+1)%len(backgroundPalette)])
}

func (m *model) cycleFillAlpha() {
	current := 0
	for i, a := range fillAlphaSteps {
		if a == m.plan.FillAlpha() {
			current = i
			break
		}
	}
	m.history.Record(m.plan)
	m.plan.SetFillAlpha(fillAlphaSteps[(current+1)%len(fillAlphaSteps)])
}

// saveCmd persists a snapshot in the background; the editor stays
// interactive and a failure leaves the in-memory plan untouched.
func (m *model) saveCmd() tea.Cmd {
	snap := takeSnapshot(m.plan)
	background := m.plan.BackgroundImage()
	store := m.store
	return func() tea.Msg {
		p := NewPlan()
		restoreSnapshot(p, snap)
		p.SetBackgroundImage(background)
		return saveResultMsg{err: store.Save(context.Background(), p)}
	}
}

func (m *model) exportCmd() tea.Cmd {
	snap := takeSnapshot(m.plan)
	background := m.plan.BackgroundImage()
	aspect := m.viewport.Aspect()
	filename := m.config.GetExportPath(fmt.Sprintf("seatplan-%s.png", time.Now().Format("20060102-150405")))
	return func() tea.Msg {
		p := NewPlan()
		restoreSnapshot(p, snap)
		p.SetBackgroundImage(background)
		return exportResultMsg{filename: filename, err: exportPNG(p, aspect, filename)}
	}
}
