package main

import "math"

// Position is a percent-space point.
type Position struct {
	X, Y float64
}

// GridConfig controls optional snap-to-grid on drag release. Snapping
// rounds to the nearest grid multiple before clamping.
type GridConfig struct {
	Enabled bool
	Size    float64
}

func snapToGrid(v float64, g GridConfig) float64 {
	if !g.Enabled || g.Size <= 0 {
		return v
	}
	return math.Round(v/g.Size) * g.Size
}

// DragSession is the in-memory state of one drag gesture. Initial is
// populated only for a batch drag (the dragged marker belongs to a
// selection of size > 1) and maps every member to its position at drag
// start. The session is discarded on release or cancel.
type DragSession struct {
	Kind      MarkerKind
	DraggedID string
	Origin    Position
	Start     Position
	Current   Position
	Initial   map[string]Position
}

func (d *DragSession) Batch() bool { return len(d.Initial) > 0 }

func (d *DragSession) delta() (dx, dy float64) {
	return d.Current.X - d.Start.X, d.Current.Y - d.Start.Y
}

// StartDrag opens a drag session for the marker under the pointer. When
// the marker is part of a multi-selection of its kind, the session
// captures every member's initial position for a batch drag.
func StartDrag(p *Plan, sel *Selection, kind MarkerKind, id string, pointer Position) *DragSession {
	m, ok := p.Get(kind, id)
	if !ok {
		return nil
	}
	d := &DragSession{
		Kind:      kind,
		DraggedID: id,
		Origin:    Position{X: m.X, Y: m.Y},
		Start:     pointer,
		Current:   pointer,
	}
	if sel.Has(kind, id) && sel.Count(kind) > 1 {
		d.Initial = make(map[string]Position, sel.Count(kind))
		for _, memberID := range sel.Ordered(kind, *p.markers(kind)) {
			member, ok := p.Get(kind, memberID)
			if !ok {
				continue
			}
			d.Initial[memberID] = Position{X: member.X, Y: member.Y}
		}
	}
	return d
}

// Move updates the live preview: the pointer delta since drag start is
// applied uniformly to the dragged marker and, in a batch, every other
// member. Positions stay clamped during the preview.
func (d *DragSession) Move(p *Plan, pointer Position) {
	d.Current = pointer
	dx, dy := d.delta()
	if d.Batch() {
		for id, initial := range d.Initial {
			p.SetPosition(d.Kind, id, initial.X+dx, initial.Y+dy)
		}
		return
	}
	p.SetPosition(d.Kind, d.DraggedID, d.Origin.X+dx, d.Origin.Y+dy)
}

// End commits the drag. Each member's final position is its initial
// position plus the total delta, clamped independently into [0,100];
// members at the boundary may clip while the rest keep moving, changing
// relative spacing for the clipped ones. Grid snap applies to a single
// drag only. An unselected marker dragged directly is selected on
// release, so one motion stands in for click-then-drag.
func (d *DragSession) End(p *Plan, sel *Selection, pointer Position, grid GridConfig) {
	d.Current = pointer
	dx, dy := d.delta()
	if d.Batch() {
		for id, initial := range d.Initial {
			p.SetPosition(d.Kind, id, initial.X+dx, initial.Y+dy)
		}
		return
	}
	x := snapToGrid(d.Origin.X+dx, grid)
	y := snapToGrid(d.Origin.Y+dy, grid)
	p.SetPosition(d.Kind, d.DraggedID, x, y)
	if !sel.Has(d.Kind, d.DraggedID) {
		sel.Click(d.Kind, d.DraggedID, false)
	}
}

// Cancel restores every affected marker to its position at drag start.
func (d *DragSession) Cancel(p *Plan) {
	if d.Batch() {
		for id, initial := range d.Initial {
			p.SetPosition(d.Kind, id, initial.X, initial.Y)
		}
		return
	}
	p.SetPosition(d.Kind, d.DraggedID, d.Origin.X, d.Origin.Y)
}

// MoveSelection nudges every selected marker by (dx, dy) percent units,
// clamped. Used by the arrow-key contract.
func MoveSelection(p *Plan, sel *Selection, dx, dy float64) int {
	moved := 0
	for _, kind := range []MarkerKind{KindSeat, KindSection} {
		for _, id := range sel.Ordered(kind, *p.markers(kind)) {
			m, ok := p.Get(kind, id)
			if !ok {
				continue
			}
			p.SetPosition(kind, id, m.X+dx, m.Y+dy)
			moved++
		}
	}
	return moved
}
