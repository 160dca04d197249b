package main

// Snapshot is an immutable deep copy of the designer state used for
// undo/redo. It never shares marker or shape memory with the live plan.
type Snapshot struct {
	Seats           []Marker
	Sections        []Marker
	BackgroundColor string
	FillAlpha       float64
}

func takeSnapshot(p *Plan) Snapshot {
	return Snapshot{
		Seats:           cloneMarkers(p.seats),
		Sections:        cloneMarkers(p.sections),
		BackgroundColor: p.backgroundColor,
		FillAlpha:       p.fillAlpha,
	}
}

func restoreSnapshot(p *Plan, s Snapshot) {
	p.seats = cloneMarkers(s.Seats)
	p.sections = cloneMarkers(s.Sections)
	p.backgroundColor = s.BackgroundColor
	p.fillAlpha = s.FillAlpha
}

func cloneMarkers(in []Marker) []Marker {
	out := make([]Marker, len(in))
	for i, m := range in {
		out[i] = m.clone()
	}
	return out
}

// History holds the undo and redo snapshot stacks. Record is called
// exactly once immediately before each mutating action; an empty-stack
// undo or redo is a no-op.
type History struct {
	undo []Snapshot
	redo []Snapshot
}

func NewHistory() *History {
	return &History{}
}

// Record pushes the current state onto the undo stack and discards the
// redo branch.
func (h *History) Record(p *Plan) {
	h.undo = append(h.undo, takeSnapshot(p))
	h.redo = h.redo[:0]
}

func (h *History) Undo(p *Plan) bool {
	if len(h.undo) == 0 {
		return false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, takeSnapshot(p))
	restoreSnapshot(p, last)
	return true
}

func (h *History) Redo(p *Plan) bool {
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, takeSnapshot(p))
	restoreSnapshot(p, last)
	return true
}

// DropLast discards the most recent undo entry. Used when a gesture
// that recorded a snapshot is cancelled and the state already equals it.
func (h *History) DropLast() {
	if len(h.undo) > 0 {
		h.undo = h.undo[:len(h.undo)-1]
	}
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear empties both stacks. Called after a successful save; an empty
// undo stack is also the definition of "not dirty".
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

func (h *History) IsDirty() bool { return len(h.undo) > 0 }
