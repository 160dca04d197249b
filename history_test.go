package main

import (
	"reflect"
	"testing"
)

func TestUndoRedoExactness(t *testing.T) {
	p := NewPlan()
	h := NewHistory()

	initial := takeSnapshot(p)

	// N mutating operations, each preceded by a snapshot.
	h.Record(p)
	id1 := p.Add(Marker{Kind: KindSeat, X: 10, Y: 10})
	h.Record(p)
	p.Add(Marker{Kind: KindSection, X: 50, Y: 50, Label: "Balcony"})
	h.Record(p)
	p.SetPosition(KindSeat, id1, 20, 25)
	h.Record(p)
	p.SetBackgroundColor("#112233")

	final := takeSnapshot(p)

	for i := 0; i < 4; i++ {
		if !h.Undo(p) {
			t.Fatalf("undo %d failed", i)
		}
	}
	if !reflect.DeepEqual(takeSnapshot(p), initial) {
		t.Error("N undos must restore the exact pre-mutation state")
	}
	if h.Undo(p) {
		t.Error("undo on an empty stack must be a no-op")
	}

	for i := 0; i < 4; i++ {
		if !h.Redo(p) {
			t.Fatalf("redo %d failed", i)
		}
	}
	if !reflect.DeepEqual(takeSnapshot(p), final) {
		t.Error("N redos must restore the exact post-mutation state")
	}
	if h.Redo(p) {
		t.Error("redo on an empty stack must be a no-op")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	p := NewPlan()
	h := NewHistory()

	h.Record(p)
	p.Add(Marker{Kind: KindSeat, X: 1, Y: 1})
	h.Undo(p)
	if !h.CanRedo() {
		t.Fatal("expected a redo entry after undo")
	}

	h.Record(p)
	p.Add(Marker{Kind: KindSeat, X: 2, Y: 2})
	if h.CanRedo() {
		t.Error("a new mutation must discard the redo branch")
	}
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	p := NewPlan()
	h := NewHistory()
	id := p.Add(Marker{Kind: KindSeat, X: 10, Y: 10, Shape: &Shape{Type: ShapeFreeform, Points: []float64{1, 2}}})

	h.Record(p)
	// Mutate through the live plan; the snapshot must not see it.
	p.SetPosition(KindSeat, id, 90, 90)
	seat, _ := p.Get(KindSeat, id)
	seat.Shape.Points[0] = 99

	h.Undo(p)
	restored, _ := p.Get(KindSeat, id)
	if restored.X != 10 || restored.Shape.Points[0] != 1 {
		t.Errorf("snapshot shared memory with the live plan: %+v", restored)
	}
}

func TestClearHistoryAndDirty(t *testing.T) {
	p := NewPlan()
	h := NewHistory()
	if h.IsDirty() {
		t.Error("fresh history is clean")
	}

	h.Record(p)
	p.Add(Marker{Kind: KindSeat, X: 1, Y: 1})
	if !h.IsDirty() || !h.CanUndo() {
		t.Error("recorded mutation should mark the plan dirty")
	}

	h.Clear()
	if h.IsDirty() || h.CanUndo() || h.CanRedo() {
		t.Error("Clear must empty both stacks and report clean")
	}
}

func TestDropLast(t *testing.T) {
	p := NewPlan()
	h := NewHistory()
	h.Record(p)
	h.DropLast()
	if h.CanUndo() {
		t.Error("DropLast should discard the pending entry")
	}
	h.DropLast() // empty stack is fine
}
