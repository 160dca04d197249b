package main

import (
	"math"
	"testing"
)

func planWithSeats(positions ...[2]float64) (*Plan, []string) {
	p := NewPlan()
	ids := make([]string, len(positions))
	for i, pos := range positions {
		ids[i] = p.Add(Marker{Kind: KindSeat, X: pos[0], Y: pos[1]})
	}
	return p, ids
}

func TestSingleDragClampsToCanvas(t *testing.T) {
	p, ids := planWithSeats([2]float64{50, 50})
	sel := NewSelection()

	d := StartDrag(p, sel, KindSeat, ids[0], Position{X: 50, Y: 50})
	d.Move(p, Position{X: 500, Y: -80})
	d.End(p, sel, Position{X: 500, Y: -80}, GridConfig{})

	m, _ := p.Get(KindSeat, ids[0])
	if m.X != 100 || m.Y != 0 {
		t.Errorf("expected clamped (100,0), got (%v,%v)", m.X, m.Y)
	}
}

func TestSingleDragAutoSelectsOnRelease(t *testing.T) {
	p, ids := planWithSeats([2]float64{10, 10})
	sel := NewSelection()

	d := StartDrag(p, sel, KindSeat, ids[0], Position{X: 10, Y: 10})
	d.End(p, sel, Position{X: 30, Y: 30}, GridConfig{})

	if !sel.Has(KindSeat, ids[0]) || sel.Count(KindSeat) != 1 {
		t.Error("dragging an unselected marker should select it on release")
	}
}

func TestGridSnapBeforeClamp(t *testing.T) {
	p, ids := planWithSeats([2]float64{50, 50})
	sel := NewSelection()

	d := StartDrag(p, sel, KindSeat, ids[0], Position{X: 50, Y: 50})
	d.End(p, sel, Position{X: 53.4, Y: 56.6}, GridConfig{Enabled: true, Size: 5})

	m, _ := p.Get(KindSeat, ids[0])
	if m.X != 55 || m.Y != 55 {
		t.Errorf("expected grid-snapped (55,55), got (%v,%v)", m.X, m.Y)
	}
}

func TestBatchDragPreservesRelativeOffsets(t *testing.T) {
	p, ids := planWithSeats([2]float64{10, 10}, [2]float64{20, 30}, [2]float64{40, 50})
	sel := NewSelection()
	sel.Replace(KindSeat, ids)

	d := StartDrag(p, sel, KindSeat, ids[0], Position{X: 10, Y: 10})
	if !d.Batch() {
		t.Fatal("drag of a multi-selection member must open a batch session")
	}
	d.Move(p, Position{X: 15, Y: 22})
	d.End(p, sel, Position{X: 15, Y: 22}, GridConfig{})

	want := [][2]float64{{15, 22}, {25, 42}, {45, 62}}
	for i, id := range ids {
		m, _ := p.Get(KindSeat, id)
		if math.Abs(m.X-want[i][0]) > 1e-9 || math.Abs(m.Y-want[i][1]) > 1e-9 {
			t.Errorf("member %d: want (%v,%v) got (%v,%v)", i, want[i][0], want[i][1], m.X, m.Y)
		}
	}
}

func TestBatchDragMembersClipIndependently(t *testing.T) {
	p, ids := planWithSeats([2]float64{5, 50}, [2]float64{90, 50})
	sel := NewSelection()
	sel.Replace(KindSeat, ids)

	d := StartDrag(p, sel, KindSeat, ids[1], Position{X: 90, Y: 50})
	d.End(p, sel, Position{X: 70, Y: 50}, GridConfig{})

	first, _ := p.Get(KindSeat, ids[0])
	second, _ := p.Get(KindSeat, ids[1])
	if first.X != 0 {
		t.Errorf("member at the edge should clip to 0, got %v", first.X)
	}
	if second.X != 70 {
		t.Errorf("unclipped member should move the full delta, got %v", second.X)
	}
}

func TestSingleDragWhenSelectionHasOneMember(t *testing.T) {
	p, ids := planWithSeats([2]float64{10, 10})
	sel := NewSelection()
	sel.Click(KindSeat, ids[0], false)

	d := StartDrag(p, sel, KindSeat, ids[0], Position{X: 10, Y: 10})
	if d.Batch() {
		t.Error("a size-1 selection must not open a batch session")
	}
}

func TestDragCancelRestoresPositions(t *testing.T) {
	p, ids := planWithSeats([2]float64{10, 10}, [2]float64{20, 20})
	sel := NewSelection()
	sel.Replace(KindSeat, ids)

	d := StartDrag(p, sel, KindSeat, ids[0], Position{X: 10, Y: 10})
	d.Move(p, Position{X: 40, Y: 40})
	d.Cancel(p)

	for i, want := range [][2]float64{{10, 10}, {20, 20}} {
		m, _ := p.Get(KindSeat, ids[i])
		if m.X != want[0] || m.Y != want[1] {
			t.Errorf("member %d not restored: (%v,%v)", i, m.X, m.Y)
		}
	}
}

func TestMoveSelectionNudges(t *testing.T) {
	p, ids := planWithSeats([2]float64{0.05, 10})
	sel := NewSelection()
	sel.Click(KindSeat, ids[0], false)

	MoveSelection(p, sel, -1, 0.1)
	m, _ := p.Get(KindSeat, ids[0])
	if m.X != 0 {
		t.Errorf("nudge past the edge should clamp, got %v", m.X)
	}
	if math.Abs(m.Y-10.1) > 1e-9 {
		t.Errorf("expected y 10.1, got %v", m.Y)
	}
}
