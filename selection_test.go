package main

import "testing"

func TestClickCollapsesOtherKind(t *testing.T) {
	sel := NewSelection()
	sel.Click(KindSection, "sec1", false)
	sel.Click(KindSeat, "seat1", false)

	if sel.Count(KindSection) != 0 {
		t.Error("plain click should clear the other kind")
	}
	if !sel.Has(KindSeat, "seat1") || sel.Count(KindSeat) != 1 {
		t.Error("clicked seat should be the singleton selection")
	}
}

func TestAdditiveClickToggles(t *testing.T) {
	sel := NewSelection()
	sel.Click(KindSection, "sec1", false)
	sel.Click(KindSeat, "seat1", true)
	sel.Click(KindSeat, "seat2", true)

	if sel.Count(KindSeat) != 2 {
		t.Errorf("expected 2 seats selected, got %d", sel.Count(KindSeat))
	}
	if !sel.Has(KindSection, "sec1") {
		t.Error("additive click must preserve the other kind's set")
	}

	sel.Click(KindSeat, "seat1", true)
	if sel.Has(KindSeat, "seat1") {
		t.Error("additive click should toggle membership off")
	}
}

func TestMarqueeSelectsByPosition(t *testing.T) {
	seats := []Marker{
		{ID: "in1", Kind: KindSeat, X: 20, Y: 20},
		{ID: "in2", Kind: KindSeat, X: 60, Y: 60, Shape: &Shape{Type: ShapeCircle, Radius: 30}},
		{ID: "out", Kind: KindSeat, X: 61, Y: 20},
	}
	sections := []Marker{
		{ID: "secIn", Kind: KindSection, X: 40, Y: 40},
		{ID: "secOut", Kind: KindSection, X: 10, Y: 90},
	}

	sel := NewSelection()
	sel.Click(KindSeat, "out", false)
	sel.Marquee(NormalizedRect(60, 60, 20, 20), seats, sections)

	if !sel.Has(KindSeat, "in1") || !sel.Has(KindSeat, "in2") {
		t.Error("markers inside the closed rect must be selected regardless of shape size")
	}
	if sel.Has(KindSeat, "out") {
		t.Error("marquee replaces the previous selection")
	}
	if !sel.Has(KindSection, "secIn") || sel.Has(KindSection, "secOut") {
		t.Error("sections are selected by containment too")
	}
}

func TestSelectedSingles(t *testing.T) {
	sel := NewSelection()
	if sel.SelectedSeat() != "" {
		t.Error("empty selection has no single seat")
	}
	sel.Click(KindSeat, "a", false)
	if sel.SelectedSeat() != "a" {
		t.Error("singleton set should surface the derived single selection")
	}
	sel.Click(KindSeat, "b", true)
	if sel.SelectedSeat() != "" {
		t.Error("size-2 set has no single selection")
	}
	sel.Click(KindSection, "s", false)
	if sel.SelectedSection() != "s" || sel.SelectedSeat() != "" {
		t.Error("section click should collapse seats and select the section")
	}
}

func TestOrderedFollowsMarkerOrder(t *testing.T) {
	markers := []Marker{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	sel := NewSelection()
	sel.Click(KindSeat, "b", true)
	sel.Click(KindSeat, "c", true)

	got := sel.Ordered(KindSeat, markers)
	if len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Errorf("Ordered should follow marker order, got %v", got)
	}
}

func TestClearAndReplace(t *testing.T) {
	sel := NewSelection()
	sel.Click(KindSeat, "a", false)
	sel.Click(KindSection, "s", true)
	sel.Clear()
	if sel.Total() != 0 {
		t.Error("Clear should empty both sets")
	}

	sel.Replace(KindSection, []string{"x", "y"})
	if sel.Count(KindSection) != 2 || sel.Count(KindSeat) != 0 {
		t.Error("Replace should install exactly the given ids")
	}
}
