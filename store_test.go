package main

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "plan.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := NewPlan()
	sectionID := p.Add(Marker{
		Kind:      KindSection,
		X:         40,
		Y:         40,
		Shape:     &Shape{Type: ShapeRectangle, Width: 20, Height: 10, CornerRadius: 1},
		Label:     "Balcony",
		Color:     "#ff8800",
		FillAlpha: 0.5,
	})
	seat1 := p.Add(Marker{Kind: KindSeat, X: 10, Y: 20, Shape: &Shape{Type: ShapeCircle, Radius: 1.5}, Label: "A1"})
	seat2 := p.Add(Marker{Kind: KindSeat, X: 12, Y: 20, Section: sectionID})
	p.SetBackgroundColor("#112233")
	p.SetFillAlpha(0.75)
	p.SetBackgroundImage("floor.png")

	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.BackgroundColor() != "#112233" || loaded.FillAlpha() != 0.75 || loaded.BackgroundImage() != "floor.png" {
		t.Errorf("plan row did not round trip: %q %v %q",
			loaded.BackgroundColor(), loaded.FillAlpha(), loaded.BackgroundImage())
	}

	seat, ok := loaded.Get(KindSeat, seat1)
	if !ok {
		t.Fatal("seat missing after load")
	}
	if seat.X != 10 || seat.Y != 20 || seat.Label != "A1" {
		t.Errorf("seat fields did not round trip: %+v", seat)
	}
	if seat.Shape == nil || seat.Shape.Type != ShapeCircle || seat.Shape.Radius != 1.5 {
		t.Errorf("seat shape did not round trip: %+v", seat.Shape)
	}

	assigned, _ := loaded.Get(KindSeat, seat2)
	if assigned.Section != sectionID {
		t.Errorf("section assignment lost: %q", assigned.Section)
	}

	section, ok := loaded.Get(KindSection, sectionID)
	if !ok {
		t.Fatal("section missing after load")
	}
	if section.Label != "Balcony" || section.Color != "#ff8800" || section.FillAlpha != 0.5 {
		t.Errorf("section fields did not round trip: %+v", section)
	}
	if section.Shape == nil || section.Shape.Width != 20 || section.Shape.CornerRadius != 1 {
		t.Errorf("section shape did not round trip: %+v", section.Shape)
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := NewPlan()
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, p.Add(Marker{Kind: KindSeat, X: float64(i * 10), Y: 50}))
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	seats := loaded.Seats()
	if len(seats) != len(ids) {
		t.Fatalf("expected %d seats, got %d", len(ids), len(seats))
	}
	for i, m := range seats {
		if m.ID != ids[i] {
			t.Errorf("seat %d out of order: %s", i, m.ID)
		}
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := NewPlan()
	old := p.Add(Marker{Kind: KindSeat, X: 10, Y: 10})
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	p.Remove(KindSeat, old)
	kept := p.Add(Marker{Kind: KindSeat, X: 20, Y: 20})
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := loaded.Get(KindSeat, old); ok {
		t.Error("removed seat should not survive a save")
	}
	if _, ok := loaded.Get(KindSeat, kept); !ok {
		t.Error("new seat missing after save")
	}
}

func TestLoadToleratesBadShapeColumns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rows := []struct{ id, shape string }{
		{"null-shape", ""},
		{"garbage", "not json"},
	}
	for i, r := range rows {
		var shape interface{}
		if r.shape != "" {
			shape = r.shape
		}
		_, err := s.db.ExecContext(ctx, `
            INSERT INTO seats (id, x_coordinate, y_coordinate, shape, label, section_id, position)
            VALUES (?, ?, ?, ?, '', '', ?)
        `, r.id, 10, 10, shape, i)
		if err != nil {
			t.Fatalf("seed row %s: %v", r.id, err)
		}
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, r := range rows {
		m, ok := loaded.Get(KindSeat, r.id)
		if !ok {
			t.Fatalf("seat %s should still load", r.id)
		}
		if m.Shape != nil {
			t.Errorf("seat %s should load shapeless, got %+v", r.id, m.Shape)
		}
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	loaded, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Seats()) != 0 || len(loaded.Sections()) != 0 {
		t.Error("fresh database should load an empty plan")
	}
	if loaded.FillAlpha() != 1 {
		t.Errorf("empty plan should keep the default fill alpha, got %v", loaded.FillAlpha())
	}
}
