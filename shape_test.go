package main

import (
	"math"
	"testing"
)

func TestBoundsOfCircle(t *testing.T) {
	m := Marker{Kind: KindSeat, X: 50, Y: 40, Shape: &Shape{Type: ShapeCircle, Radius: 3}}
	b := BoundsOf(m)
	if b.Left != 47 || b.Right != 53 || b.Top != 37 || b.Bottom != 43 {
		t.Errorf("unexpected circle bounds: %+v", b)
	}
	if b.Width != 6 || b.Height != 6 {
		t.Errorf("circle box should be 2r square, got %vx%v", b.Width, b.Height)
	}
}

func TestBoundsOfRectangle(t *testing.T) {
	m := Marker{Kind: KindSection, X: 20, Y: 20, Shape: &Shape{Type: ShapeRectangle, Width: 10, Height: 4}}
	b := BoundsOf(m)
	if b.Left != 15 || b.Right != 25 || b.Top != 18 || b.Bottom != 22 {
		t.Errorf("unexpected rectangle bounds: %+v", b)
	}
}

func TestBoundsOfNilShapeUsesDefault(t *testing.T) {
	b := BoundsOf(Marker{Kind: KindSeat, X: 10, Y: 10})
	if b.Width != 2*defaultSeatRadius {
		t.Errorf("expected default seat box, got width %v", b.Width)
	}
}

func TestBoundsOfPolygonFromPoints(t *testing.T) {
	m := Marker{Kind: KindSection, X: 50, Y: 50, Shape: &Shape{
		Type:   ShapePolygon,
		Points: []float64{-2, -1, 2, -1, 2, 1, -2, 1},
	}}
	b := BoundsOf(m)
	if b.Width != 4 || b.Height != 2 {
		t.Errorf("polygon extent should be 4x2, got %vx%v", b.Width, b.Height)
	}
}

func TestBoundsOfEmptyPolygonIsDegenerate(t *testing.T) {
	b := BoundsOf(Marker{Kind: KindSection, X: 30, Y: 30, Shape: &Shape{Type: ShapeFreeform}})
	if b.Width != 0 || b.Height != 0 {
		t.Errorf("empty freeform should be a point, got %vx%v", b.Width, b.Height)
	}
	if b.CenterX != 30 || b.CenterY != 30 {
		t.Errorf("degenerate box keeps the center: %+v", b)
	}
}

func TestScaleShapeClampsFactor(t *testing.T) {
	s := &Shape{Type: ShapeRectangle, Width: 10, Height: 10}

	big := ScaleShape(s, 1000)
	if big.Width != 10*maxScaleFactor {
		t.Errorf("factor not clamped to %v: width %v", maxScaleFactor, big.Width)
	}
	small := ScaleShape(s, 0.0001)
	if small.Width != 10*minScaleFactor {
		t.Errorf("factor not clamped to %v: width %v", minScaleFactor, small.Width)
	}
}

func TestScaleShapeMinimums(t *testing.T) {
	s := ScaleShape(&Shape{Type: ShapeCircle, Radius: 0.2}, 0.25)
	if s.Radius != minRadius {
		t.Errorf("radius should clamp to %v, got %v", minRadius, s.Radius)
	}
}

func TestScaleShapePoints(t *testing.T) {
	s := ScaleShape(&Shape{Type: ShapeFreeform, Points: []float64{1, 2, -3, 4}}, 2)
	want := []float64{2, 4, -6, 8}
	for i, v := range want {
		if s.Points[i] != v {
			t.Fatalf("point %d: want %v got %v", i, v, s.Points[i])
		}
	}
}

func TestScaleShapeDoesNotMutateInput(t *testing.T) {
	orig := &Shape{Type: ShapeFreeform, Points: []float64{1, 1}}
	ScaleShape(orig, 2)
	if orig.Points[0] != 1 {
		t.Error("ScaleShape mutated its input")
	}
}

func TestInferScale(t *testing.T) {
	tests := []struct {
		name     string
		old, new *Shape
		want     float64
	}{
		{"nil old", nil, &Shape{Type: ShapeCircle, Radius: 1}, 1},
		{"nil new", &Shape{Type: ShapeCircle, Radius: 1}, nil, 1},
		{"circle", &Shape{Type: ShapeCircle, Radius: 2}, &Shape{Type: ShapeCircle, Radius: 5}, 2.5},
		{
			"rect geometric mean",
			&Shape{Type: ShapeRectangle, Width: 2, Height: 8},
			&Shape{Type: ShapeRectangle, Width: 4, Height: 16},
			2,
		},
		{
			"points magnitude",
			&Shape{Type: ShapePolygon, Points: []float64{3, 4}},
			&Shape{Type: ShapePolygon, Points: []float64{6, 8}},
			2,
		},
	}
	for _, tt := range tests {
		if got := InferScale(tt.old, tt.new); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: want %v got %v", tt.name, tt.want, got)
		}
	}
}

func TestParseShapeLenient(t *testing.T) {
	for _, raw := range []string{"", "   ", "null"} {
		s, err := ParseShape(raw)
		if s != nil || err != nil {
			t.Errorf("%q should parse to no shape without error, got %v / %v", raw, s, err)
		}
	}

	s, err := ParseShape("{not json")
	if s != nil {
		t.Error("garbage should not produce a shape")
	}
	if err == nil {
		t.Error("garbage should report a parse error for logging")
	}

	s, err = ParseShape(`{"type":"circle","radius":1.5}`)
	if err != nil || s == nil || s.Type != ShapeCircle || s.Radius != 1.5 {
		t.Errorf("valid circle failed to parse: %v / %v", s, err)
	}

	s, _ = ParseShape(`{"type":"blob"}`)
	if s != nil {
		t.Error("unknown variant should mean no shape")
	}
}

func TestEncodeShapeRoundTrip(t *testing.T) {
	orig := &Shape{Type: ShapeFreeform, Points: []float64{-1, 0, 1, 0, 0, 2, -1, 0}}
	parsed, err := ParseShape(EncodeShape(orig))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if parsed.Type != orig.Type || len(parsed.Points) != len(orig.Points) {
		t.Errorf("round trip lost data: %+v", parsed)
	}
	if EncodeShape(nil) != "" {
		t.Error("nil shape should encode empty")
	}
}
