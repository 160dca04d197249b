package main

import (
	"encoding/json"
	"math"
	"strings"
)

type ShapeType string

const (
	ShapeCircle    ShapeType = "circle"
	ShapeRectangle ShapeType = "rectangle"
	ShapeEllipse   ShapeType = "ellipse"
	ShapePolygon   ShapeType = "polygon"
	ShapeFreeform  ShapeType = "freeform"
	ShapeSofa      ShapeType = "sofa"
	ShapeStage     ShapeType = "stage"
)

// Shape is the tagged union stored per marker. Dimensions are in percent
// units of the content extent. Points hold even-length local offsets from
// the marker center (polygon and freeform variants).
type Shape struct {
	Type         ShapeType `json:"type"`
	Radius       float64   `json:"radius,omitempty"`
	Width        float64   `json:"width,omitempty"`
	Height       float64   `json:"height,omitempty"`
	CornerRadius float64   `json:"cornerRadius,omitempty"`
	Points       []float64 `json:"points,omitempty"`
}

const (
	minRadius    = 0.1
	minDimension = 0.1

	minScaleFactor = 0.25
	maxScaleFactor = 4.0

	defaultSeatRadius    = 0.5
	defaultSectionWidth  = 10.0
	defaultSectionHeight = 10.0
)

// Bounds is the axis-aligned box of a marker's shape placed at its
// position. Left/Right/Top/Bottom are in percent coordinates.
type Bounds struct {
	Left, Right, Top, Bottom float64
	CenterX, CenterY         float64
	Width, Height            float64
}

func (s *Shape) Clone() *Shape {
	if s == nil {
		return nil
	}
	dup := *s
	if s.Points != nil {
		dup.Points = append([]float64(nil), s.Points...)
	}
	return &dup
}

// DefaultShape returns the shape used when a marker has none.
func DefaultShape(kind MarkerKind) *Shape {
	if kind == KindSeat {
		return &Shape{Type: ShapeCircle, Radius: defaultSeatRadius}
	}
	return &Shape{Type: ShapeRectangle, Width: defaultSectionWidth, Height: defaultSectionHeight}
}

// shapeExtent returns the width/height of a shape's box. Point-based
// variants measure their point extents; an empty point list is degenerate.
func shapeExtent(s *Shape) (w, h float64) {
	if s == nil {
		return 0, 0
	}
	switch s.Type {
	case ShapeCircle:
		return 2 * s.Radius, 2 * s.Radius
	case ShapeRectangle, ShapeEllipse, ShapeSofa, ShapeStage:
		return s.Width, s.Height
	case ShapePolygon, ShapeFreeform:
		if s.Width > 0 || s.Height > 0 {
			return s.Width, s.Height
		}
		if len(s.Points) < 2 {
			return 0, 0
		}
		minX, maxX := s.Points[0], s.Points[0]
		minY, maxY := s.Points[1], s.Points[1]
		for i := 0; i+1 < len(s.Points); i += 2 {
			minX = math.Min(minX, s.Points[i])
			maxX = math.Max(maxX, s.Points[i])
			minY = math.Min(minY, s.Points[i+1])
			maxY = math.Max(maxY, s.Points[i+1])
		}
		return maxX - minX, maxY - minY
	}
	return 0, 0
}

// BoundsOf computes the bounding box of a marker, falling back to the
// kind's default shape when the marker carries none.
func BoundsOf(m Marker) Bounds {
	s := m.Shape
	if s == nil {
		s = DefaultShape(m.Kind)
	}
	w, h := shapeExtent(s)
	return Bounds{
		Left:    m.X - w/2,
		Right:   m.X + w/2,
		Top:     m.Y - h/2,
		Bottom:  m.Y + h/2,
		CenterX: m.X,
		CenterY: m.Y,
		Width:   w,
		Height:  h,
	}
}

// ScaleShape returns a copy of s scaled by factor. The factor is clamped
// to [0.25, 4] so a wild transform gesture cannot blow a shape up or
// collapse it. Dimensions keep their variant minimums after scaling.
func ScaleShape(s *Shape, factor float64) *Shape {
	if s == nil {
		return nil
	}
	if factor < minScaleFactor {
		factor = minScaleFactor
	} else if factor > maxScaleFactor {
		factor = maxScaleFactor
	}
	out := s.Clone()
	switch s.Type {
	case ShapeCircle:
		out.Radius = math.Max(minRadius, s.Radius*factor)
	case ShapeRectangle, ShapeEllipse, ShapeSofa, ShapeStage:
		out.Width = math.Max(minDimension, s.Width*factor)
		out.Height = math.Max(minDimension, s.Height*factor)
		out.CornerRadius = s.CornerRadius * factor
	case ShapePolygon, ShapeFreeform:
		for i := range out.Points {
			out.Points[i] = s.Points[i] * factor
		}
		if out.Width > 0 {
			out.Width *= factor
		}
		if out.Height > 0 {
			out.Height *= factor
		}
	}
	return out
}

// InferScale estimates the uniform scale factor between two shapes: the
// geometric mean of the width and height ratios for box-like variants,
// the point-vector magnitude ratio for point-based ones. Returns 1 when
// the factor cannot be determined.
func InferScale(oldShape, newShape *Shape) float64 {
	if oldShape == nil || newShape == nil {
		return 1
	}
	switch oldShape.Type {
	case ShapeCircle:
		if oldShape.Radius > 0 && newShape.Radius > 0 {
			return newShape.Radius / oldShape.Radius
		}
	case ShapeRectangle, ShapeEllipse, ShapeSofa, ShapeStage:
		if oldShape.Width > 0 && oldShape.Height > 0 && newShape.Width > 0 && newShape.Height > 0 {
			return math.Sqrt((newShape.Width / oldShape.Width) * (newShape.Height / oldShape.Height))
		}
	case ShapePolygon, ShapeFreeform:
		oldMag := pointMagnitude(oldShape.Points)
		newMag := pointMagnitude(newShape.Points)
		if oldMag > 0 && newMag > 0 {
			return newMag / oldMag
		}
	}
	return 1
}

func pointMagnitude(points []float64) float64 {
	var sum float64
	for _, p := range points {
		sum += p * p
	}
	return math.Sqrt(sum)
}

// clampShapeMin enforces the variant minimum dimensions in place.
func clampShapeMin(s *Shape) {
	if s == nil {
		return
	}
	switch s.Type {
	case ShapeCircle:
		if s.Radius < minRadius {
			s.Radius = minRadius
		}
	case ShapeRectangle, ShapeEllipse, ShapeSofa, ShapeStage:
		if s.Width < minDimension {
			s.Width = minDimension
		}
		if s.Height < minDimension {
			s.Height = minDimension
		}
	}
}

// ParseShape decodes the persisted JSON form of a shape. Null, empty and
// unparseable input all mean "no shape"; the caller falls back to the
// kind default. The error is returned for logging only, never fatal.
func ParseShape(raw string) (*Shape, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var s Shape
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return nil, err
	}
	switch s.Type {
	case ShapeCircle, ShapeRectangle, ShapeEllipse, ShapePolygon, ShapeFreeform, ShapeSofa, ShapeStage:
		return &s, nil
	}
	return nil, nil
}

// EncodeShape is the inverse of ParseShape; a nil shape encodes as "".
func EncodeShape(s *Shape) string {
	if s == nil {
		return ""
	}
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}
