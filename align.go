package main

import "sort"

type AlignOp string

const (
	AlignLeft        AlignOp = "left"
	AlignRight       AlignOp = "right"
	AlignTop         AlignOp = "top"
	AlignBottom      AlignOp = "bottom"
	AlignCenter      AlignOp = "center"
	AlignMiddle      AlignOp = "middle"
	SpaceBetweenH    AlignOp = "space-between-h"
	SpaceBetweenV    AlignOp = "space-between-v"
	SpaceBetweenBoth AlignOp = "space-between-both"
	SameWidth        AlignOp = "same-width"
	SameHeight       AlignOp = "same-height"
)

// MarkerUpdate is a partial update produced by the alignment engine and
// applied transactionally by the caller.
type MarkerUpdate struct {
	X     *float64
	Y     *float64
	Shape *Shape
}

func f64(v float64) *float64 { return &v }

// Align computes position/shape updates that align, distribute or
// size-equalize the given markers. Fewer than two markers is a no-op
// and returns nil.
func Align(op AlignOp, markers []Marker) map[string]MarkerUpdate {
	if len(markers) < 2 {
		return nil
	}
	switch op {
	case AlignLeft, AlignRight, AlignTop, AlignBottom, AlignCenter, AlignMiddle:
		return alignEdges(op, markers)
	case SpaceBetweenH:
		return distribute(markers, true)
	case SpaceBetweenV:
		return distribute(markers, false)
	case SpaceBetweenBoth:
		out := distribute(markers, true)
		for id, u := range distribute(markers, false) {
			merged := out[id]
			merged.Y = u.Y
			out[id] = merged
		}
		return out
	case SameWidth:
		return equalizeSize(markers, true)
	case SameHeight:
		return equalizeSize(markers, false)
	}
	return nil
}

func alignEdges(op AlignOp, markers []Marker) map[string]MarkerUpdate {
	boxes := make([]Bounds, len(markers))
	for i, m := range markers {
		boxes[i] = BoundsOf(m)
	}
	minLeft, maxRight := boxes[0].Left, boxes[0].Right
	minTop, maxBottom := boxes[0].Top, boxes[0].Bottom
	for _, b := range boxes[1:] {
		if b.Left < minLeft {
			minLeft = b.Left
		}
		if b.Right > maxRight {
			maxRight = b.Right
		}
		if b.Top < minTop {
			minTop = b.Top
		}
		if b.Bottom > maxBottom {
			maxBottom = b.Bottom
		}
	}

	out := make(map[string]MarkerUpdate, len(markers))
	for i, m := range markers {
		b := boxes[i]
		switch op {
		case AlignLeft:
			out[m.ID] = MarkerUpdate{X: f64(minLeft + b.Width/2)}
		case AlignRight:
			out[m.ID] = MarkerUpdate{X: f64(maxRight - b.Width/2)}
		case AlignTop:
			out[m.ID] = MarkerUpdate{Y: f64(minTop + b.Height/2)}
		case AlignBottom:
			out[m.ID] = MarkerUpdate{Y: f64(maxBottom - b.Height/2)}
		case AlignCenter:
			out[m.ID] = MarkerUpdate{X: f64((minLeft + maxRight) / 2)}
		case AlignMiddle:
			out[m.ID] = MarkerUpdate{Y: f64((minTop + maxBottom) / 2)}
		}
	}
	return out
}

// distribute spaces the markers along one axis with equal gaps. The two
// extreme markers keep their positions; interior markers are laid out
// between them. A negative computed gap is clamped to zero, so crowded
// members overlap rather than invert order.
func distribute(markers []Marker, horizontal bool) map[string]MarkerUpdate {
	type entry struct {
		m Marker
		b Bounds
	}
	entries := make([]entry, len(markers))
	for i, m := range markers {
		entries[i] = entry{m: m, b: BoundsOf(m)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if horizontal {
			return entries[i].b.CenterX < entries[j].b.CenterX
		}
		return entries[i].b.CenterY < entries[j].b.CenterY
	})

	first, last := entries[0], entries[len(entries)-1]
	var span, sizeSum float64
	if horizontal {
		span = last.b.Right - first.b.Left
	} else {
		span = last.b.Bottom - first.b.Top
	}
	for _, e := range entries {
		if horizontal {
			sizeSum += e.b.Width
		} else {
			sizeSum += e.b.Height
		}
	}
	gap := (span - sizeSum) / float64(len(entries)-1)
	if gap < 0 {
		gap = 0
	}

	out := make(map[string]MarkerUpdate, len(entries))
	cursor := 0.0
	if horizontal {
		cursor = first.b.Right + gap
	} else {
		cursor = first.b.Bottom + gap
	}
	for _, e := range entries[1 : len(entries)-1] {
		if horizontal {
			out[e.m.ID] = MarkerUpdate{X: f64(cursor + e.b.Width/2)}
			cursor += e.b.Width + gap
		} else {
			out[e.m.ID] = MarkerUpdate{Y: f64(cursor + e.b.Height/2)}
			cursor += e.b.Height + gap
		}
	}
	return out
}

// equalizeSize grows every member to the largest width (or height) in
// the set. Circles treat the dimension as a diameter.
func equalizeSize(markers []Marker, width bool) map[string]MarkerUpdate {
	maxDim := 0.0
	for _, m := range markers {
		b := BoundsOf(m)
		dim := b.Height
		if width {
			dim = b.Width
		}
		if dim > maxDim {
			maxDim = dim
		}
	}
	if maxDim <= 0 {
		return nil
	}

	out := make(map[string]MarkerUpdate, len(markers))
	for _, m := range markers {
		s := m.Shape
		if s == nil {
			s = DefaultShape(m.Kind)
		}
		updated := s.Clone()
		switch s.Type {
		case ShapeCircle:
			updated.Radius = maxDim / 2
		case ShapeRectangle, ShapeEllipse, ShapeSofa, ShapeStage:
			if width {
				updated.Width = maxDim
			} else {
				updated.Height = maxDim
			}
		case ShapePolygon, ShapeFreeform:
			w, h := shapeExtent(s)
			cur := h
			if width {
				cur = w
			}
			if cur <= 0 {
				continue
			}
			ratio := maxDim / cur
			for i := range updated.Points {
				if width == (i%2 == 0) {
					updated.Points[i] = s.Points[i] * ratio
				}
			}
		}
		clampShapeMin(updated)
		out[m.ID] = MarkerUpdate{Shape: updated}
	}
	return out
}
