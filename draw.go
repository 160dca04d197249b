package main

import "math"

type Tool int

const (
	ToolNone Tool = iota
	ToolSeat
	ToolRectangle
	ToolCircle
	ToolEllipse
	ToolPolygon
	ToolSofa
	ToolStage
	ToolFreeform
)

func (t Tool) String() string {
	switch t {
	case ToolSeat:
		return "seat"
	case ToolRectangle:
		return "rectangle"
	case ToolCircle:
		return "circle"
	case ToolEllipse:
		return "ellipse"
	case ToolPolygon:
		return "polygon"
	case ToolSofa:
		return "sofa"
	case ToolStage:
		return "stage"
	case ToolFreeform:
		return "freeform"
	}
	return "none"
}

type DrawPhase int

const (
	DrawIdle DrawPhase = iota
	DrawToolSelected
	DrawDragging
	DrawFreeform
)

const (
	// Drags shorter than this commit nothing; the gesture was a click.
	minDragCommit = 0.3
	// A freeform click this close to the first point closes the polyline.
	freeformCloseRadius = 1.5
)

// Drawing is the shape-drawing state machine. Parametric tools go
// ToolSelected -> Dragging -> commit; the freeform tool accumulates
// clicked points until a click near the first point closes the shape.
// Escape or a tool switch abandons any in-flight capture.
type Drawing struct {
	Phase   DrawPhase
	Tool    Tool
	Start   Position
	Current Position
	Points  []float64 // absolute percent pairs while capturing
}

func NewDrawing() *Drawing {
	return &Drawing{}
}

func (d *Drawing) Active() bool { return d.Phase != DrawIdle }

// SelectTool arms a tool, abandoning whatever was in progress.
func (d *Drawing) SelectTool(t Tool) {
	d.Points = nil
	d.Tool = t
	switch t {
	case ToolNone:
		d.Phase = DrawIdle
	case ToolFreeform:
		d.Phase = DrawFreeform
	default:
		d.Phase = DrawToolSelected
	}
}

// Cancel returns to Idle with no partial shape committed.
func (d *Drawing) Cancel() {
	d.Phase = DrawIdle
	d.Tool = ToolNone
	d.Points = nil
}

// PointerDown starts a drag-to-draw gesture when a parametric tool is
// armed. Returns whether the event was consumed.
func (d *Drawing) PointerDown(p Position) bool {
	if d.Phase != DrawToolSelected {
		return false
	}
	d.Phase = DrawDragging
	d.Start = p
	d.Current = p
	return true
}

func (d *Drawing) PointerMove(p Position) {
	if d.Phase == DrawDragging {
		d.Current = p
	}
}

// PointerUp finishes a drag-to-draw gesture. Below the minimum drag
// distance nothing is committed and the gesture counts as a plain
// click. Otherwise the committed shape is centered on the drag
// rectangle's midpoint with minimum-clamped dimensions, and the tool
// stays armed for the next drag.
func (d *Drawing) PointerUp(p Position) (*Shape, Position, bool) {
	if d.Phase != DrawDragging {
		return nil, Position{}, false
	}
	d.Current = p
	d.Phase = DrawToolSelected
	dx := d.Current.X - d.Start.X
	dy := d.Current.Y - d.Start.Y
	if math.Hypot(dx, dy) < minDragCommit {
		return nil, Position{}, false
	}
	center := Position{
		X: (d.Start.X + d.Current.X) / 2,
		Y: (d.Start.Y + d.Current.Y) / 2,
	}
	w := math.Max(minDimension, math.Abs(dx))
	h := math.Max(minDimension, math.Abs(dy))
	return shapeFromDrag(d.Tool, w, h), center, true
}

func shapeFromDrag(t Tool, w, h float64) *Shape {
	switch t {
	case ToolSeat, ToolCircle:
		r := math.Max(minRadius, math.Max(w, h)/2)
		return &Shape{Type: ShapeCircle, Radius: r}
	case ToolEllipse:
		return &Shape{Type: ShapeEllipse, Width: w, Height: h}
	case ToolSofa:
		// Sofas keep a fixed 2:1 footprint regardless of the drag shape.
		w = math.Max(w, 2*minDimension)
		return &Shape{Type: ShapeSofa, Width: w, Height: w / 2}
	case ToolStage:
		return &Shape{Type: ShapeStage, Width: w, Height: h}
	case ToolPolygon:
		return &Shape{Type: ShapePolygon, Points: hexagonPoints(w, h)}
	default:
		return &Shape{Type: ShapeRectangle, Width: w, Height: h}
	}
}

// hexagonPoints builds a hexagon inscribed in a w x h box, as local
// offsets from the center.
func hexagonPoints(w, h float64) []float64 {
	pts := make([]float64, 0, 12)
	for i := 0; i < 6; i++ {
		angle := math.Pi/6 + float64(i)*math.Pi/3
		pts = append(pts, w/2*math.Cos(angle), h/2*math.Sin(angle))
	}
	return pts
}

// FreeformClick appends a point, or closes the polyline when the click
// lands within the close radius of the first point and at least two
// points were captured. On close the points are recentered around their
// centroid, a duplicate of the first point is appended as the closing
// vertex, and the capture state is discarded (the tool stays armed).
func (d *Drawing) FreeformClick(p Position) (*Shape, Position, bool) {
	if d.Phase != DrawFreeform {
		return nil, Position{}, false
	}
	if len(d.Points) >= 4 {
		first := Position{X: d.Points[0], Y: d.Points[1]}
		if math.Hypot(p.X-first.X, p.Y-first.Y) <= freeformCloseRadius {
			return d.closeFreeform()
		}
	}
	d.Points = append(d.Points, p.X, p.Y)
	return nil, Position{}, false
}

func (d *Drawing) closeFreeform() (*Shape, Position, bool) {
	n := len(d.Points) / 2
	var cx, cy float64
	for i := 0; i+1 < len(d.Points); i += 2 {
		cx += d.Points[i]
		cy += d.Points[i+1]
	}
	cx /= float64(n)
	cy /= float64(n)

	offsets := make([]float64, 0, len(d.Points)+2)
	for i := 0; i+1 < len(d.Points); i += 2 {
		offsets = append(offsets, d.Points[i]-cx, d.Points[i+1]-cy)
	}
	offsets = append(offsets, offsets[0], offsets[1])

	d.Points = nil
	return &Shape{Type: ShapeFreeform, Points: offsets}, Position{X: cx, Y: cy}, true
}

// RemoveLastPoint drops the most recently captured freeform point.
func (d *Drawing) RemoveLastPoint() {
	if d.Phase == DrawFreeform && len(d.Points) >= 2 {
		d.Points = d.Points[:len(d.Points)-2]
	}
}
