package main

import (
	"math"

	"github.com/google/uuid"
)

type MarkerKind int

const (
	KindSeat MarkerKind = iota
	KindSection
)

func (k MarkerKind) String() string {
	if k == KindSeat {
		return "seat"
	}
	return "section"
}

// Marker is a seat or section placed on the floor plan. X and Y are
// percentages in [0,100] of the content extent and are kept clamped
// after every interactive mutation. Section markers also carry a name
// (Label), an optional background image reference, a fill color and a
// fill transparency. Seat markers may belong to a section.
type Marker struct {
	ID        string     `json:"id"`
	Kind      MarkerKind `json:"kind"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Shape     *Shape     `json:"shape,omitempty"`
	Label     string     `json:"label,omitempty"`
	Section   string     `json:"section,omitempty"`
	Image     string     `json:"image,omitempty"`
	Color     string     `json:"color,omitempty"`
	FillAlpha float64    `json:"fillAlpha,omitempty"`
}

func (m Marker) clone() Marker {
	m.Shape = m.Shape.Clone()
	return m
}

// Plan owns the marker collections. Everything else (selection, history,
// sessions) holds only ids or copies.
type Plan struct {
	seats           []Marker
	sections        []Marker
	backgroundColor string
	fillAlpha       float64
	backgroundImage string
}

func NewPlan() *Plan {
	return &Plan{fillAlpha: 1}
}

func (p *Plan) Seats() []Marker    { return p.seats }
func (p *Plan) Sections() []Marker { return p.sections }

func (p *Plan) BackgroundColor() string { return p.backgroundColor }
func (p *Plan) FillAlpha() float64      { return p.fillAlpha }
func (p *Plan) BackgroundImage() string { return p.backgroundImage }

func (p *Plan) SetBackgroundColor(c string)   { p.backgroundColor = c }
func (p *Plan) SetFillAlpha(a float64)        { p.fillAlpha = a }
func (p *Plan) SetBackgroundImage(ref string) { p.backgroundImage = ref }

func (p *Plan) markers(kind MarkerKind) *[]Marker {
	if kind == KindSeat {
		return &p.seats
	}
	return &p.sections
}

// Add appends a marker, assigning a fresh id when none is set and
// clamping its position. Returns the stored id.
func (p *Plan) Add(m Marker) string {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.X = clampPercent(m.X)
	m.Y = clampPercent(m.Y)
	clampShapeMin(m.Shape)
	list := p.markers(m.Kind)
	*list = append(*list, m)
	return m.ID
}

func (p *Plan) Get(kind MarkerKind, id string) (Marker, bool) {
	for _, m := range *p.markers(kind) {
		if m.ID == id {
			return m, true
		}
	}
	return Marker{}, false
}

func (p *Plan) index(kind MarkerKind, id string) int {
	for i, m := range *p.markers(kind) {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// SetPosition moves a marker, clamped into [0,100]. Unknown ids are
// ignored; selection sets may reference deleted markers.
func (p *Plan) SetPosition(kind MarkerKind, id string, x, y float64) {
	if i := p.index(kind, id); i >= 0 {
		list := *p.markers(kind)
		list[i].X = clampPercent(x)
		list[i].Y = clampPercent(y)
	}
}

func (p *Plan) SetShape(kind MarkerKind, id string, s *Shape) {
	if i := p.index(kind, id); i >= 0 {
		s = s.Clone()
		clampShapeMin(s)
		(*p.markers(kind))[i].Shape = s
	}
}

func (p *Plan) SetLabel(kind MarkerKind, id, label string) {
	if i := p.index(kind, id); i >= 0 {
		(*p.markers(kind))[i].Label = label
	}
}

// ApplyUpdates applies a batch of partial updates, one transaction from
// the caller's point of view (a single history snapshot precedes it).
func (p *Plan) ApplyUpdates(kind MarkerKind, updates map[string]MarkerUpdate) {
	list := *p.markers(kind)
	for i := range list {
		u, ok := updates[list[i].ID]
		if !ok {
			continue
		}
		if u.X != nil {
			list[i].X = clampPercent(*u.X)
		}
		if u.Y != nil {
			list[i].Y = clampPercent(*u.Y)
		}
		if u.Shape != nil {
			s := u.Shape.Clone()
			clampShapeMin(s)
			list[i].Shape = s
		}
	}
}

// Remove deletes the given ids. Ids not present are ignored.
func (p *Plan) Remove(kind MarkerKind, ids ...string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	list := *p.markers(kind)
	kept := list[:0]
	for _, m := range list {
		if !drop[m.ID] {
			kept = append(kept, m)
		}
	}
	*p.markers(kind) = kept
}

// SeatsIn returns the seats belonging to a section id ("" for
// unassigned floor seats).
func (p *Plan) SeatsIn(section string) []Marker {
	var out []Marker
	for _, s := range p.seats {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// Rect is a normalized marquee rectangle in percent coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func NormalizedRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// MarkerAt returns the topmost marker whose bounding box contains the
// percent position, searching seats before sections.
func (p *Plan) MarkerAt(x, y float64, seats, sections []Marker) (Marker, bool) {
	for i := len(seats) - 1; i >= 0; i-- {
		if boundsContain(BoundsOf(seats[i]), x, y) {
			return seats[i], true
		}
	}
	for i := len(sections) - 1; i >= 0; i-- {
		if boundsContain(BoundsOf(sections[i]), x, y) {
			return sections[i], true
		}
	}
	return Marker{}, false
}

func boundsContain(b Bounds, x, y float64) bool {
	// Degenerate boxes still get a small hit target so point markers
	// remain clickable.
	const slop = 0.5
	left, right, top, bottom := b.Left, b.Right, b.Top, b.Bottom
	if right-left < slop {
		left, right = b.CenterX-slop, b.CenterX+slop
	}
	if bottom-top < slop {
		top, bottom = b.CenterY-slop, b.CenterY+slop
	}
	return x >= left && x <= right && y >= top && y <= bottom
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
