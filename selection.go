package main

// Selection tracks the selected seat and section id sets. It holds ids
// only; an id may outlive its marker after a delete, which callers must
// tolerate when resolving.
type Selection struct {
	seats    map[string]struct{}
	sections map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{
		seats:    make(map[string]struct{}),
		sections: make(map[string]struct{}),
	}
}

func (s *Selection) set(kind MarkerKind) map[string]struct{} {
	if kind == KindSeat {
		return s.seats
	}
	return s.sections
}

func (s *Selection) other(kind MarkerKind) map[string]struct{} {
	if kind == KindSeat {
		return s.sections
	}
	return s.seats
}

// Click applies the click transition: a plain click collapses the other
// kind's set and makes the clicked id a singleton; an additive click
// toggles membership and leaves the other kind alone.
func (s *Selection) Click(kind MarkerKind, id string, additive bool) {
	if additive {
		set := s.set(kind)
		if _, ok := set[id]; ok {
			delete(set, id)
		} else {
			set[id] = struct{}{}
		}
		return
	}
	clear(s.other(kind))
	set := s.set(kind)
	clear(set)
	set[id] = struct{}{}
}

// Marquee replaces both sets with the markers whose position falls in
// the closed rectangle, regardless of shape size.
func (s *Selection) Marquee(r Rect, seats, sections []Marker) {
	clear(s.seats)
	clear(s.sections)
	for _, m := range seats {
		if r.Contains(m.X, m.Y) {
			s.seats[m.ID] = struct{}{}
		}
	}
	for _, m := range sections {
		if r.Contains(m.X, m.Y) {
			s.sections[m.ID] = struct{}{}
		}
	}
}

// Replace makes the given ids the whole selection for one kind, clearing
// the other kind. Used by select-all and paste.
func (s *Selection) Replace(kind MarkerKind, ids []string) {
	clear(s.seats)
	clear(s.sections)
	set := s.set(kind)
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

func (s *Selection) Clear() {
	clear(s.seats)
	clear(s.sections)
}

func (s *Selection) Has(kind MarkerKind, id string) bool {
	_, ok := s.set(kind)[id]
	return ok
}

func (s *Selection) Count(kind MarkerKind) int { return len(s.set(kind)) }
func (s *Selection) Total() int                { return len(s.seats) + len(s.sections) }

// Ordered returns the selected ids of a kind in the given markers'
// order, keeping downstream operations deterministic.
func (s *Selection) Ordered(kind MarkerKind, markers []Marker) []string {
	set := s.set(kind)
	out := make([]string, 0, len(set))
	for _, m := range markers {
		if _, ok := set[m.ID]; ok {
			out = append(out, m.ID)
		}
	}
	return out
}

// SelectedSeat returns the seat id when exactly one seat is selected,
// else "". Drives the single-marker editing panel.
func (s *Selection) SelectedSeat() string {
	return soleMember(s.seats)
}

func (s *Selection) SelectedSection() string {
	return soleMember(s.sections)
}

func soleMember(set map[string]struct{}) string {
	if len(set) != 1 {
		return ""
	}
	for id := range set {
		return id
	}
	return ""
}
