package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeNameInput
	ModeAlign
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmDeleteSelection ConfirmAction = iota
	ConfirmQuit
)

// MarqueeSession tracks an in-flight rubber-band selection in percent
// coordinates. Discarded on release or Escape.
type MarqueeSession struct {
	Start   Position
	Current Position
}

func (s *MarqueeSession) Rect() Rect {
	return NormalizedRect(s.Start.X, s.Start.Y, s.Current.X, s.Current.Y)
}

// pressState remembers where the primary button went down so a release
// can be classified as a click or the end of a drag.
type pressState struct {
	active   bool
	moved    bool
	additive bool
	at       Position
	onMarker bool
	kind     MarkerKind
	id       string
}

type saveResultMsg struct {
	err error
}

type exportResultMsg struct {
	filename string
	err      error
}
