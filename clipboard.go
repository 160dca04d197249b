package main

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
)

// Pasted markers land one unit down-right of their originals.
const pasteOffset = 1.0

type clipboardPayload struct {
	Seats    []Marker `json:"seats,omitempty"`
	Sections []Marker `json:"sections,omitempty"`
}

// copySelection serializes the selected markers to the system clipboard
// as JSON. Returns how many markers were copied.
func copySelection(p *Plan, sel *Selection) (int, error) {
	var payload clipboardPayload
	for _, id := range sel.Ordered(KindSeat, p.seats) {
		if m, ok := p.Get(KindSeat, id); ok {
			payload.Seats = append(payload.Seats, m.clone())
		}
	}
	for _, id := range sel.Ordered(KindSection, p.sections) {
		if m, ok := p.Get(KindSection, id); ok {
			payload.Sections = append(payload.Sections, m.clone())
		}
	}
	total := len(payload.Seats) + len(payload.Sections)
	if total == 0 {
		return 0, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return 0, fmt.Errorf("write clipboard: %w", err)
	}
	return total, nil
}

// pasteClipboard reads marker JSON from the system clipboard and adds
// duplicates with fresh ids, offset by one unit. The history snapshot
// is recorded only once the payload is known to be valid. The pasted
// markers become the selection.
func pasteClipboard(p *Plan, sel *Selection, h *History) (int, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read clipboard: %w", err)
	}
	var payload clipboardPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return 0, fmt.Errorf("clipboard has no markers: %w", err)
	}
	total := len(payload.Seats) + len(payload.Sections)
	if total == 0 {
		return 0, nil
	}

	h.Record(p)
	var seatIDs, sectionIDs []string
	for _, m := range payload.Seats {
		m = m.clone()
		m.ID = uuid.NewString()
		m.Kind = KindSeat
		m.X = clampPercent(m.X + pasteOffset)
		m.Y = clampPercent(m.Y + pasteOffset)
		seatIDs = append(seatIDs, p.Add(m))
	}
	for _, m := range payload.Sections {
		m = m.clone()
		m.ID = uuid.NewString()
		m.Kind = KindSection
		m.X = clampPercent(m.X + pasteOffset)
		m.Y = clampPercent(m.Y + pasteOffset)
		sectionIDs = append(sectionIDs, p.Add(m))
	}

	if len(seatIDs) > 0 {
		sel.Replace(KindSeat, seatIDs)
		for _, id := range sectionIDs {
			sel.sections[id] = struct{}{}
		}
	} else {
		sel.Replace(KindSection, sectionIDs)
	}
	return total, nil
}
