package main

const (
	// Below this many markers everything is rendered.
	defaultVirtualizeThreshold = 400
	// Above this many visible markers hover effects are disabled.
	defaultHoverEffectThreshold = 200
	// Viewport expansion, as a fraction of the container size.
	viewportPaddingFraction = 0.15
)

// VisibleMarkers culls markers whose screen position falls outside the
// padded viewport once the total marker count exceeds the threshold.
// Selected markers are always kept so their transform handles stay
// interactable off-screen.
func VisibleMarkers(markers []Marker, v *Viewport, sel *Selection, threshold int) []Marker {
	if len(markers) <= threshold {
		return markers
	}
	padX := v.ContainerW * viewportPaddingFraction
	padY := v.ContainerH * viewportPaddingFraction
	out := make([]Marker, 0, len(markers))
	for _, m := range markers {
		if sel.Has(m.Kind, m.ID) {
			out = append(out, m)
			continue
		}
		sx, sy := v.PercentageToStage(m.X, m.Y)
		if sx >= -padX && sx <= v.ContainerW+padX && sy >= -padY && sy <= v.ContainerH+padY {
			out = append(out, m)
		}
	}
	return out
}

// HoverEffectsEnabled is a render-cost switch, not a correctness one.
func HoverEffectsEnabled(visibleCount, threshold int) bool {
	return visibleCount <= threshold
}
