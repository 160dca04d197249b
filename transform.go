package main

const (
	// Aspect ratio (height/width) used while no floor-plan image is set.
	fallbackAspectRatio = 0.75

	minZoom = 0.2
	maxZoom = 8.0
)

// Viewport maps percentage coordinates to stage (screen) pixels and back.
// The content is letterboxed: the largest rectangle of the content aspect
// ratio that fits the container, centered. Zoom and pan apply on top.
//
// While no background image exists the first non-zero container
// measurement is locked as the reference frame, so markers do not drift
// when the window is resized. Setting an image aspect unlocks it.
type Viewport struct {
	ContainerW float64
	ContainerH float64
	Zoom       float64
	PanX       float64
	PanY       float64

	aspect   float64 // content height/width
	hasImage bool
	lockedW  float64
	lockedH  float64
}

// NewViewport starts at zoom 1 with the given height/width fallback
// ratio, used until a background image supplies the real one.
func NewViewport(fallbackAspect float64) *Viewport {
	if fallbackAspect <= 0 {
		fallbackAspect = fallbackAspectRatio
	}
	return &Viewport{Zoom: 1, aspect: fallbackAspect}
}

func (v *Viewport) SetContainerSize(w, h float64) {
	v.ContainerW = w
	v.ContainerH = h
	if !v.hasImage && v.lockedW == 0 && w > 0 && h > 0 {
		v.lockedW = w
		v.lockedH = h
	}
}

// SetImageAspect installs the background image's height/width ratio and
// releases the no-image frame lock.
func (v *Viewport) SetImageAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	v.aspect = aspect
	v.hasImage = true
	v.lockedW = 0
	v.lockedH = 0
}

func (v *Viewport) Aspect() float64 { return v.aspect }

func (v *Viewport) SetZoom(z float64) {
	if z < minZoom {
		z = minZoom
	} else if z > maxZoom {
		z = maxZoom
	}
	v.Zoom = z
}

func (v *Viewport) ZoomBy(factor float64) {
	v.SetZoom(v.Zoom * factor)
}

func (v *Viewport) referenceFrame() (w, h float64) {
	if !v.hasImage && v.lockedW > 0 {
		return v.lockedW, v.lockedH
	}
	return v.ContainerW, v.ContainerH
}

// ContentRect returns the letterboxed content rectangle in unscaled layer
// coordinates: offset within the reference frame plus displayed size.
func (v *Viewport) ContentRect() (offX, offY, w, h float64) {
	frameW, frameH := v.referenceFrame()
	if frameW <= 0 || frameH <= 0 {
		return 0, 0, 0, 0
	}
	w = frameW
	h = frameW * v.aspect
	if h > frameH {
		h = frameH
		w = frameH / v.aspect
	}
	offX = (frameW - w) / 2
	offY = (frameH - h) / 2
	return offX, offY, w, h
}

// PercentageToStage converts a percent position to stage pixels with zoom
// and pan applied.
func (v *Viewport) PercentageToStage(x, y float64) (float64, float64) {
	offX, offY, w, h := v.ContentRect()
	layerX := offX + x/100*w
	layerY := offY + y/100*h
	return layerX*v.Zoom + v.PanX, layerY*v.Zoom + v.PanY
}

// StageToPercentage is the exact inverse of PercentageToStage.
func (v *Viewport) StageToPercentage(sx, sy float64) (float64, float64) {
	layerX := (sx - v.PanX) / v.Zoom
	layerY := (sy - v.PanY) / v.Zoom
	return v.LayerToPercentage(layerX, layerY)
}

// LayerToPercentage converts coordinates already in the unscaled content
// layer frame to percentages.
func (v *Viewport) LayerToPercentage(lx, ly float64) (float64, float64) {
	offX, offY, w, h := v.ContentRect()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return (lx - offX) / w * 100, (ly - offY) / h * 100
}

// PointerToPercentage converts raw pointer pixels to percentages: pointer
// to layer, then layer to percentage.
func (v *Viewport) PointerToPercentage(px, py float64) (float64, float64) {
	return v.StageToPercentage(px, py)
}
