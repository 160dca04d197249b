package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const exportWidth = 1600

// measureImageAspect decodes an image file and returns its
// height/width ratio for the viewport.
func measureImageAspect(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Width <= 0 {
		return 0, fmt.Errorf("%s: zero-width image", path)
	}
	return float64(cfg.Height) / float64(cfg.Width), nil
}

// exportPNG paints the floor plan into a PNG file: background image or
// color first, section shapes, then seats on top.
func exportPNG(p *Plan, aspect float64, filename string) error {
	if aspect <= 0 {
		aspect = fallbackAspectRatio
	}
	imageWidth := exportWidth
	imageHeight := int(float64(exportWidth) * aspect)
	if imageHeight < 1 {
		imageHeight = 1
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()
	if p.backgroundColor != "" {
		dc.SetHexColor(p.backgroundColor)
		dc.Clear()
	}

	if p.backgroundImage != "" {
		if err := drawBackgroundImage(dc, p.backgroundImage, imageWidth, imageHeight); err != nil {
			return err
		}
	}

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    16,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Percent units to pixels; x and y scale differently because the
	// percent space is normalized per axis.
	unitX := float64(imageWidth) / 100
	unitY := float64(imageHeight) / 100

	for _, m := range p.sections {
		drawMarkerPNG(dc, m, p.fillAlpha, unitX, unitY)
	}
	for _, m := range p.seats {
		drawMarkerPNG(dc, m, p.fillAlpha, unitX, unitY)
	}

	return dc.SavePNG(filename)
}

func drawBackgroundImage(dc *gg.Context, path string, w, h int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open background: %w", err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("decode background: %w", err)
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Over, nil)
	dc.DrawImage(scaled, 0, 0)
	return nil
}

func drawMarkerPNG(dc *gg.Context, m Marker, planAlpha, unitX, unitY float64) {
	s := m.Shape
	if s == nil {
		s = DefaultShape(m.Kind)
	}
	cx := m.X * unitX
	cy := m.Y * unitY

	alpha := planAlpha
	if m.FillAlpha > 0 {
		alpha = m.FillAlpha
	}
	fill := markerFillColor(m, alpha)

	switch s.Type {
	case ShapeCircle:
		r := s.Radius * math.Min(unitX, unitY)
		dc.SetColor(fill)
		dc.DrawCircle(cx, cy, r)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.DrawCircle(cx, cy, r)
		dc.Stroke()
	case ShapeEllipse:
		dc.SetColor(fill)
		dc.DrawEllipse(cx, cy, s.Width/2*unitX, s.Height/2*unitY)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.DrawEllipse(cx, cy, s.Width/2*unitX, s.Height/2*unitY)
		dc.Stroke()
	case ShapePolygon, ShapeFreeform:
		if len(s.Points) < 4 {
			return
		}
		dc.NewSubPath()
		dc.MoveTo(cx+s.Points[0]*unitX, cy+s.Points[1]*unitY)
		for i := 2; i+1 < len(s.Points); i += 2 {
			dc.LineTo(cx+s.Points[i]*unitX, cy+s.Points[i+1]*unitY)
		}
		dc.ClosePath()
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.Stroke()
	default:
		w := s.Width * unitX
		h := s.Height * unitY
		x := cx - w/2
		y := cy - h/2
		dc.SetColor(fill)
		if s.CornerRadius > 0 {
			dc.DrawRoundedRectangle(x, y, w, h, s.CornerRadius*unitX)
		} else {
			dc.DrawRectangle(x, y, w, h)
		}
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.Stroke()
	}

	if m.Label != "" {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(m.Label, cx, cy, 0.5, 0.5)
	}
}

func markerFillColor(m Marker, alpha float64) color.Color {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	var r, g, b float64 = 0.78, 0.82, 0.9
	if m.Color != "" {
		if parsed, err := parseHexColor(m.Color); err == nil {
			r, g, b = parsed[0], parsed[1], parsed[2]
		}
	}
	return color.NRGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: uint8(alpha * 255),
	}
}

func parseHexColor(hex string) ([3]float64, error) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return [3]float64{}, fmt.Errorf("bad hex color %q", hex)
	}
	var rgb [3]float64
	for i := 0; i < 3; i++ {
		var v int
		if _, err := fmt.Sscanf(hex[i*2:i*2+2], "%02x", &v); err != nil {
			return [3]float64{}, fmt.Errorf("bad hex color %q", hex)
		}
		rgb[i] = float64(v) / 255
	}
	return rgb, nil
}
