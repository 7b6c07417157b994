package stage

import (
	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// Luminance thresholds for BandSaturation: fully shadow at or below
// shadowEnd, fully midtone at midPoint, fully highlight from highlightStart.
const (
	shadowEnd      = 0.2
	midPoint       = 0.5
	highlightStart = 0.8
)

// BandSaturation applies a different saturation multiplier to shadows,
// midtones and highlights, blending smoothly between them. Each pixel is
// rebuilt as gray + (pixel - gray)*multiplier, gray being its luminance.
type BandSaturation struct {
	shadow    float32
	mid       float32
	highlight float32
}

// NewBandSaturation returns the stage. Multipliers must be non-negative; 1
// leaves the band unchanged, 0 makes it monochrome.
func NewBandSaturation(shadow, mid, highlight float64) (*BandSaturation, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"shadow", shadow}, {"mid", mid}, {"highlight", highlight}} {
		if !finite(p.v) || p.v < 0 {
			return nil, invalid("band saturation", p.name, p.v, ">= 0")
		}
	}
	return &BandSaturation{shadow: float32(shadow), mid: float32(mid), highlight: float32(highlight)}, nil
}

// Name returns "band_saturation".
func (b *BandSaturation) Name() string { return "band_saturation" }

// Process applies the BandSaturation to every pixel of img.
func (b *BandSaturation) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = b.apply(*px)
	})
	return nil
}

func (b *BandSaturation) apply(c colorspace.Color) colorspace.Color {
	l := colorspace.Luminance(c)
	ws, wm, wh := bandWeights(l)
	mult := ws*b.shadow + wm*b.mid + wh*b.highlight
	gray := colorspace.Gray(l)
	return gray.Add(c.Sub(gray).Scale(mult))
}

// bandWeights returns clamped shadow, mid and highlight weights summing to 1.
func bandWeights(l float32) (shadow, mid, highlight float32) {
	shadow = clamp32((midPoint - l) / (midPoint - shadowEnd))
	highlight = clamp32((l - midPoint) / (highlightStart - midPoint))
	mid = 1 - shadow - highlight
	return shadow, mid, highlight
}

func clamp32(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
