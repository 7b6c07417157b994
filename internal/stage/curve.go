package stage

import (
	"math"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// ToneCurve applies a pivoted contrast curve to each working-space channel.
//
// Input is clamped to [0,1]. Below the pivot the curve is
// pivot*(v/pivot)^contrast. Above it, with h the normalized distance past the
// pivot, the exponent 1/(contrast*(1-0.3h)) rolls the highlights off so they
// approach white gently. The pivot maps to itself for every contrast.
type ToneCurve struct {
	contrast float64
	pivot    float32
}

// NewToneCurve returns a per-channel curve. contrast must be positive and
// pivot must lie strictly between 0 and 1. A contrast of 1 below the pivot
// leaves shadows unchanged.
func NewToneCurve(contrast, pivot float64) (*ToneCurve, error) {
	if err := validateCurve("tone curve", contrast, pivot); err != nil {
		return nil, err
	}
	return &ToneCurve{contrast: contrast, pivot: float32(pivot)}, nil
}

func validateCurve(name string, contrast, pivot float64) error {
	if !finite(contrast) || contrast <= 0 {
		return invalid(name, "contrast", contrast, "> 0")
	}
	if p := float32(pivot); !finite(pivot) || p <= 0 || p >= 1 {
		return invalid(name, "pivot", pivot, "in (0,1)")
	}
	return nil
}

// Name returns "tone_curve".
func (t *ToneCurve) Name() string { return "tone_curve" }

// Process applies the ToneCurve to every pixel of img.
func (t *ToneCurve) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = t.apply(*px)
	})
	return nil
}

func (t *ToneCurve) apply(c colorspace.Color) colorspace.Color {
	for i, v := range c {
		c[i] = float32(curve(float64(v), t.contrast, float64(t.pivot)))
	}
	return c
}

// curve evaluates the pivoted contrast curve. The pivot is rounded to float32
// by the callers so that a float32 pixel equal to it takes the lower branch.
func curve(v, contrast, pivot float64) float64 {
	v = clamp01(v)
	if v <= pivot {
		return pivot * math.Pow(v/pivot, contrast)
	}
	h := (v - pivot) / (1 - pivot)
	r := 1 - 0.3*h
	return pivot + (1-pivot)*math.Pow(h, 1/(contrast*r))
}

// LightnessCurve applies the ToneCurve shape to Oklab lightness only, leaving
// the chroma channels alone so hues do not shift with contrast.
type LightnessCurve struct {
	contrast float64
	pivot    float32
}

// NewLightnessCurve takes the same parameters as NewToneCurve.
func NewLightnessCurve(contrast, pivot float64) (*LightnessCurve, error) {
	if err := validateCurve("lightness curve", contrast, pivot); err != nil {
		return nil, err
	}
	return &LightnessCurve{contrast: contrast, pivot: float32(pivot)}, nil
}

// Name returns "lightness_curve".
func (t *LightnessCurve) Name() string { return "lightness_curve" }

// Process runs the curve on Oklab lightness and restores the frame space.
func (t *LightnessCurve) Process(img *frame.Frame) error {
	return img.Within(colorspace.Oklab, func(lab *frame.Frame) error {
		lab.ForEach(func(px *colorspace.Color) {
			*px = t.apply(*px)
		})
		return nil
	})
}

func (t *LightnessCurve) apply(c colorspace.Color) colorspace.Color {
	c[0] = float32(curve(float64(c[0]), t.contrast, float64(t.pivot)))
	return c
}

// FilmShoulder lifts the blacks slightly and compresses highlights with a
// rational shoulder: x' = l/(1 + 0.8*strength*max(l, 0)), l = x + 0.003*strength.
// Negative values are only lifted, so the curve has no pole.
type FilmShoulder struct {
	strength float32
}

// NewFilmShoulder returns a shoulder curve. strength must be non-negative;
// zero is the identity.
func NewFilmShoulder(strength float64) (*FilmShoulder, error) {
	if !finite(strength) || strength < 0 {
		return nil, invalid("film shoulder", "strength", strength, ">= 0")
	}
	return &FilmShoulder{strength: float32(strength)}, nil
}

// Name returns "film_shoulder".
func (s *FilmShoulder) Name() string { return "film_shoulder" }

// Process applies the FilmShoulder to every pixel of img.
func (s *FilmShoulder) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = s.apply(*px)
	})
	return nil
}

func (s *FilmShoulder) apply(c colorspace.Color) colorspace.Color {
	if s.strength == 0 {
		return c
	}
	for i, v := range c {
		lifted := v + 0.003*s.strength
		c[i] = lifted / (1 + max32(lifted, 0)*s.strength*0.8)
	}
	return c
}
