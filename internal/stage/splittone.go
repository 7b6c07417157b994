package stage

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// splitToneStrength scales the tint offsets before they are added.
const splitToneStrength = 0.1

// SplitTone tints shadows and highlights with independent hues. Each tint is
// the HSL color (hue, saturation, lightness 0.5) expressed in the working
// space as an offset from the neutral gray of the same lightness. This differs
// from adding the tint color itself: a zero saturation adds nothing, and black
// is not lifted toward gray.
type SplitTone struct {
	shadow    colorspace.Color
	highlight colorspace.Color
}

// NewSplitTone returns the stage. Hues are in degrees (any value, wrapped to
// [0,360)), saturations in [0,1].
func NewSplitTone(shadowHue, shadowSat, highlightHue, highlightSat float64) (*SplitTone, error) {
	if err := checkFinite("split tone", map[string]float64{
		"shadow_hue":    shadowHue,
		"highlight_hue": highlightHue,
	}); err != nil {
		return nil, err
	}
	if !finite(shadowSat) || shadowSat < 0 || shadowSat > 1 {
		return nil, invalid("split tone", "shadow_sat", shadowSat, "in [0,1]")
	}
	if !finite(highlightSat) || highlightSat < 0 || highlightSat > 1 {
		return nil, invalid("split tone", "highlight_sat", highlightSat, "in [0,1]")
	}

	shadow, err := tintOffset(shadowHue, shadowSat)
	if err != nil {
		return nil, err
	}
	highlight, err := tintOffset(highlightHue, highlightSat)
	if err != nil {
		return nil, err
	}
	return &SplitTone{shadow: shadow, highlight: highlight}, nil
}

// tintOffset returns the working-space difference between the HSL tint and
// mid gray.
func tintOffset(hue, sat float64) (colorspace.Color, error) {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	tint := colorful.Hsl(hue, sat, 0.5)
	encoded := []colorspace.Color{
		{float32(tint.R), float32(tint.G), float32(tint.B)},
		colorspace.Gray(0.5),
	}
	working, err := colorspace.Convert(encoded, colorspace.SRGB, colorspace.Working)
	if err != nil {
		return colorspace.Color{}, err
	}
	return working[0].Sub(working[1]), nil
}

// Name returns "split_tone".
func (s *SplitTone) Name() string { return "split_tone" }

// Process applies the SplitTone to every pixel of img.
func (s *SplitTone) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = s.apply(*px)
	})
	return nil
}

func (s *SplitTone) apply(c colorspace.Color) colorspace.Color {
	l := colorspace.Luminance(c)
	ws := max32(0, 1-2*l)
	wh := max32(0, (l-0.5)*2)
	return c.
		Add(s.shadow.Scale(ws * splitToneStrength)).
		Add(s.highlight.Scale(wh * splitToneStrength))
}
