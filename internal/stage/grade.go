package stage

import (
	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// Scale factors applied to the three-way offsets. Shadows take a larger
// share because linear shadow values are small.
const (
	gradeShadowScale    = 0.1
	gradeMidtoneScale   = 0.05
	gradeHighlightScale = 0.05
)

// ColorGrade is a three-way color corrector: additive RGB offsets for
// shadows, midtones and highlights, weighted by luminance.
type ColorGrade struct {
	shadows    colorspace.Color
	midtones   colorspace.Color
	highlights colorspace.Color
}

// NewColorGrade returns the stage. Offsets are working-space RGB and are
// scaled down internally, so values around ±0.1 give a visible cast.
func NewColorGrade(shadows, midtones, highlights colorspace.Color) (*ColorGrade, error) {
	for _, o := range []struct {
		name string
		c    colorspace.Color
	}{{"shadows", shadows}, {"midtones", midtones}, {"highlights", highlights}} {
		for _, v := range o.c {
			if !finite(float64(v)) {
				return nil, invalid("color grade", o.name, float64(v), "finite offsets")
			}
		}
	}
	return &ColorGrade{shadows: shadows, midtones: midtones, highlights: highlights}, nil
}

// Name returns "color_grade".
func (g *ColorGrade) Name() string { return "color_grade" }

// Process applies the ColorGrade to every pixel of img.
func (g *ColorGrade) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = g.apply(*px)
	})
	return nil
}

func (g *ColorGrade) apply(c colorspace.Color) colorspace.Color {
	ws, wm, wh := toneWeights(colorspace.Luminance(c))
	return c.
		Add(g.shadows.Scale(ws * gradeShadowScale)).
		Add(g.midtones.Scale(wm * gradeMidtoneScale)).
		Add(g.highlights.Scale(wh * gradeHighlightScale))
}
