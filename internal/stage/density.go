package stage

import (
	"math"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// DensityRichness imitates the dense, separated color of slide film in the
// working space. Channels are pushed away from their mean, the result is
// pulled toward a darker gray where the density curve peaks (around L=0.4),
// and finally the pixel is rescaled so its luminance is exactly what it was.
type DensityRichness struct {
	separation float32
	density    float32
}

// NewDensityRichness returns the stage. separation is the channel spread
// multiplier (1 is neutral) and density the strength of the gray blend; both
// must be non-negative.
func NewDensityRichness(separation, density float64) (*DensityRichness, error) {
	if !finite(separation) || separation < 0 {
		return nil, invalid("density richness", "separation", separation, ">= 0")
	}
	if !finite(density) || density < 0 {
		return nil, invalid("density richness", "density", density, ">= 0")
	}
	return &DensityRichness{separation: float32(separation), density: float32(density)}, nil
}

// Name returns "density_richness".
func (d *DensityRichness) Name() string { return "density_richness" }

// Process applies the DensityRichness to every pixel of img.
func (d *DensityRichness) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = d.apply(*px)
	})
	return nil
}

func (d *DensityRichness) apply(c colorspace.Color) colorspace.Color {
	lum := colorspace.Luminance(c)
	if lum <= epsilon {
		// Nothing to restore toward; the rescale would only amplify noise.
		return c
	}

	mean := colorspace.Gray(c.Mean())
	sep := mean.Add(c.Sub(mean).Scale(d.separation))

	dens := 1 - float32(math.Pow(float64(abs32(2*(lum-0.4))), 2.5))
	w := 0.15 * max32(0, dens) * d.density
	out := sep.Scale(1 - w).Add(colorspace.Gray(lum * 0.8).Scale(w))

	newLum := colorspace.Luminance(out)
	if newLum <= epsilon {
		// Strong separation of saturated blues can drive luminance negative;
		// restore it additively.
		return out.Add(colorspace.Gray(lum - newLum))
	}
	return out.Scale(lum / max32(newLum, epsilon))
}
