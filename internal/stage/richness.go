package stage

import (
	"math"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// ColorRichness boosts Oklab chroma while protecting midtones, where skin
// and other memory colors sit. The protection peaks at L=0.6:
//
//	p = max(0, 1 - |2(L-0.6)|)
//	a, b *= 1 + boost*(1-p)
type ColorRichness struct {
	boost float32
}

// NewColorRichness returns a saturation boost. boost must be at least -1 so
// chroma is never inverted.
func NewColorRichness(boost float64) (*ColorRichness, error) {
	if !finite(boost) || boost < -1 {
		return nil, invalid("color richness", "boost", boost, ">= -1")
	}
	return &ColorRichness{boost: float32(boost)}, nil
}

// Name returns "richness".
func (r *ColorRichness) Name() string { return "richness" }

// Process boosts chroma in Oklab and restores the frame space.
func (r *ColorRichness) Process(img *frame.Frame) error {
	return img.Within(colorspace.Oklab, func(lab *frame.Frame) error {
		lab.ForEach(func(px *colorspace.Color) {
			*px = r.apply(*px)
		})
		return nil
	})
}

func (r *ColorRichness) apply(c colorspace.Color) colorspace.Color {
	p := max32(0, 1-abs32(2*(c[0]-0.6)))
	s := 1 + r.boost*(1-p)
	c[1] *= s
	c[2] *= s
	return c
}

// Bands holds per-hue-band chroma boosts for SelectiveRichness.
type Bands struct {
	Red     float64 `json:"red"`
	Orange  float64 `json:"orange"`
	Yellow  float64 `json:"yellow"`
	Green   float64 `json:"green"`
	Cyan    float64 `json:"cyan"`
	Blue    float64 `json:"blue"`
	Magenta float64 `json:"magenta"`
}

// FilmColors returns the band boosts of the classic film palette: warm skin,
// rich foliage and skies, restrained yellows and magentas.
func FilmColors() Bands {
	return Bands{
		Red:     0.2,
		Orange:  0.3,
		Yellow:  0.1,
		Green:   0.4,
		Cyan:    0.2,
		Blue:    0.3,
		Magenta: 0.1,
	}
}

func (b Bands) list() [7]float64 {
	return [7]float64{b.Red, b.Orange, b.Yellow, b.Green, b.Cyan, b.Blue, b.Magenta}
}

// Hue band boundaries in degrees of Oklab hue. Red wraps through zero.
var bandEdges = [7]float64{340, 40, 75, 115, 170, 230, 290}

// neutralChroma is the Oklab chroma below which hue is undefined for grading
// purposes; such pixels are left untouched.
const neutralChroma = 0.01

// SelectiveRichness scales Oklab chroma by a boost chosen from the pixel's
// hue band. Bands (degrees of atan2(b, a)):
//
//	red      [340, 40)
//	orange   [40, 75)
//	yellow   [75, 115)
//	green    [115, 170)
//	cyan     [170, 230)
//	blue     [230, 290)
//	magenta  [290, 340)
type SelectiveRichness struct {
	scale [7]float32
}

// NewSelectiveRichness returns a hue-banded chroma boost. Every boost must be
// at least -1.
func NewSelectiveRichness(b Bands) (*SelectiveRichness, error) {
	var s SelectiveRichness
	names := [7]string{"red", "orange", "yellow", "green", "cyan", "blue", "magenta"}
	for i, v := range b.list() {
		if !finite(v) || v < -1 {
			return nil, invalid("selective richness", names[i], v, ">= -1")
		}
		s.scale[i] = float32(1 + v)
	}
	return &s, nil
}

// Name returns "selective_richness".
func (r *SelectiveRichness) Name() string { return "selective_richness" }

// Process scales Oklab chroma per hue band.
func (r *SelectiveRichness) Process(img *frame.Frame) error {
	return img.Within(colorspace.Oklab, func(lab *frame.Frame) error {
		lab.ForEach(func(px *colorspace.Color) {
			*px = r.apply(*px)
		})
		return nil
	})
}

func (r *SelectiveRichness) apply(c colorspace.Color) colorspace.Color {
	a, b := float64(c[1]), float64(c[2])
	if math.Hypot(a, b) < neutralChroma {
		return c
	}
	s := r.scale[hueBand(hueDegrees(a, b))]
	c[1] *= s
	c[2] *= s
	return c
}

// hueDegrees returns atan2(b, a) in [0, 360).
func hueDegrees(a, b float64) float64 {
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

func hueBand(h float64) int {
	if h >= bandEdges[0] || h < bandEdges[1] {
		return 0
	}
	for i := len(bandEdges) - 1; i > 0; i-- {
		if h >= bandEdges[i] {
			return i
		}
	}
	return 0
}
