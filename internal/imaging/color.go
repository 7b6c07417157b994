package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// RGBColor holds 8-bit display components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor is the display color in HSL.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one pixel twice: as the 8-bit display value and as
// floating-point components in a requested color space.
type ColorResult struct {
	Hex string   `json:"hex"` // "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`

	// Space names the space Values are expressed in.
	Space  string     `json:"space"`
	Values [3]float32 `json:"values"`
}

// SampleColor reads the pixel at (x, y) of img, interprets its 8-bit value
// as encoded in src, and reports it converted to space.
//
// Coordinates are relative to the image bounds' origin. An error is returned
// for coordinates outside the image or an invalid space.
func SampleColor(img image.Image, x, y int, src, space colorspace.Space) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	n := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
	c := colorspace.Color{float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255}
	values, err := colorspace.ConvertColor(c, src, space)
	if err != nil {
		return nil, err
	}
	return describe(n.R, n.G, n.B, space, values), nil
}

// SampleFrame reports pixel (x, y) of a frame in space. The display fields
// show the pixel as quantized sRGB.
func SampleFrame(f *frame.Frame, x, y int, space colorspace.Space) (*ColorResult, error) {
	if x < 0 || y < 0 || x >= f.Width() || y >= f.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	c := f.At(x, y)

	values, err := colorspace.ConvertColor(c, f.Space(), space)
	if err != nil {
		return nil, err
	}
	display, err := colorspace.ConvertColor(c, f.Space(), colorspace.SRGB)
	if err != nil {
		return nil, err
	}
	return describe(quantize(display[0]), quantize(display[1]), quantize(display[2]), space, values), nil
}

func describe(r, g, b uint8, space colorspace.Space, values colorspace.Color) *ColorResult {
	return &ColorResult{
		Hex:    fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB:    RGBColor{R: r, G: g, B: b},
		HSL:    toHSL(r, g, b),
		Space:  space.String(),
		Values: values,
	}
}

func toHSL(r, g, b uint8) HSLColor {
	h, s, l := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}

// LabeledPoint is a coordinate with an optional label echoed in results.
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult is one sample of a multi-point query.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult holds samples in request order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point, failing as a whole if any point is
// out of bounds.
func SampleColorsMulti(img image.Image, points []LabeledPoint, src, space colorspace.Space) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y, src, space)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}
