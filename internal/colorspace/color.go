package colorspace

// Color is a tri-stimulus value. Its meaning depends on the Space it is
// interpreted in: R, G, B for RGB spaces, L, a, b for perceptual spaces.
type Color [3]float32

// Luma weights of the ACEScg working space (the Y row of its RGB to XYZ
// matrix). Every luminance-weighted stage shares these.
const (
	LumaR = 0.2722
	LumaG = 0.6741
	LumaB = 0.0537
)

// Gray returns a color with all three channels set to v.
func Gray(v float32) Color {
	return Color{v, v, v}
}

// Add returns the componentwise sum c + o.
func (c Color) Add(o Color) Color {
	return Color{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

// Sub returns the componentwise difference c - o.
func (c Color) Sub(o Color) Color {
	return Color{c[0] - o[0], c[1] - o[1], c[2] - o[2]}
}

// Mul returns the componentwise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c[0] * o[0], c[1] * o[1], c[2] * o[2]}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Dot returns the inner product of c and o.
func (c Color) Dot(o Color) float32 {
	return c[0]*o[0] + c[1]*o[1] + c[2]*o[2]
}

// Mean returns the arithmetic mean of the three channels.
func (c Color) Mean() float32 {
	return (c[0] + c[1] + c[2]) / 3
}

// Luminance returns the luma of a working-space color.
func Luminance(c Color) float32 {
	return c[0]*LumaR + c[1]*LumaG + c[2]*LumaB
}
