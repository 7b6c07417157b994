package colorspace

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// sRGB piecewise transfer. go-colorful implements the IEC 61966-2-1 curve
// without clamping, so negative and above-one values survive a round trip.
func srgbDecode(c Color) Color {
	r, g, b := colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.LinearRgb()
	return Color{float32(r), float32(g), float32(b)}
}

func srgbEncode(c Color) Color {
	e := colorful.LinearRgb(float64(c[0]), float64(c[1]), float64(c[2]))
	return Color{float32(e.R), float32(e.G), float32(e.B)}
}

// ROMM RGB (ProPhoto) transfer: gamma 1.8 with a linear toe below 1/512.
const (
	rommLinearCut  = 1.0 / 512
	rommEncodedCut = 16.0 / 512
)

func rommDecode(c Color) Color {
	var out Color
	for i, v := range c {
		if v < rommEncodedCut {
			out[i] = v / 16
		} else {
			out[i] = float32(math.Pow(float64(v), 1.8))
		}
	}
	return out
}

func rommEncode(c Color) Color {
	var out Color
	for i, v := range c {
		if v < rommLinearCut {
			out[i] = v * 16
		} else {
			out[i] = float32(math.Pow(float64(v), 1/1.8))
		}
	}
	return out
}

// Oklab (Ottosson 2020), defined on XYZ under D65.
var (
	oklabM1 = mat3{
		{0.8189330101, 0.3618667424, -0.1288597137},
		{0.0329845436, 0.9293118715, 0.0361456387},
		{0.0482003018, 0.2643662691, 0.6338517070},
	}
	oklabM2 = mat3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}
	oklabM1f    = oklabM1.float32()
	oklabM2f    = oklabM2.float32()
	oklabInvM1f = oklabM1.inverse().float32()
	oklabInvM2f = oklabM2.inverse().float32()
)

func xyzToOklab(c Color) Color {
	lms := oklabM1f.apply(c)
	for i, v := range lms {
		lms[i] = float32(math.Cbrt(float64(v)))
	}
	return oklabM2f.apply(lms)
}

func oklabToXYZ(c Color) Color {
	lms := oklabInvM2f.apply(c)
	for i, v := range lms {
		lms[i] = v * v * v
	}
	return oklabInvM1f.apply(lms)
}

// CIELab relative to D65, with go-colorful's scaling (L in [0,1], a and b
// divided by 100).
func xyzToLab(c Color) Color {
	l, a, b := colorful.XyzToLabWhiteRef(float64(c[0]), float64(c[1]), float64(c[2]), colorful.D65)
	return Color{float32(l), float32(a), float32(b)}
}

func labToXYZ(c Color) Color {
	x, y, z := colorful.LabToXyzWhiteRef(float64(c[0]), float64(c[1]), float64(c[2]), colorful.D65)
	return Color{float32(x), float32(y), float32(z)}
}
