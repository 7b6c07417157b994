package colorspace

import "math"

// mat3 is a row-major 3x3 matrix used while deriving transforms. It is only
// used at build time; per-pixel work goes through the float32 mat3f.
type mat3 [3][3]float64

// mat3f is the float32 form applied to pixels: out = M * c.
type mat3f [9]float32

func identity3() mat3 {
	return mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func diag3(a, b, c float64) mat3 {
	return mat3{{a, 0, 0}, {0, b, 0}, {0, 0, c}}
}

func (m mat3) mul(o mat3) mat3 {
	var r mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

func (m mat3) apply(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// inverse uses the adjugate. A singular matrix yields the identity; none of
// the tabulated spaces are singular.
func (m mat3) inverse() mat3 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-12 {
		return identity3()
	}
	inv := 1 / det
	return mat3{
		{(e*i - f*h) * inv, (c*h - b*i) * inv, (b*f - c*e) * inv},
		{(f*g - d*i) * inv, (a*i - c*g) * inv, (c*d - a*f) * inv},
		{(d*h - e*g) * inv, (b*g - a*h) * inv, (a*e - b*d) * inv},
	}
}

func (m mat3) float32() mat3f {
	var r mat3f
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = float32(m[i][j])
		}
	}
	return r
}

func (m *mat3f) apply(c Color) Color {
	return Color{
		m[0]*c[0] + m[1]*c[1] + m[2]*c[2],
		m[3]*c[0] + m[4]*c[1] + m[5]*c[2],
		m[6]*c[0] + m[7]*c[1] + m[8]*c[2],
	}
}

// xy is a CIE 1931 chromaticity coordinate.
type xy struct{ x, y float64 }

// xyz returns the tristimulus value of the chromaticity with Y = 1.
func (c xy) xyz() [3]float64 {
	return [3]float64{c.x / c.y, 1, (1 - c.x - c.y) / c.y}
}

// rgbToXYZ derives the matrix taking linear RGB with the given primaries to
// XYZ relative to the same white, normalized so the white has Y = 1.
func rgbToXYZ(r, g, b, white xy) mat3 {
	pr, pg, pb := r.xyz(), g.xyz(), b.xyz()
	p := mat3{
		{pr[0], pg[0], pb[0]},
		{pr[1], pg[1], pb[1]},
		{pr[2], pg[2], pb[2]},
	}
	s := p.inverse().apply(white.xyz())
	return p.mul(diag3(s[0], s[1], s[2]))
}

// Bradford cone response matrices.
var (
	bradford = mat3{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	invBradford = bradford.inverse()
)

// adaptation returns the Bradford transform from XYZ under src to XYZ under dst.
func adaptation(src, dst xy) mat3 {
	if src == dst {
		return identity3()
	}
	s := bradford.apply(src.xyz())
	d := bradford.apply(dst.xyz())
	return invBradford.mul(diag3(d[0]/s[0], d[1]/s[1], d[2]/s[2])).mul(bradford)
}
