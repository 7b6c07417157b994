package colorspace

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidColorSpace is returned when a conversion names a space that is
// not in the table.
var ErrInvalidColorSpace = errors.New("colorspace: invalid color space")

// Space identifies a color space.
type Space uint8

// Known color spaces. The zero Space is invalid.
const (
	SRGB Space = iota + 1
	LinearSRGB
	DisplayP3
	Rec2020
	ACEScg
	ACES2065
	ProPhoto
	Oklab
	CIELab
)

// Working is the fixed linear space all stage math is calibrated against.
const Working = ACEScg

// Kind groups spaces by how they are reached from XYZ.
type Kind uint8

const (
	// KindRGB spaces are defined by primaries, a white point and an optional
	// transfer function.
	KindRGB Kind = iota
	// KindPerceptual spaces carry one lightness and two opponent chroma channels.
	KindPerceptual
)

// Info is the immutable metadata for one space.
type Info struct {
	Space  Space
	Name   string
	Kind   Kind
	Linear bool

	// toXYZ maps the space's linear basis to XYZ (D65); fromXYZ is its inverse.
	// Perceptual spaces decode straight to XYZ, so both are the identity.
	toXYZ   mat3
	fromXYZ mat3

	// decode takes stored values to the linear basis, encode the reverse.
	// Both are nil for linear spaces.
	decode func(Color) Color
	encode func(Color) Color
}

var (
	whiteD65  = xy{0.3127, 0.3290}
	whiteD50  = xy{0.3457, 0.3585}
	whiteACES = xy{0.32168, 0.33767}
)

type primaries struct {
	r, g, b, white xy
}

var (
	primBT709  = primaries{xy{0.64, 0.33}, xy{0.30, 0.60}, xy{0.15, 0.06}, whiteD65}
	primP3     = primaries{xy{0.680, 0.320}, xy{0.265, 0.690}, xy{0.150, 0.060}, whiteD65}
	primBT2020 = primaries{xy{0.708, 0.292}, xy{0.170, 0.797}, xy{0.131, 0.046}, whiteD65}
	primAP1    = primaries{xy{0.713, 0.293}, xy{0.165, 0.830}, xy{0.128, 0.044}, whiteACES}
	primAP0    = primaries{xy{0.7347, 0.2653}, xy{0.0, 1.0}, xy{0.0001, -0.0770}, whiteACES}
	primROMM   = primaries{xy{0.7347, 0.2653}, xy{0.1596, 0.8404}, xy{0.0366, 0.0001}, whiteD50}
)

// rgbInfo builds the metadata for an RGB space. The matrix includes a
// Bradford adaptation to D65 when the native white differs.
func rgbInfo(s Space, name string, p primaries, decode, encode func(Color) Color) *Info {
	m := adaptation(p.white, whiteD65).mul(rgbToXYZ(p.r, p.g, p.b, p.white))
	return &Info{
		Space:   s,
		Name:    name,
		Kind:    KindRGB,
		Linear:  decode == nil,
		toXYZ:   m,
		fromXYZ: m.inverse(),
		decode:  decode,
		encode:  encode,
	}
}

func perceptualInfo(s Space, name string, decode, encode func(Color) Color) *Info {
	return &Info{
		Space:   s,
		Name:    name,
		Kind:    KindPerceptual,
		toXYZ:   identity3(),
		fromXYZ: identity3(),
		decode:  decode,
		encode:  encode,
	}
}

// table is built on first use and never mutated afterwards.
var table = sync.OnceValue(func() map[Space]*Info {
	infos := []*Info{
		rgbInfo(SRGB, "sRGB", primBT709, srgbDecode, srgbEncode),
		rgbInfo(LinearSRGB, "Linear sRGB", primBT709, nil, nil),
		rgbInfo(DisplayP3, "Display P3", primP3, srgbDecode, srgbEncode),
		rgbInfo(Rec2020, "Linear Rec.2020", primBT2020, nil, nil),
		rgbInfo(ACEScg, "ACEScg", primAP1, nil, nil),
		rgbInfo(ACES2065, "ACES2065-1", primAP0, nil, nil),
		rgbInfo(ProPhoto, "ProPhoto RGB", primROMM, rommDecode, rommEncode),
		perceptualInfo(Oklab, "Oklab", oklabToXYZ, xyzToOklab),
		perceptualInfo(CIELab, "CIELab", labToXYZ, xyzToLab),
	}
	m := make(map[Space]*Info, len(infos))
	for _, info := range infos {
		m[info.Space] = info
	}
	return m
})

// Lookup returns the metadata for s.
func Lookup(s Space) (*Info, error) {
	info, ok := table()[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColorSpace, uint8(s))
	}
	return info, nil
}

// Spaces lists every known space in identifier order.
func Spaces() []Space {
	return []Space{SRGB, LinearSRGB, DisplayP3, Rec2020, ACEScg, ACES2065, ProPhoto, Oklab, CIELab}
}

// IsLinear reports whether s is a linear RGB space. Unknown spaces are not linear.
func (s Space) IsLinear() bool {
	info, err := Lookup(s)
	return err == nil && info.Linear
}

// String returns the display name of s.
func (s Space) String() string {
	info, err := Lookup(s)
	if err != nil {
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
	return info.Name
}

var spaceNames = map[string]Space{
	"srgb":           SRGB,
	"linear-srgb":    LinearSRGB,
	"linear_srgb":    LinearSRGB,
	"linearsrgb":     LinearSRGB,
	"rec709":         LinearSRGB,
	"display-p3":     DisplayP3,
	"displayp3":      DisplayP3,
	"p3":             DisplayP3,
	"rec2020":        Rec2020,
	"linear-rec2020": Rec2020,
	"acescg":         ACEScg,
	"working":        ACEScg,
	"aces2065":       ACES2065,
	"aces2065-1":     ACES2065,
	"ap0":            ACES2065,
	"prophoto":       ProPhoto,
	"romm":           ProPhoto,
	"oklab":          Oklab,
	"lab":            CIELab,
	"cielab":         CIELab,
}

// ParseSpace resolves a space by name. Matching is case-insensitive and
// accepts a few common aliases ("p3", "romm", "lab").
func ParseSpace(name string) (Space, error) {
	s, ok := spaceNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColorSpace, name)
	}
	return s, nil
}
