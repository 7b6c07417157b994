package frame

import (
	"errors"
	"fmt"

	"github.com/ironsheep/filmgrade/internal/colorspace"
)

// ErrDimensions is returned when sample counts and dimensions disagree, or
// when two frames of different size are combined.
var ErrDimensions = errors.New("frame: invalid dimensions")

// Frame is a space-tagged pixel buffer.
type Frame struct {
	width   int
	height  int
	pix     []colorspace.Color
	space   colorspace.Space
	workers int
}

// Option configures a Frame at construction.
type Option func(*Frame)

// Workers sets how many goroutines ForEach and conversions use. Zero (the
// default) lets the runtime decide, one forces sequential execution.
func Workers(n int) Option {
	return func(f *Frame) {
		f.workers = n
	}
}

// New builds a Frame from normalized samples in the declared source space.
// The samples are converted into colorspace.Working before being stored; the
// input slice is never retained.
func New(samples []colorspace.Color, width, height int, src colorspace.Space, opts ...Option) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrDimensions, len(samples), width, height)
	}

	f := &Frame{width: width, height: height, space: src}
	for _, opt := range opts {
		opt(f)
	}

	pix, err := f.convert(samples, src, colorspace.Working)
	if err != nil {
		return nil, err
	}
	f.pix = pix
	f.space = colorspace.Working
	return f, nil
}

// FromRGB8 builds a Frame from packed 8-bit RGB samples (3 bytes per pixel,
// row-major), normalizing each channel to [0,1].
func FromRGB8(pix []uint8, width, height int, src colorspace.Space, opts ...Option) (*Frame, error) {
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d RGB", ErrDimensions, len(pix), width, height)
	}
	samples := make([]colorspace.Color, width*height)
	for i := range samples {
		p := pix[i*3 : i*3+3 : i*3+3]
		samples[i] = colorspace.Color{
			float32(p[0]) / 255,
			float32(p[1]) / 255,
			float32(p[2]) / 255,
		}
	}
	return New(samples, width, height, src, opts...)
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Len returns the number of pixels.
func (f *Frame) Len() int { return len(f.pix) }

// Space returns the space the pixel values are currently expressed in.
func (f *Frame) Space() colorspace.Space { return f.space }

// At returns the pixel at (x, y). It panics when the coordinate is outside
// the frame, like slice indexing.
func (f *Frame) At(x, y int) colorspace.Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		panic(fmt.Sprintf("frame: coordinate (%d,%d) outside %dx%d", x, y, f.width, f.height))
	}
	return f.pix[y*f.width+x]
}

// Pixels returns a copy of the pixel values in row-major order.
func (f *Frame) Pixels() []colorspace.Color {
	out := make([]colorspace.Color, len(f.pix))
	copy(out, f.pix)
	return out
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	c := *f
	c.pix = f.Pixels()
	return &c
}

// ConvertTo returns a new frame with the same dimensions holding the values
// converted to space. The receiver is not modified.
func (f *Frame) ConvertTo(space colorspace.Space) (*Frame, error) {
	pix, err := f.convert(f.pix, f.space, space)
	if err != nil {
		return nil, err
	}
	return &Frame{
		width:   f.width,
		height:  f.height,
		pix:     pix,
		space:   space,
		workers: f.workers,
	}, nil
}

// Assign replaces the receiver's values and space tag with those of other.
// The two frames must have the same dimensions; other is copied, not shared.
func (f *Frame) Assign(other *Frame) error {
	if other.width != f.width || other.height != f.height {
		return fmt.Errorf("%w: cannot assign %dx%d to %dx%d",
			ErrDimensions, other.width, other.height, f.width, f.height)
	}
	pix := make([]colorspace.Color, len(other.pix))
	copy(pix, other.pix)
	f.pix = pix
	f.space = other.space
	return nil
}

// Within converts the frame to space, runs fn on the converted copy, converts
// the result back to the frame's current space and assigns it. If fn or a
// conversion fails the receiver is left untouched.
func (f *Frame) Within(space colorspace.Space, fn func(*Frame) error) error {
	orig := f.space
	tmp, err := f.ConvertTo(space)
	if err != nil {
		return err
	}
	if err := fn(tmp); err != nil {
		return err
	}
	back, err := tmp.ConvertTo(orig)
	if err != nil {
		return err
	}
	f.pix = back.pix
	f.space = orig
	return nil
}

// ForEach calls fn once for every pixel with a pointer to its slot. Calls
// happen concurrently over disjoint ranges; ForEach returns when all pixels
// have been visited.
func (f *Frame) ForEach(fn func(px *colorspace.Color)) {
	pix := f.pix
	partition(len(pix), f.workers, func(start, end int) {
		for i := start; i < end; i++ {
			fn(&pix[i])
		}
	})
}

// convert runs the conversion engine with the frame's worker settings.
func (f *Frame) convert(src []colorspace.Color, from, to colorspace.Space) ([]colorspace.Color, error) {
	t, err := colorspace.NewTransform(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]colorspace.Color, len(src))
	if from == to {
		copy(out, src)
		return out, nil
	}
	partition(len(src), f.workers, func(start, end int) {
		t.ApplyAll(out[start:end], src[start:end])
	})
	return out, nil
}

// Export returns the frame's values converted to space as raw float triples,
// without clamping. Clamping and quantization belong to the encoder.
func (f *Frame) Export(space colorspace.Space) ([]colorspace.Color, error) {
	return f.convert(f.pix, f.space, space)
}
