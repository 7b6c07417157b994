package colorspace

import (
	"github.com/anthonynsimon/bild/parallel"
)

// Convert returns pixels converted from one space to another as a new slice
// of equal length. Converting a space to itself returns a value-equal copy
// that never aliases the input.
//
// The per-element transform has no inter-pixel dependency, so the slice is
// split into disjoint ranges converted concurrently.
func Convert(pixels []Color, from, to Space) ([]Color, error) {
	t, err := NewTransform(from, to)
	if err != nil {
		return nil, err
	}

	out := make([]Color, len(pixels))
	if t.identity {
		copy(out, pixels)
		return out, nil
	}

	parallel.Line(len(pixels), func(start, end int) {
		t.ApplyAll(out[start:end], pixels[start:end])
	})
	return out, nil
}

// ConvertColor converts a single color.
func ConvertColor(c Color, from, to Space) (Color, error) {
	t, err := NewTransform(from, to)
	if err != nil {
		return Color{}, err
	}
	return t.Apply(c), nil
}
