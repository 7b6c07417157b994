package colorspace

import (
	"fmt"
	"sync"
)

// Transform is a compiled conversion between two spaces. It is immutable and
// safe for concurrent use.
type Transform struct {
	identity bool
	decode   func(Color) Color
	m        mat3f
	encode   func(Color) Color
}

type pair struct{ from, to Space }

// transforms caches compiled transforms per (from, to) pair.
var transforms sync.Map

// NewTransform returns the compiled transform from one space to another.
// Transforms are built once per pair and reused.
//
// When both spaces are linear the transform is a single matrix composed
// through XYZ. Otherwise the source is decoded to its linear basis (or, for a
// perceptual space, to XYZ), the matrix moves it to the target's linear basis,
// and the target encoding is applied.
func NewTransform(from, to Space) (*Transform, error) {
	key := pair{from, to}
	if t, ok := transforms.Load(key); ok {
		return t.(*Transform), nil
	}

	src, err := Lookup(from)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	dst, err := Lookup(to)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	t := &Transform{}
	if from == to {
		t.identity = true
	} else {
		t.decode = src.decode
		t.m = dst.fromXYZ.mul(src.toXYZ).float32()
		t.encode = dst.encode
	}

	actual, _ := transforms.LoadOrStore(key, t)
	return actual.(*Transform), nil
}

// Apply converts a single color.
func (t *Transform) Apply(c Color) Color {
	if t.identity {
		return c
	}
	if t.decode != nil {
		c = t.decode(c)
	}
	c = t.m.apply(c)
	if t.encode != nil {
		c = t.encode(c)
	}
	return c
}

// ApplyAll converts src into dst element by element. dst and src may be the
// same slice; dst must be at least as long as src.
func (t *Transform) ApplyAll(dst, src []Color) {
	for i, c := range src {
		dst[i] = t.Apply(c)
	}
}
