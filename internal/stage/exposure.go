package stage

import (
	"math"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// Exposure scales linear light by 2^stops.
type Exposure struct {
	stops  float64
	factor float32
}

// NewExposure returns an exposure adjustment of the given number of stops.
func NewExposure(stops float64) (*Exposure, error) {
	if !finite(stops) {
		return nil, invalid("exposure", "stops", stops, "a finite value")
	}
	return &Exposure{stops: stops, factor: float32(math.Exp2(stops))}, nil
}

// Stops returns the configured adjustment.
func (e *Exposure) Stops() float64 { return e.stops }

// Name returns "exposure".
func (e *Exposure) Name() string { return "exposure" }

// Process multiplies every channel by 2^stops.
func (e *Exposure) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = e.apply(*px)
	})
	return nil
}

func (e *Exposure) apply(c colorspace.Color) colorspace.Color {
	return c.Scale(e.factor)
}
