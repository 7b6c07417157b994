package stage

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/filmgrade/internal/frame"
)

// ErrInvalidParameter is returned by constructors given a value outside the
// stage's documented range.
var ErrInvalidParameter = errors.New("stage: invalid parameter")

// Stage is one unit of grading work. Process mutates the frame in place and
// must leave it tagged with the space it was given.
type Stage interface {
	Name() string
	Process(img *frame.Frame) error
}

// epsilon floors denominators that can reach zero.
const epsilon = 1e-6

func invalid(stage, param string, v float64, want string) error {
	return fmt.Errorf("%w: %s %s=%g, want %s", ErrInvalidParameter, stage, param, v, want)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkFinite(stage string, params map[string]float64) error {
	for name, v := range params {
		if !finite(v) {
			return invalid(stage, name, v, "a finite value")
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// toneWeights splits luminance into shadow, midtone and highlight weights.
// For l in [0,1] they sum to one.
func toneWeights(l float32) (shadow, mid, highlight float32) {
	shadow = max32(0, 1-2*l)
	highlight = max32(0, (l-0.5)*2)
	mid = max32(0, 1-abs32(2*(l-0.5)))
	return shadow, mid, highlight
}
