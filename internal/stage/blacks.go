package stage

import (
	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// FilmBlacks remaps the toe of every channel: values below crush are
// stretched linearly onto [lift, crush), so pure black becomes lift and crush
// maps to itself. Values at or above crush are unchanged.
type FilmBlacks struct {
	crush float32
	lift  float32
}

// NewFilmBlacks returns the stage. crush must be in [0,0.3], lift in
// [0,0.05] and no greater than crush.
func NewFilmBlacks(crush, lift float64) (*FilmBlacks, error) {
	if !finite(crush) || crush < 0 || crush > 0.3 {
		return nil, invalid("film blacks", "crush", crush, "in [0,0.3]")
	}
	if !finite(lift) || lift < 0 || lift > 0.05 {
		return nil, invalid("film blacks", "lift", lift, "in [0,0.05]")
	}
	if lift > crush {
		return nil, invalid("film blacks", "lift", lift, "<= crush")
	}
	return &FilmBlacks{crush: float32(crush), lift: float32(lift)}, nil
}

// Name returns "film_blacks".
func (f *FilmBlacks) Name() string { return "film_blacks" }

// Process applies the FilmBlacks to every pixel of img.
func (f *FilmBlacks) Process(img *frame.Frame) error {
	img.ForEach(func(px *colorspace.Color) {
		*px = f.apply(*px)
	})
	return nil
}

func (f *FilmBlacks) apply(c colorspace.Color) colorspace.Color {
	if f.crush == 0 {
		return c
	}
	for i, v := range c {
		if v < f.crush {
			c[i] = f.lift + (v/f.crush)*(f.crush-f.lift)
		}
	}
	return c
}
