package pipeline

import (
	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/stage"
)

// Builder accumulates stages for a Pipeline. The first construction error
// sticks; every call after it is a no-op and Build returns the error.
type Builder struct {
	stages []stage.Stage
	err    error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(s stage.Stage, err error) *Builder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	if s == nil {
		b.err = ErrNilStage
		return b
	}
	b.stages = append(b.stages, s)
	return b
}

// Add appends an already constructed stage.
func (b *Builder) Add(s stage.Stage) *Builder {
	return b.add(s, nil)
}

// Exposure appends a linear exposure change in stops.
func (b *Builder) Exposure(stops float64) *Builder {
	return b.add(stage.NewExposure(stops))
}

// Contrast appends a per-channel tone curve.
func (b *Builder) Contrast(contrast, pivot float64) *Builder {
	return b.add(stage.NewToneCurve(contrast, pivot))
}

// LightnessContrast appends a tone curve on Oklab lightness only.
func (b *Builder) LightnessContrast(contrast, pivot float64) *Builder {
	return b.add(stage.NewLightnessCurve(contrast, pivot))
}

// Richness appends a midtone-protected chroma boost.
func (b *Builder) Richness(boost float64) *Builder {
	return b.add(stage.NewColorRichness(boost))
}

// SelectiveRichness appends a hue-banded saturation boost.
func (b *Builder) SelectiveRichness(bands stage.Bands) *Builder {
	return b.add(stage.NewSelectiveRichness(bands))
}

// FilmColors appends SelectiveRichness with the film band preset.
func (b *Builder) FilmColors() *Builder {
	return b.SelectiveRichness(stage.FilmColors())
}

// SplitTone appends separate shadow and highlight tints.
func (b *Builder) SplitTone(shadowHue, shadowSat, highlightHue, highlightSat float64) *Builder {
	return b.add(stage.NewSplitTone(shadowHue, shadowSat, highlightHue, highlightSat))
}

// BandSaturation appends saturation scaling per tonal band.
func (b *Builder) BandSaturation(shadow, mid, highlight float64) *Builder {
	return b.add(stage.NewBandSaturation(shadow, mid, highlight))
}

// FilmBlacks appends a toe crush and black lift.
func (b *Builder) FilmBlacks(crush, lift float64) *Builder {
	return b.add(stage.NewFilmBlacks(crush, lift))
}

// ColorGrade appends a three-way shadows/midtones/highlights offset.
func (b *Builder) ColorGrade(shadows, midtones, highlights colorspace.Color) *Builder {
	return b.add(stage.NewColorGrade(shadows, midtones, highlights))
}

// DensityRichness appends channel separation with saturation-driven density.
func (b *Builder) DensityRichness(separation, density float64) *Builder {
	return b.add(stage.NewDensityRichness(separation, density))
}

// FilmShoulder appends a highlight shoulder with a slight black lift.
func (b *Builder) FilmShoulder(strength float64) *Builder {
	return b.add(stage.NewFilmShoulder(strength))
}

// Build returns the pipeline, or the first error any call produced.
func (b *Builder) Build() (*Pipeline, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.stages...)
}
