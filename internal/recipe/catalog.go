package recipe

import (
	"github.com/ironsheep/filmgrade/internal/stage"
)

// ParamKind is the value type of a stage parameter.
type ParamKind string

const (
	KindNumber ParamKind = "number"
	KindColor  ParamKind = "color"
)

// Param documents one stage parameter and its default.
type Param struct {
	Name        string    `json:"name"`
	Kind        ParamKind `json:"kind"`
	Default     float64   `json:"default"`
	Color       []float64 `json:"default_color,omitempty"`
	Description string    `json:"description"`
}

// StageType is a catalog entry: a step type name and how to build it.
type StageType struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Params      []Param  `json:"params"`

	build func(p *params) (stage.Stage, error)
}

func (t *StageType) hasParam(name string) bool {
	for _, p := range t.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (t *StageType) param(name string) Param {
	for _, p := range t.Params {
		if p.Name == name {
			return p
		}
	}
	return Param{Name: name, Color: []float64{0, 0, 0}}
}

func number(name string, def float64, desc string) Param {
	return Param{Name: name, Kind: KindNumber, Default: def, Description: desc}
}

func color(name, desc string) Param {
	return Param{Name: name, Kind: KindColor, Color: []float64{0, 0, 0}, Description: desc}
}

// checked drops the typed stage pointer when construction failed.
func checked(s stage.Stage, err error) (stage.Stage, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

var catalog = []*StageType{
	{
		Name:        "exposure",
		Description: "Linear exposure change, multiplies light by 2^stops.",
		Params:      []Param{number("stops", 0, "exposure change in stops")},
		build: func(p *params) (stage.Stage, error) {
			stops := p.num("stops")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewExposure(stops))
		},
	},
	{
		Name:        "tone_curve",
		Aliases:     []string{"contrast"},
		Description: "Pivoted contrast curve on each channel with highlight rolloff.",
		Params: []Param{
			number("contrast", 1.2, "curve strength, > 0"),
			number("pivot", 0.5, "fixed point, in (0,1)"),
		},
		build: func(p *params) (stage.Stage, error) {
			contrast, pivot := p.num("contrast"), p.num("pivot")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewToneCurve(contrast, pivot))
		},
	},
	{
		Name:        "lightness_curve",
		Aliases:     []string{"lightness_contrast"},
		Description: "Pivoted contrast curve on Oklab lightness only.",
		Params: []Param{
			number("contrast", 1.2, "curve strength, > 0"),
			number("pivot", 0.5, "fixed point, in (0,1)"),
		},
		build: func(p *params) (stage.Stage, error) {
			contrast, pivot := p.num("contrast"), p.num("pivot")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewLightnessCurve(contrast, pivot))
		},
	},
	{
		Name:        "film_shoulder",
		Description: "Lifts blacks and compresses highlights like a film shoulder.",
		Params:      []Param{number("strength", 0.3, "compression, >= 0")},
		build: func(p *params) (stage.Stage, error) {
			strength := p.num("strength")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewFilmShoulder(strength))
		},
	},
	{
		Name:        "richness",
		Description: "Oklab chroma boost with midtone protection.",
		Params:      []Param{number("boost", 0.3, "chroma gain, >= -1")},
		build: func(p *params) (stage.Stage, error) {
			boost := p.num("boost")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewColorRichness(boost))
		},
	},
	{
		Name:        "selective_richness",
		Description: "Oklab chroma boost chosen per hue band.",
		Params: []Param{
			number("red", 0, "boost for reds"),
			number("orange", 0, "boost for oranges"),
			number("yellow", 0, "boost for yellows"),
			number("green", 0, "boost for greens"),
			number("cyan", 0, "boost for cyans"),
			number("blue", 0, "boost for blues"),
			number("magenta", 0, "boost for magentas"),
		},
		build: func(p *params) (stage.Stage, error) {
			b := stage.Bands{
				Red:     p.num("red"),
				Orange:  p.num("orange"),
				Yellow:  p.num("yellow"),
				Green:   p.num("green"),
				Cyan:    p.num("cyan"),
				Blue:    p.num("blue"),
				Magenta: p.num("magenta"),
			}
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewSelectiveRichness(b))
		},
	},
	{
		Name:        "film_colors",
		Description: "Selective richness with the film band preset.",
		Params:      []Param{},
		build: func(*params) (stage.Stage, error) {
			return checked(stage.NewSelectiveRichness(stage.FilmColors()))
		},
	},
	{
		Name:        "density_richness",
		Description: "Channel separation and density blend with luminance preserved.",
		Params: []Param{
			number("separation", 1.2, "channel spread multiplier, >= 0"),
			number("density", 0.5, "gray blend strength, >= 0"),
		},
		build: func(p *params) (stage.Stage, error) {
			sep, dens := p.num("separation"), p.num("density")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewDensityRichness(sep, dens))
		},
	},
	{
		Name:        "split_tone",
		Description: "Tints shadows and highlights toward two hues.",
		Params: []Param{
			number("shadow_hue", 210, "degrees"),
			number("shadow_saturation", 0.3, "in [0,1]"),
			number("highlight_hue", 40, "degrees"),
			number("highlight_saturation", 0.3, "in [0,1]"),
		},
		build: func(p *params) (stage.Stage, error) {
			sh, ss := p.num("shadow_hue"), p.num("shadow_saturation")
			hh, hs := p.num("highlight_hue"), p.num("highlight_saturation")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewSplitTone(sh, ss, hh, hs))
		},
	},
	{
		Name:        "band_saturation",
		Description: "Saturation multipliers for shadows, midtones and highlights.",
		Params: []Param{
			number("shadow", 1, "shadow multiplier, >= 0"),
			number("mid", 1, "midtone multiplier, >= 0"),
			number("highlight", 1, "highlight multiplier, >= 0"),
		},
		build: func(p *params) (stage.Stage, error) {
			s, m, h := p.num("shadow"), p.num("mid"), p.num("highlight")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewBandSaturation(s, m, h))
		},
	},
	{
		Name:        "film_blacks",
		Description: "Remaps the toe so black becomes lift and crush is unchanged.",
		Params: []Param{
			number("crush", 0.1, "toe end, in [0,0.3]"),
			number("lift", 0.02, "new black level, in [0,0.05]"),
		},
		build: func(p *params) (stage.Stage, error) {
			crush, lift := p.num("crush"), p.num("lift")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewFilmBlacks(crush, lift))
		},
	},
	{
		Name:        "color_grade",
		Description: "Three-way additive offsets weighted by luminance.",
		Params: []Param{
			color("shadows", "RGB offset for shadows"),
			color("midtones", "RGB offset for midtones"),
			color("highlights", "RGB offset for highlights"),
		},
		build: func(p *params) (stage.Stage, error) {
			sh, mid, hi := p.color("shadows"), p.color("midtones"), p.color("highlights")
			if p.err != nil {
				return nil, p.err
			}
			return checked(stage.NewColorGrade(sh, mid, hi))
		},
	},
}

var typeIndex = func() map[string]*StageType {
	m := make(map[string]*StageType)
	for _, t := range catalog {
		m[t.Name] = t
		for _, a := range t.Aliases {
			m[a] = t
		}
	}
	return m
}()

func lookupType(name string) (*StageType, bool) {
	t, ok := typeIndex[name]
	return t, ok
}

// Types returns the stage catalog in a stable order.
func Types() []StageType {
	out := make([]StageType, len(catalog))
	for i, t := range catalog {
		out[i] = *t
		out[i].Params = make([]Param, len(t.Params))
		copy(out[i].Params, t.Params)
	}
	return out
}
