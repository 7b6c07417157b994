package recipe

import (
	"fmt"

	"github.com/ironsheep/filmgrade/internal/colorspace"
)

// params reads a step's values, falling back to the catalog defaults.
// The first bad value is kept in err so builders can read every parameter
// and check once.
type params struct {
	step   string
	values map[string]interface{}
	typ    *StageType
	err    error
}

func (p *params) num(name string) float64 {
	def := p.typ.param(name)
	v, ok := p.values[name]
	if !ok {
		return def.Default
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	}
	p.fail(name, v, "a number")
	return def.Default
}

func (p *params) color(name string) colorspace.Color {
	def := p.typ.param(name)
	dflt := colorspace.Color{float32(def.Color[0]), float32(def.Color[1]), float32(def.Color[2])}
	v, ok := p.values[name]
	if !ok {
		return dflt
	}

	var out colorspace.Color
	switch c := v.(type) {
	case []interface{}:
		if len(c) != 3 {
			p.fail(name, v, "three numbers")
			return dflt
		}
		for i, e := range c {
			f, ok := e.(float64)
			if !ok {
				p.fail(name, v, "three numbers")
				return dflt
			}
			out[i] = float32(f)
		}
	case []float64:
		if len(c) != 3 {
			p.fail(name, v, "three numbers")
			return dflt
		}
		out = colorspace.Color{float32(c[0]), float32(c[1]), float32(c[2])}
	case colorspace.Color:
		out = c
	default:
		p.fail(name, v, "three numbers")
		return dflt
	}
	return out
}

func (p *params) fail(name string, v interface{}, want string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s: parameter %q is %v, want %s", ErrInvalidStep, p.step, name, v, want)
	}
}
