package recipe

import (
	"fmt"
	"sort"
)

var presets = map[string]func() *Recipe{
	"film": func() *Recipe {
		return &Recipe{
			Name:        "film",
			Description: "Half a stop brighter, richer color, film band boosts and gentle contrast.",
			Stages: []Step{
				{Type: "exposure", Params: map[string]interface{}{"stops": 0.5}},
				{Type: "richness", Params: map[string]interface{}{"boost": 0.3}},
				{Type: "film_colors"},
				{Type: "tone_curve", Params: map[string]interface{}{"contrast": 1.2, "pivot": 0.6}},
			},
		}
	},
	"neutral": func() *Recipe {
		return &Recipe{
			Name:        "neutral",
			Description: "Round trip through the working space with no adjustment.",
			Stages: []Step{
				{Type: "exposure", Params: map[string]interface{}{"stops": 0.0}},
			},
		}
	},
	"teal-orange": func() *Recipe {
		return &Recipe{
			Name:        "teal-orange",
			Description: "Teal shadows, warm highlights and a matching three-way grade.",
			Stages: []Step{
				{Type: "split_tone", Params: map[string]interface{}{
					"shadow_hue":           190.0,
					"shadow_saturation":    0.5,
					"highlight_hue":        35.0,
					"highlight_saturation": 0.4,
				}},
				{Type: "color_grade", Params: map[string]interface{}{
					"shadows":    []interface{}{-0.05, 0.02, 0.08},
					"highlights": []interface{}{0.08, 0.03, -0.05},
				}},
				{Type: "tone_curve", Params: map[string]interface{}{"contrast": 1.1, "pivot": 0.5}},
			},
		}
	},
}

// Preset returns a fresh copy of a built-in recipe.
func Preset(name string) (*Recipe, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("recipe: unknown preset %q (available: %v)", name, Presets())
	}
	return fn(), nil
}

// Presets returns the built-in recipe names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
