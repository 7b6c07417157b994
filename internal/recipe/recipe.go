package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/pipeline"
	"github.com/ironsheep/filmgrade/internal/stage"
)

var (
	// ErrUnknownStage is returned for a step whose type is not in the catalog.
	ErrUnknownStage = errors.New("recipe: unknown stage type")

	// ErrInvalidStep is returned for a step with unknown or malformed parameters.
	ErrInvalidStep = errors.New("recipe: invalid step")
)

// Recipe is a serializable pipeline description.
type Recipe struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// InputSpace and OutputSpace are color space names accepted by
	// colorspace.ParseSpace. Empty means sRGB.
	InputSpace  string `json:"input_space,omitempty"`
	OutputSpace string `json:"output_space,omitempty"`

	Stages []Step `json:"stages"`
}

// Step is one stage of a recipe. Params values are numbers, or three-element
// arrays for color parameters.
type Step struct {
	Type   string                 `json:"type"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Parse decodes a JSON recipe and checks its stage types and space names.
func Parse(data []byte) (*Recipe, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("recipe: decode: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and parses a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Validate checks space names, stage types and parameter names without
// constructing any stage.
func (r *Recipe) Validate() error {
	if _, _, err := r.Spaces(); err != nil {
		return err
	}
	for i, step := range r.Stages {
		t, ok := lookupType(step.Type)
		if !ok {
			return fmt.Errorf("%w: step %d: %q", ErrUnknownStage, i, step.Type)
		}
		for name := range step.Params {
			if !t.hasParam(name) {
				return fmt.Errorf("%w: step %d (%s): unknown parameter %q", ErrInvalidStep, i, step.Type, name)
			}
		}
	}
	return nil
}

// Spaces resolves the recipe's input and output spaces.
func (r *Recipe) Spaces() (in, out colorspace.Space, err error) {
	in, out = colorspace.SRGB, colorspace.SRGB
	if r.InputSpace != "" {
		if in, err = colorspace.ParseSpace(r.InputSpace); err != nil {
			return 0, 0, fmt.Errorf("recipe: input_space: %w", err)
		}
	}
	if r.OutputSpace != "" {
		if out, err = colorspace.ParseSpace(r.OutputSpace); err != nil {
			return 0, 0, fmt.Errorf("recipe: output_space: %w", err)
		}
	}
	return in, out, nil
}

// Pipeline constructs the stages in order.
func (r *Recipe) Pipeline() (*pipeline.Pipeline, error) {
	stages := make([]stage.Stage, 0, len(r.Stages))
	for i, step := range r.Stages {
		s, err := step.Stage()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		stages = append(stages, s)
	}
	return pipeline.New(stages...)
}

// Stage constructs the stage this step describes.
func (s Step) Stage() (stage.Stage, error) {
	t, ok := lookupType(s.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, s.Type)
	}
	p := params{step: s.Type, values: s.Params, typ: t}
	for name := range s.Params {
		if !t.hasParam(name) {
			return nil, fmt.Errorf("%w: %s: unknown parameter %q", ErrInvalidStep, s.Type, name)
		}
	}
	return t.build(&p)
}
