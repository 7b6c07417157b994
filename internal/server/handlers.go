package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/imaging"
	"github.com/ironsheep/filmgrade/internal/recipe"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "grade_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler unmarshals its arguments, applies defaults for optional
// parameters, resolves color space names and calls into the imaging and
// recipe packages.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Grading
	case "grade_image":
		return s.handleGradeImage(ctx, args)
	case "list_stages":
		return s.handleListStages()
	case "list_presets":
		return s.handleListPresets()

	// Color Operations
	case "convert_color":
		return s.handleConvertColor(args)
	case "sample_color":
		return s.handleSampleColor(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// parseSpace resolves an optional space name, returning def when empty.
func parseSpace(name string, def colorspace.Space) (colorspace.Space, error) {
	if name == "" {
		return def, nil
	}
	return colorspace.ParseSpace(name)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Grading Handlers ===

type gradeImageArgs struct {
	Path        string          `json:"path"`
	OutputPath  string          `json:"output_path"`
	Preset      string          `json:"preset"`
	Recipe      json.RawMessage `json:"recipe"`
	RecipePath  string          `json:"recipe_path"`
	InputSpace  string          `json:"input_space"`
	OutputSpace string          `json:"output_space"`
	MaxSize     int             `json:"max_size"`
	Quality     int             `json:"quality"`
	Preview     bool            `json:"preview"`
	PreviewSize int             `json:"preview_size"`
}

type gradeImageResult struct {
	*imaging.GradeResult
	Recipe  string                 `json:"recipe,omitempty"`
	Preview *imaging.PreviewResult `json:"preview,omitempty"`
}

// resolveRecipe picks the single recipe source the arguments name.
func (a *gradeImageArgs) resolveRecipe() (*recipe.Recipe, error) {
	sources := 0
	inline := len(a.Recipe) > 0 && string(a.Recipe) != "null"
	for _, set := range []bool{a.Preset != "", inline, a.RecipePath != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New("give at most one of preset, recipe and recipe_path")
	}

	switch {
	case inline:
		return recipe.Parse(a.Recipe)
	case a.RecipePath != "":
		return recipe.Load(a.RecipePath)
	case a.Preset != "":
		return recipe.Preset(a.Preset)
	default:
		return recipe.Preset("film")
	}
}

func (s *Server) handleGradeImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gradeImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" || a.OutputPath == "" {
		return nil, errors.New("path and output_path are required")
	}
	if a.PreviewSize == 0 {
		a.PreviewSize = 512
	}

	r, err := a.resolveRecipe()
	if err != nil {
		return nil, err
	}
	p, err := r.Pipeline()
	if err != nil {
		return nil, err
	}

	recipeIn, recipeOut, err := r.Spaces()
	if err != nil {
		return nil, err
	}
	in, err := parseSpace(a.InputSpace, recipeIn)
	if err != nil {
		return nil, err
	}
	out, err := parseSpace(a.OutputSpace, recipeOut)
	if err != nil {
		return nil, err
	}

	res, err := imaging.GradeFile(ctx, s.cache, p, a.Path, a.OutputPath, imaging.GradeOptions{
		InputSpace:  in,
		OutputSpace: out,
		MaxSize:     a.MaxSize,
		Quality:     a.Quality,
	})
	if err != nil {
		return nil, err
	}
	// The output may replace a file an earlier call cached.
	s.cache.Evict(a.OutputPath)

	result := &gradeImageResult{GradeResult: res, Recipe: r.Name}
	if a.Preview {
		graded, err := imaging.Load(a.OutputPath, out)
		if err != nil {
			return nil, err
		}
		if result.Preview, err = imaging.Preview(graded, colorspace.SRGB, a.PreviewSize); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type stageListResult struct {
	Stages []recipe.StageType `json:"stages"`
}

func (s *Server) handleListStages() (interface{}, error) {
	return &stageListResult{Stages: recipe.Types()}, nil
}

type presetSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stages      []string `json:"stages"`
}

type presetListResult struct {
	Presets []presetSummary `json:"presets"`
}

func (s *Server) handleListPresets() (interface{}, error) {
	names := recipe.Presets()
	result := &presetListResult{Presets: make([]presetSummary, 0, len(names))}
	for _, name := range names {
		r, err := recipe.Preset(name)
		if err != nil {
			return nil, err
		}
		stages := make([]string, len(r.Stages))
		for i, step := range r.Stages {
			stages[i] = step.Type
		}
		result.Presets = append(result.Presets, presetSummary{
			Name:        r.Name,
			Description: r.Description,
			Stages:      stages,
		})
	}
	return result, nil
}

// === Color Operation Handlers ===

type convertColorArgs struct {
	Color []float64 `json:"color"`
	From  string    `json:"from"`
	To    string    `json:"to"`
}

type convertColorResult struct {
	From   string     `json:"from"`
	To     string     `json:"to"`
	Input  [3]float32 `json:"input"`
	Values [3]float32 `json:"values"`
}

func (s *Server) handleConvertColor(args json.RawMessage) (interface{}, error) {
	var a convertColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Color) != 3 {
		return nil, fmt.Errorf("color must have 3 components, got %d", len(a.Color))
	}
	from, err := colorspace.ParseSpace(a.From)
	if err != nil {
		return nil, err
	}
	to, err := colorspace.ParseSpace(a.To)
	if err != nil {
		return nil, err
	}

	c := colorspace.Color{float32(a.Color[0]), float32(a.Color[1]), float32(a.Color[2])}
	v, err := colorspace.ConvertColor(c, from, to)
	if err != nil {
		return nil, err
	}
	return &convertColorResult{
		From:   from.String(),
		To:     to.String(),
		Input:  c,
		Values: v,
	}, nil
}

type sampleColorArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
	InputSpace string `json:"input_space"`
	Space      string `json:"space"`
	Preset     string `json:"preset"`
}

type gradedSampleResult struct {
	Recipe  string                 `json:"recipe"`
	Samples []imaging.GradedSample `json:"samples"`
}

func (s *Server) handleSampleColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := parseSpace(a.InputSpace, colorspace.SRGB)
	if err != nil {
		return nil, err
	}
	space, err := parseSpace(a.Space, colorspace.Working)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if a.Preset == "" && len(a.Points) == 0 {
		return imaging.SampleColor(img, a.X, a.Y, src, space)
	}
	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	if len(points) == 0 {
		points = []imaging.LabeledPoint{{X: a.X, Y: a.Y}}
	}
	if a.Preset == "" {
		return imaging.SampleColorsMulti(img, points, src, space)
	}

	r, err := recipe.Preset(a.Preset)
	if err != nil {
		return nil, err
	}
	p, err := r.Pipeline()
	if err != nil {
		return nil, err
	}
	f, err := imaging.LoadFrame(img, src)
	if err != nil {
		return nil, err
	}
	samples, err := imaging.SampleGraded(ctx, f, p, points, space)
	if err != nil {
		return nil, err
	}
	return &gradedSampleResult{Recipe: r.Name, Samples: samples}, nil
}
