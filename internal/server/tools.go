package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

const spaceDescription = "Color space name: srgb, linear-srgb, display-p3, rec2020, acescg, aces2065, prophoto, oklab or lab"

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file into the cache and return its dimensions, format, bit depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Grading
		{
			Name:        "grade_image",
			Description: "Run a grading pipeline over an image and write the result. The pipeline comes from a built-in preset, an inline recipe or a recipe file; with none given the film preset is used.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the input image",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path for the graded image; the extension selects the format",
					},
					"preset": map[string]interface{}{
						"type":        "string",
						"description": "Built-in recipe name (see list_presets)",
					},
					"recipe": map[string]interface{}{
						"type":        "object",
						"description": "Inline recipe: {\"stages\": [{\"type\": \"exposure\", \"params\": {\"stops\": 0.5}}]}",
					},
					"recipe_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a JSON recipe file",
					},
					"input_space": map[string]interface{}{
						"type":        "string",
						"description": spaceDescription + ". Default from the recipe, else srgb",
					},
					"output_space": map[string]interface{}{
						"type":        "string",
						"description": spaceDescription + ". Default from the recipe, else srgb",
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale so neither side exceeds this many pixels before grading. Default 0 (full size)",
						"default":     0,
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100. Default 92",
						"default":     92,
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return a base64 PNG preview of the result",
						"default":     false,
					},
					"preview_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest side of the preview in pixels. Default 512",
						"default":     512,
					},
				},
				"required": []string{"path", "output_path"},
			},
		},
		{
			Name:        "list_stages",
			Description: "List the stage types a recipe can use, with their parameters and defaults.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "list_presets",
			Description: "List the built-in recipes and their stages.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Color Operations
		{
			Name:        "convert_color",
			Description: "Convert one color between color spaces. Values are not clamped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"minItems":    3,
						"maxItems":    3,
						"description": "Three components in the source space (0-1 for RGB spaces)",
					},
					"from": map[string]interface{}{
						"type":        "string",
						"description": spaceDescription,
					},
					"to": map[string]interface{}{
						"type":        "string",
						"description": spaceDescription,
					},
				},
				"required": []string{"color", "from", "to"},
			},
		},
		{
			Name:        "sample_color",
			Description: "Get the color at one or more pixels, as display hex/RGB/HSL and as values in a chosen color space.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Sample several points instead of x/y: [{\"x\": 10, \"y\": 20, \"label\": \"sky\"}]",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
					"input_space": map[string]interface{}{
						"type":        "string",
						"description": "Space the file's samples are encoded in. Default srgb",
					},
					"space": map[string]interface{}{
						"type":        "string",
						"description": spaceDescription + ". Default acescg",
					},
					"preset": map[string]interface{}{
						"type":        "string",
						"description": "Also grade with this built-in recipe and report each point before and after",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
