// Package recipe describes grading pipelines as JSON documents.
//
// A recipe names the input and output color spaces and lists the stages to
// run, each as a type plus a parameter map:
//
//	{
//	  "name": "film",
//	  "input_space": "srgb",
//	  "output_space": "srgb",
//	  "stages": [
//	    {"type": "exposure", "params": {"stops": 0.5}},
//	    {"type": "richness", "params": {"boost": 0.3}},
//	    {"type": "film_colors"},
//	    {"type": "tone_curve", "params": {"contrast": 1.2, "pivot": 0.6}}
//	  ]
//	}
//
// Parameters left out take the defaults listed by Types. Unknown stage types
// and unknown parameter names are errors; parameter ranges are checked by the
// stage constructors when Pipeline is called.
//
// Built-in recipes are available through Preset.
package recipe
