package imaging

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
	"github.com/ironsheep/filmgrade/internal/pipeline"
)

// GradeOptions controls a grading run. Zero values select sRGB for both
// spaces, full resolution, DefaultQuality and one worker per CPU.
type GradeOptions struct {
	InputSpace  colorspace.Space
	OutputSpace colorspace.Space
	MaxSize     int
	Quality     int
	Workers     int

	// Writer, when set, receives the encoded result instead of the output
	// path. Format names the encoding ("png" when empty).
	Writer io.Writer
	Format string
}

// GradeResult summarizes a completed run.
type GradeResult struct {
	Input       string   `json:"input"`
	Output      string   `json:"output"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	InputSpace  string   `json:"input_space"`
	OutputSpace string   `json:"output_space"`
	Stages      []string `json:"stages"`
	ElapsedMs   int64    `json:"elapsed_ms"`
}

// GradeFile loads in, runs p over it and saves the result to out, or encodes
// it to opt.Writer when one is set (out is then only reported). When cache is
// non-nil the decoded input is taken from and kept in it.
func GradeFile(ctx context.Context, cache *ImageCache, p *pipeline.Pipeline, in, out string, opt GradeOptions) (*GradeResult, error) {
	start := time.Now()
	if opt.InputSpace == 0 {
		opt.InputSpace = colorspace.SRGB
	}
	if opt.OutputSpace == 0 {
		opt.OutputSpace = colorspace.SRGB
	}

	var (
		img image.Image
		err error
	)
	if cache != nil {
		img, err = cache.Load(in)
	} else {
		img, err = open(in)
	}
	if err != nil {
		return nil, err
	}

	f, err := LoadFrame(Fit(img, opt.MaxSize), opt.InputSpace, frame.Workers(opt.Workers))
	if err != nil {
		return nil, &LoadError{Path: in, Err: err}
	}
	if err := p.Process(ctx, f); err != nil {
		return nil, err
	}
	if opt.Writer != nil {
		format := opt.Format
		if format == "" {
			format = "png"
		}
		err = Encode(opt.Writer, f, format, opt.OutputSpace, opt.Quality)
	} else {
		err = Save(f, out, opt.OutputSpace, opt.Quality)
	}
	if err != nil {
		return nil, err
	}

	return &GradeResult{
		Input:       in,
		Output:      out,
		Width:       f.Width(),
		Height:      f.Height(),
		InputSpace:  opt.InputSpace.String(),
		OutputSpace: opt.OutputSpace.String(),
		Stages:      p.Names(),
		ElapsedMs:   time.Since(start).Milliseconds(),
	}, nil
}

// GradedSample is one pixel before and after grading.
type GradedSample struct {
	Label  string      `json:"label,omitempty"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Before ColorResult `json:"before"`
	After  ColorResult `json:"after"`
}

// SampleGraded runs p over a copy of f and reports every point in space as it
// was and as it is after grading. f is left untouched.
func SampleGraded(ctx context.Context, f *frame.Frame, p *pipeline.Pipeline, points []LabeledPoint, space colorspace.Space) ([]GradedSample, error) {
	for _, pt := range points {
		if pt.X < 0 || pt.Y < 0 || pt.X >= f.Width() || pt.Y >= f.Height() {
			return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", pt.X, pt.Y)
		}
	}

	graded := f.Clone()
	if err := p.Process(ctx, graded); err != nil {
		return nil, err
	}

	samples := make([]GradedSample, 0, len(points))
	for _, pt := range points {
		before, err := SampleFrame(f, pt.X, pt.Y, space)
		if err != nil {
			return nil, err
		}
		after, err := SampleFrame(graded, pt.X, pt.Y, space)
		if err != nil {
			return nil, err
		}
		samples = append(samples, GradedSample{
			Label:  pt.Label,
			X:      pt.X,
			Y:      pt.Y,
			Before: *before,
			After:  *after,
		})
	}
	return samples, nil
}
