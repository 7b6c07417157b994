package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
	"github.com/ironsheep/filmgrade/internal/stage"
)

func grayFrame(t testing.TB, width, height int, v float32, opts ...frame.Option) *frame.Frame {
	t.Helper()
	samples := make([]colorspace.Color, width*height)
	for i := range samples {
		samples[i] = colorspace.Gray(v)
	}
	f, err := frame.New(samples, width, height, colorspace.Working, opts...)
	if err != nil {
		t.Fatalf("frame.New failed: %v", err)
	}
	return f
}

// funcStage adapts a function to stage.Stage.
type funcStage struct {
	name string
	fn   func(*frame.Frame) error
}

func (s funcStage) Name() string                   { return s.name }
func (s funcStage) Process(img *frame.Frame) error { return s.fn(img) }

func TestProcess_OrderMatters(t *testing.T) {
	exposure, err := stage.NewExposure(1)
	if err != nil {
		t.Fatal(err)
	}
	blacks, err := stage.NewFilmBlacks(0.2, 0.02)
	if err != nil {
		t.Fatal(err)
	}

	run := func(stages ...stage.Stage) colorspace.Color {
		t.Helper()
		p, err := New(stages...)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		img := grayFrame(t, 1, 1, 0.15)
		if err := p.Process(context.Background(), img); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		return img.At(0, 0)
	}

	// 0.15 doubles to 0.3, above the crush point.
	a := run(exposure, blacks)
	// 0.15 is remapped to 0.155 first, then doubled.
	b := run(blacks, exposure)

	if a == b {
		t.Fatalf("reordering produced the same pixel %v", a)
	}
	if diff := cmp.Diff(colorspace.Gray(0.3), a); diff != "" {
		t.Errorf("exposure then blacks (-want +got):\n%s", diff)
	}
	if b[0] < 0.3099 || b[0] > 0.3101 {
		t.Errorf("blacks then exposure = %v, want about 0.31", b[0])
	}
}

func TestProcess_StagesRunToCompletionInOrder(t *testing.T) {
	const n = 6
	var violations atomic.Int64
	var order []string

	stages := make([]stage.Stage, n)
	for k := 0; k < n; k++ {
		k := k
		name := string(rune('a' + k))
		stages[k] = funcStage{name: name, fn: func(img *frame.Frame) error {
			order = append(order, name)
			img.ForEach(func(px *colorspace.Color) {
				if px[0] != float32(k) {
					violations.Add(1)
				}
				px[0] = float32(k + 1)
			})
			return nil
		}}
	}

	p, err := New(stages...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	img := grayFrame(t, 97, 31, 0, frame.Workers(8))
	if err := p.Process(context.Background(), img); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if v := violations.Load(); v != 0 {
		t.Errorf("%d pixels saw a stage before the previous one finished", v)
	}
	if diff := cmp.Diff(p.Names(), order); diff != "" {
		t.Errorf("execution order (-want +got):\n%s", diff)
	}
	if got := img.At(96, 30)[0]; got != n {
		t.Errorf("final value = %v, want %d", got, n)
	}
}

func TestProcess_EmptyPipelineIsIdentity(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	img := grayFrame(t, 4, 4, 0.42)
	before := img.Pixels()
	if err := p.Process(context.Background(), img); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if diff := cmp.Diff(before, img.Pixels()); diff != "" {
		t.Errorf("empty pipeline changed pixels (-want +got):\n%s", diff)
	}
}

func TestProcess_CancelBetweenStages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ran []string
	first := funcStage{name: "first", fn: func(img *frame.Frame) error {
		ran = append(ran, "first")
		img.ForEach(func(px *colorspace.Color) { *px = colorspace.Gray(1) })
		cancel()
		return nil
	}}
	second := funcStage{name: "second", fn: func(img *frame.Frame) error {
		ran = append(ran, "second")
		return nil
	}}

	p, err := New(first, second)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	img := grayFrame(t, 3, 3, 0)
	err = p.Process(ctx, img)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Process error = %v, want context.Canceled", err)
	}
	if !strings.Contains(err.Error(), "second") {
		t.Errorf("error %q does not name the skipped stage", err)
	}
	if diff := cmp.Diff([]string{"first"}, ran); diff != "" {
		t.Errorf("stages run (-want +got):\n%s", diff)
	}
	if got := img.At(2, 2); got != colorspace.Gray(1) {
		t.Errorf("completed stage output lost: %v", got)
	}
}

func TestProcess_WrapsStageError(t *testing.T) {
	boom := errors.New("boom")
	p, err := New(
		funcStage{name: "ok", fn: func(*frame.Frame) error { return nil }},
		funcStage{name: "broken", fn: func(*frame.Frame) error { return boom }},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	err = p.Process(context.Background(), grayFrame(t, 1, 1, 0))
	if !errors.Is(err, boom) {
		t.Fatalf("Process error = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "stage 1 (broken)") {
		t.Errorf("error %q does not identify the stage", err)
	}
}

func TestProcess_NilFrame(t *testing.T) {
	p, _ := New()
	if err := p.Process(context.Background(), nil); err == nil {
		t.Error("expected error for nil frame")
	}
}

func TestNew_CopiesStages(t *testing.T) {
	a, _ := stage.NewExposure(1)
	b, _ := stage.NewExposure(-1)
	stages := []stage.Stage{a, b}

	p, err := New(stages...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	stages[0] = b
	if p.Stages()[0] != stage.Stage(a) {
		t.Error("pipeline shares the caller's slice")
	}

	got := p.Stages()
	got[1] = a
	if p.Stages()[1] != stage.Stage(b) {
		t.Error("Stages exposes internal storage")
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}
}

func TestNew_RejectsNilStage(t *testing.T) {
	a, _ := stage.NewExposure(1)
	if _, err := New(a, nil); !errors.Is(err, ErrNilStage) {
		t.Errorf("error = %v, want ErrNilStage", err)
	}
}

func TestBuilder(t *testing.T) {
	t.Run("film recipe", func(t *testing.T) {
		p, err := NewBuilder().
			Exposure(0.5).
			Richness(0.3).
			FilmColors().
			Contrast(1.2, 0.6).
			Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		want := []string{"exposure", "richness", "selective_richness", "tone_curve"}
		if diff := cmp.Diff(want, p.Names()); diff != "" {
			t.Errorf("names (-want +got):\n%s", diff)
		}
	})

	t.Run("every method", func(t *testing.T) {
		extra, _ := stage.NewExposure(0)
		p, err := NewBuilder().
			Add(extra).
			Exposure(0.2).
			Contrast(1.1, 0.5).
			LightnessContrast(1.1, 0.5).
			Richness(0.2).
			SelectiveRichness(stage.Bands{Blue: 0.2}).
			FilmColors().
			SplitTone(210, 0.3, 40, 0.3).
			BandSaturation(0.9, 1.1, 0.9).
			FilmBlacks(0.1, 0.01).
			ColorGrade(colorspace.Color{}, colorspace.Color{}, colorspace.Color{}).
			DensityRichness(1.1, 0.5).
			FilmShoulder(0.2).
			Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if p.Len() != 13 {
			t.Errorf("Len = %d, want 13", p.Len())
		}
	})

	t.Run("first error sticks", func(t *testing.T) {
		_, err := NewBuilder().
			Exposure(0.5).
			Contrast(0, 0.5).
			FilmBlacks(1, 1).
			Build()
		if !errors.Is(err, stage.ErrInvalidParameter) {
			t.Fatalf("Build error = %v, want ErrInvalidParameter", err)
		}
		if !strings.Contains(err.Error(), "contrast") {
			t.Errorf("error %q is not the first failure", err)
		}
	})

	t.Run("nil stage", func(t *testing.T) {
		if _, err := NewBuilder().Add(nil).Build(); !errors.Is(err, ErrNilStage) {
			t.Errorf("error = %v, want ErrNilStage", err)
		}
	})
}

func TestPipeline_SharedAcrossGoroutines(t *testing.T) {
	p, err := NewBuilder().Exposure(0.5).Richness(0.3).FilmColors().Contrast(1.2, 0.6).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := grayFrame(t, 16, 16, 0.3)
	if err := p.Process(context.Background(), want); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	const n = 4
	results := make(chan []colorspace.Color, n)
	for i := 0; i < n; i++ {
		go func() {
			img := grayFrame(t, 16, 16, 0.3)
			if err := p.Process(context.Background(), img); err != nil {
				results <- nil
				return
			}
			results <- img.Pixels()
		}()
	}
	for i := 0; i < n; i++ {
		if diff := cmp.Diff(want.Pixels(), <-results); diff != "" {
			t.Errorf("concurrent run differs (-want +got):\n%s", diff)
		}
	}
}

func BenchmarkFilmPipeline(b *testing.B) {
	p, err := NewBuilder().
		Exposure(0.5).
		Richness(0.3).
		FilmColors().
		Contrast(1.2, 0.6).
		Build()
	if err != nil {
		b.Fatal(err)
	}

	const w, h = 1024, 768
	rng := rand.New(rand.NewSource(1))
	pix := make([]uint8, w*h*3)
	rng.Read(pix)
	src, err := frame.FromRGB8(pix, w, h, colorspace.SRGB)
	if err != nil {
		b.Fatal(err)
	}
	img := src.Clone()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := img.Assign(src); err != nil {
			b.Fatal(err)
		}
		if err := p.Process(context.Background(), img); err != nil {
			b.Fatal(err)
		}
	}
}
