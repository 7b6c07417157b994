package frame

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ironsheep/filmgrade/internal/colorspace"
)

// gradient builds width*height samples sweeping through the unit cube.
func gradient(width, height int) []colorspace.Color {
	out := make([]colorspace.Color, width*height)
	for i := range out {
		f := float32(i) / float32(len(out))
		out[i] = colorspace.Color{f, 1 - f, 0.5}
	}
	return out
}

func TestNew_ConvertsToWorking(t *testing.T) {
	f, err := New([]colorspace.Color{{1, 1, 1}, {0, 0, 0}}, 2, 1, colorspace.SRGB)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if f.Space() != colorspace.Working {
		t.Errorf("Space: got %v, want %v", f.Space(), colorspace.Working)
	}
	if f.Width() != 2 || f.Height() != 1 || f.Len() != 2 {
		t.Errorf("dimensions: got %dx%d (%d), want 2x1 (2)", f.Width(), f.Height(), f.Len())
	}
	white := f.At(0, 0)
	for i, v := range white {
		if math.Abs(float64(v)-1) > 1e-4 {
			t.Errorf("white channel %d: got %v, want 1", i, v)
		}
	}
	if f.At(1, 0) != (colorspace.Color{}) {
		t.Errorf("black: got %v", f.At(1, 0))
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		samples       int
		width, height int
	}{
		{"zero width", 0, 0, 4},
		{"negative height", 4, 4, -1},
		{"too few samples", 3, 2, 2},
		{"too many samples", 5, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(make([]colorspace.Color, tt.samples), tt.width, tt.height, colorspace.SRGB)
			if !errors.Is(err, ErrDimensions) {
				t.Errorf("got error %v, want ErrDimensions", err)
			}
		})
	}
}

func TestNew_InvalidSpace(t *testing.T) {
	_, err := New(make([]colorspace.Color, 4), 2, 2, colorspace.Space(0))
	if !errors.Is(err, colorspace.ErrInvalidColorSpace) {
		t.Errorf("got error %v, want ErrInvalidColorSpace", err)
	}
}

func TestNew_DoesNotRetainInput(t *testing.T) {
	in := gradient(4, 4)
	f, err := New(in, 4, 4, colorspace.Working)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	in[0] = colorspace.Color{9, 9, 9}
	if f.At(0, 0) == in[0] {
		t.Error("frame shares storage with the input samples")
	}
}

func TestFromRGB8(t *testing.T) {
	pix := []uint8{255, 0, 51, 0, 0, 0}
	f, err := FromRGB8(pix, 2, 1, colorspace.Working)
	if err != nil {
		t.Fatalf("FromRGB8 failed: %v", err)
	}
	want := []colorspace.Color{{1, 0, 0.2}, {0, 0, 0}}
	if diff := cmp.Diff(want, f.Pixels(), cmpopts.EquateApprox(0, 1e-7)); diff != "" {
		t.Errorf("samples (-want +got):\n%s", diff)
	}

	if _, err := FromRGB8(pix[:5], 2, 1, colorspace.SRGB); !errors.Is(err, ErrDimensions) {
		t.Errorf("short buffer: got %v, want ErrDimensions", err)
	}
}

func TestConvertTo_LeavesReceiver(t *testing.T) {
	f, err := New(gradient(8, 8), 8, 8, colorspace.SRGB)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	before := f.Pixels()

	lab, err := f.ConvertTo(colorspace.Oklab)
	if err != nil {
		t.Fatalf("ConvertTo failed: %v", err)
	}
	if lab.Space() != colorspace.Oklab {
		t.Errorf("converted space: got %v, want Oklab", lab.Space())
	}
	if lab.Width() != 8 || lab.Height() != 8 {
		t.Errorf("converted dimensions: got %dx%d", lab.Width(), lab.Height())
	}
	if f.Space() != colorspace.Working {
		t.Errorf("receiver space changed to %v", f.Space())
	}
	if diff := cmp.Diff(before, f.Pixels()); diff != "" {
		t.Errorf("receiver mutated:\n%s", diff)
	}

	back, err := lab.ConvertTo(colorspace.Working)
	if err != nil {
		t.Fatalf("ConvertTo failed: %v", err)
	}
	if diff := cmp.Diff(before, back.Pixels(), cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestWithin_RestoresSpace(t *testing.T) {
	f, err := New(gradient(4, 4), 4, 4, colorspace.Working)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var seen colorspace.Space
	err = f.Within(colorspace.Oklab, func(lab *Frame) error {
		seen = lab.Space()
		lab.ForEach(func(px *colorspace.Color) {
			px[1], px[2] = 0, 0
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Within failed: %v", err)
	}
	if seen != colorspace.Oklab {
		t.Errorf("callback saw %v, want Oklab", seen)
	}
	if f.Space() != colorspace.Working {
		t.Errorf("space after Within: got %v, want %v", f.Space(), colorspace.Working)
	}
	// Zero chroma in Oklab is neutral: channels come back equal.
	for _, px := range f.Pixels() {
		if math.Abs(float64(px[0]-px[1])) > 2e-3 || math.Abs(float64(px[1]-px[2])) > 2e-3 {
			t.Fatalf("pixel not neutral after desaturation: %v", px)
		}
	}
}

func TestWithin_ErrorLeavesFrame(t *testing.T) {
	f, err := New(gradient(4, 4), 4, 4, colorspace.Working)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	before := f.Pixels()
	boom := errors.New("boom")

	err = f.Within(colorspace.Oklab, func(lab *Frame) error {
		lab.ForEach(func(px *colorspace.Color) { px[0] = 0 })
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got error %v, want boom", err)
	}
	if f.Space() != colorspace.Working {
		t.Errorf("space changed to %v", f.Space())
	}
	if diff := cmp.Diff(before, f.Pixels()); diff != "" {
		t.Errorf("values changed on failure:\n%s", diff)
	}

	if err := f.Within(colorspace.Space(0), func(*Frame) error { return nil }); !errors.Is(err, colorspace.ErrInvalidColorSpace) {
		t.Errorf("invalid space: got %v, want ErrInvalidColorSpace", err)
	}
}

func TestForEach_VisitsEachPixelOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 3, 7, 64, 1000} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			f, err := New(make([]colorspace.Color, 37*11), 37, 11, colorspace.Working, Workers(workers))
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			var calls atomic.Int64
			f.ForEach(func(px *colorspace.Color) {
				px[0]++
				calls.Add(1)
			})
			if got := calls.Load(); got != int64(f.Len()) {
				t.Errorf("workers=%d: %d calls, want %d", workers, got, f.Len())
			}
			for i, px := range f.Pixels() {
				if px[0] != 1 {
					t.Fatalf("workers=%d: pixel %d visited %v times", workers, i, px[0])
				}
			}
		})
	}
}

func TestPartition_Coverage(t *testing.T) {
	for _, n := range []int{0, 1, 5, 100, 1031} {
		for _, workers := range []int{-1, 0, 1, 4, 9} {
			hits := make([]int32, n)
			partition(n, workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("n=%d workers=%d: index %d covered %d times", n, workers, i, h)
				}
			}
		}
	}
}

func TestAssign(t *testing.T) {
	a, _ := New(gradient(2, 2), 2, 2, colorspace.Working)
	b, _ := a.ConvertTo(colorspace.Oklab)

	if err := a.Assign(b); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if a.Space() != colorspace.Oklab {
		t.Errorf("space after Assign: got %v, want Oklab", a.Space())
	}
	if diff := cmp.Diff(b.Pixels(), a.Pixels()); diff != "" {
		t.Errorf("values after Assign:\n%s", diff)
	}

	c, _ := New(gradient(3, 1), 3, 1, colorspace.Working)
	if err := a.Assign(c); !errors.Is(err, ErrDimensions) {
		t.Errorf("mismatched Assign: got %v, want ErrDimensions", err)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	a, _ := New(gradient(2, 2), 2, 2, colorspace.Working)
	b := a.Clone()
	b.ForEach(func(px *colorspace.Color) { *px = colorspace.Color{} })
	if a.At(1, 1) == (colorspace.Color{}) {
		t.Error("Clone shares pixel storage")
	}
}

func TestExport_NoClamp(t *testing.T) {
	f, _ := New([]colorspace.Color{{4, 4, 4}}, 1, 1, colorspace.Working)
	out, err := f.Export(colorspace.LinearSRGB)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for i, v := range out[0] {
		if math.Abs(float64(v)-4) > 1e-3 {
			t.Errorf("channel %d: got %v, want 4", i, v)
		}
	}
	if f.Space() != colorspace.Working {
		t.Errorf("Export changed the frame space to %v", f.Space())
	}
}

func TestAt_OutOfBoundsPanics(t *testing.T) {
	f, _ := New(gradient(2, 2), 2, 2, colorspace.Working)
	defer func() {
		if recover() == nil {
			t.Error("At(2,0) did not panic")
		}
	}()
	f.At(2, 0)
}
