package colorspace

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func near(a, b Color, tol float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

func TestConvert_RoundTrip(t *testing.T) {
	probes := []struct {
		name  string
		color Color
	}{
		{"black", Color{0, 0, 0}},
		{"white", Color{1, 1, 1}},
		{"mid-gray", Color{0.5, 0.5, 0.5}},
	}

	for _, s1 := range Spaces() {
		for _, s2 := range Spaces() {
			for _, p := range probes {
				t.Run(s1.String()+"->"+s2.String()+"/"+p.name, func(t *testing.T) {
					there, err := Convert([]Color{p.color}, s1, s2)
					if err != nil {
						t.Fatalf("Convert %v->%v failed: %v", s1, s2, err)
					}
					back, err := Convert(there, s2, s1)
					if err != nil {
						t.Fatalf("Convert %v->%v failed: %v", s2, s1, err)
					}
					if !near(back[0], p.color, 1e-5) {
						t.Errorf("round trip: got %v, want %v (via %v)", back[0], p.color, there[0])
					}
				})
			}
		}
	}
}

func TestConvert_IdentityCopies(t *testing.T) {
	in := []Color{{0.1, 0.2, 0.3}, {-0.5, 2.5, 7}, {1, 1, 1}}
	for _, s := range Spaces() {
		t.Run(s.String(), func(t *testing.T) {
			out, err := Convert(in, s, s)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("identity conversion changed values (-in +out):\n%s", diff)
			}
			out[0][0] = 42
			if in[0][0] == 42 {
				t.Error("identity conversion aliases its input")
			}
		})
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	out, err := Convert(nil, SRGB, ACEScg)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d pixels, want 0", len(out))
	}
}

func TestConvert_InvalidSpace(t *testing.T) {
	tests := []struct {
		name     string
		from, to Space
	}{
		{"zero source", 0, ACEScg},
		{"zero target", SRGB, 0},
		{"unknown source", Space(200), SRGB},
		{"unknown identity", Space(99), Space(99)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert([]Color{{0.5, 0.5, 0.5}}, tt.from, tt.to)
			if !errors.Is(err, ErrInvalidColorSpace) {
				t.Errorf("got error %v, want ErrInvalidColorSpace", err)
			}
		})
	}
}

func TestConvert_NoClamping(t *testing.T) {
	hdr := []Color{{4, 8, 16}, {-0.25, 0.5, 1.5}}
	lin, err := Convert(hdr, ACEScg, LinearSRGB)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	back, err := Convert(lin, LinearSRGB, ACEScg)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	opt := cmpopts.EquateApprox(0, 1e-4)
	if diff := cmp.Diff(hdr, back, opt); diff != "" {
		t.Errorf("out-of-range values did not survive (-want +got):\n%s", diff)
	}

	enc, err := Convert(hdr, ACEScg, SRGB)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if enc[0][2] <= 1 {
		t.Errorf("encoded HDR blue clamped: got %v", enc[0][2])
	}
}

func TestConvert_Deterministic(t *testing.T) {
	in := make([]Color, 4096)
	for i := range in {
		f := float32(i) / float32(len(in))
		in[i] = Color{f, 1 - f, f * f}
	}
	first, err := Convert(in, SRGB, Oklab)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	for run := 0; run < 3; run++ {
		again, _ := Convert(in, SRGB, Oklab)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs:\n%s", run, diff)
		}
	}
	for i, c := range in {
		single, _ := ConvertColor(c, SRGB, Oklab)
		if single != first[i] {
			t.Fatalf("pixel %d: batch %v, single %v", i, first[i], single)
		}
	}
}

func TestConvert_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		in       Color
		from, to Space
		want     Color
		tol      float64
	}{
		{"sRGB white is working white", Color{1, 1, 1}, SRGB, ACEScg, Color{1, 1, 1}, 1e-4},
		{"sRGB mid decode", Color{0.5, 0.5, 0.5}, SRGB, LinearSRGB, Color{0.21404, 0.21404, 0.21404}, 1e-4},
		{"ProPhoto white is working white", Color{1, 1, 1}, ProPhoto, ACEScg, Color{1, 1, 1}, 1e-4},
		{"Oklab of white", Color{1, 1, 1}, LinearSRGB, Oklab, Color{1, 0, 0}, 1e-3},
		{"Lab of white", Color{1, 1, 1}, SRGB, CIELab, Color{1, 0, 0}, 1e-3},
		{"linear sRGB red in ACEScg", Color{1, 0, 0}, LinearSRGB, ACEScg, Color{0.6131, 0.0701, 0.0206}, 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertColor(tt.in, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ConvertColor failed: %v", err)
			}
			if !near(got, tt.want, tt.tol) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTransform_Cached(t *testing.T) {
	a, err := NewTransform(SRGB, Oklab)
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}
	b, _ := NewTransform(SRGB, Oklab)
	if a != b {
		t.Error("transform for the same pair was rebuilt")
	}
	if c, _ := NewTransform(Oklab, SRGB); c == a {
		t.Error("reverse pair shares a transform")
	}
}

func TestLuminance_WorkingWhite(t *testing.T) {
	if got := Luminance(Color{1, 1, 1}); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if got := Luminance(Color{}); got != 0 {
		t.Errorf("Luminance(black) = %v, want 0", got)
	}
}

func TestParseSpace(t *testing.T) {
	tests := []struct {
		in      string
		want    Space
		wantErr bool
	}{
		{"sRGB", SRGB, false},
		{" ACEScg ", ACEScg, false},
		{"linear-srgb", LinearSRGB, false},
		{"romm", ProPhoto, false},
		{"OKLAB", Oklab, false},
		{"lab", CIELab, false},
		{"aces2065-1", ACES2065, false},
		{"cmyk", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpace(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColorSpace) {
					t.Errorf("got error %v, want ErrInvalidColorSpace", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpace failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpace_Metadata(t *testing.T) {
	linear := map[Space]bool{LinearSRGB: true, Rec2020: true, ACEScg: true, ACES2065: true}
	for _, s := range Spaces() {
		if s.IsLinear() != linear[s] {
			t.Errorf("%v.IsLinear() = %v, want %v", s, s.IsLinear(), linear[s])
		}
		info, err := Lookup(s)
		if err != nil {
			t.Fatalf("Lookup(%v) failed: %v", s, err)
		}
		wantKind := KindRGB
		if s == Oklab || s == CIELab {
			wantKind = KindPerceptual
		}
		if info.Kind != wantKind {
			t.Errorf("%v kind = %v, want %v", s, info.Kind, wantKind)
		}
	}
	if Space(0).IsLinear() {
		t.Error("zero Space reported linear")
	}
	if got := Space(77).String(); got != "Space(77)" {
		t.Errorf("String of unknown space = %q", got)
	}
}

func TestColorArithmetic(t *testing.T) {
	a := Color{1, 2, 3}
	b := Color{0.5, 0.25, 2}
	if got := a.Add(b); got != (Color{1.5, 2.25, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Color{0.5, 1.75, 1}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(b); got != (Color{0.5, 0.5, 6}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != (Color{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 7 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Mean(); got != 2 {
		t.Errorf("Mean = %v", got)
	}
	if got := Gray(0.5); got != (Color{0.5, 0.5, 0.5}) {
		t.Errorf("Gray = %v", got)
	}
}
