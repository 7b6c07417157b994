package imaging

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 92

// LoadFrame ingests img as 8-bit samples encoded in src and returns a frame
// in the working space. Alpha is discarded; pixels are read un-premultiplied.
func LoadFrame(img image.Image, src colorspace.Space, opts ...frame.Option) (*frame.Frame, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	pix := make([]uint8, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}
	return frame.FromRGB8(pix, w, h, src, opts...)
}

// Load decodes the file at path and ingests it. Decode failures are returned
// as *LoadError; no partial frame is ever returned.
func Load(path string, src colorspace.Space, opts ...frame.Option) (*frame.Frame, error) {
	img, err := open(path)
	if err != nil {
		return nil, err
	}
	f, err := LoadFrame(img, src, opts...)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return f, nil
}

// Quantize clamps each component to [0,1] and maps it to 0..255 with
// rounding. NaN becomes 0. The result holds three bytes per pixel.
func Quantize(pixels []colorspace.Color) []uint8 {
	out := make([]uint8, len(pixels)*3)
	for i, c := range pixels {
		for ch, v := range c {
			out[i*3+ch] = quantize(v)
		}
	}
	return out
}

func quantize(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

// Render converts f to space and returns an opaque 8-bit image.
func Render(f *frame.Frame, space colorspace.Space) (*image.NRGBA, error) {
	pixels, err := f.Export(space)
	if err != nil {
		return nil, err
	}
	samples := Quantize(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	for i, j := 0, 0; i < len(samples); i, j = i+3, j+4 {
		img.Pix[j] = samples[i]
		img.Pix[j+1] = samples[i+1]
		img.Pix[j+2] = samples[i+2]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}

// Save renders f in space and writes it to path. The format follows the file
// extension; quality applies to JPEG output and falls back to DefaultQuality
// outside 1..100. Failures are returned as *SaveError.
func Save(f *frame.Frame, path string, space colorspace.Space, quality int) error {
	img, err := Render(f, space)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(clampQuality(quality))); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

// Encode renders f in space and writes it to w in the given format
// ("jpeg", "png", "gif", "tiff" or "bmp").
func Encode(w io.Writer, f *frame.Frame, format string, space colorspace.Space, quality int) error {
	fmtID, err := imaging.FormatFromExtension(format)
	if err != nil {
		return &SaveError{Err: err}
	}
	img, err := Render(f, space)
	if err != nil {
		return &SaveError{Err: err}
	}
	if err := imaging.Encode(w, img, fmtID, imaging.JPEGQuality(clampQuality(quality))); err != nil {
		return &SaveError{Err: fmt.Errorf("encode: %w", err)}
	}
	return nil
}

func clampQuality(q int) int {
	if q < 1 || q > 100 {
		return DefaultQuality
	}
	return q
}

// Fit downscales img so neither side exceeds maxSize, keeping the aspect
// ratio. Images already small enough, or maxSize <= 0, are returned as is.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
}
