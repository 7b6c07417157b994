package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/frame"
)

// PreviewResult is an inline PNG rendering of a frame.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview renders f in space, downscales it to fit maxSize (0 keeps the full
// size) and returns it as base64 PNG.
func Preview(f *frame.Frame, space colorspace.Space, maxSize int) (*PreviewResult, error) {
	img, err := Render(f, space)
	if err != nil {
		return nil, err
	}
	fitted := Fit(img, maxSize)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	b := fitted.Bounds()
	return &PreviewResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
