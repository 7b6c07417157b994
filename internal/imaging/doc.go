// Package imaging moves pictures between files and grading frames.
//
// It covers the outer edges of a grading run: decoding a file into an
// 8-bit image, ingesting that image into a frame in the working space,
// rendering a frame back into 8-bit samples in an output space, and
// encoding the result. Decoding and encoding go through
// github.com/disintegration/imaging, which also applies EXIF orientation;
// WebP decoding is registered from golang.org/x/image/webp.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Frames store pixels row-major, so pixel (x, y) is sample y*width+x.
//
// # Quantization
//
// Rendering clamps every component to [0,1], scales by 255 and rounds to the
// nearest integer. This is the only place values are clamped; frames and
// conversions keep out-of-range values untouched.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless
// and can run concurrently on different inputs.
//
// # Error Handling
//
// Decoding failures are reported as *LoadError, which matches ErrImageLoad
// with errors.Is; encoding failures as *SaveError matching ErrImageSave.
// Both keep the underlying cause reachable through Unwrap.
package imaging
