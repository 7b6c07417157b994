package imaging

import (
	"errors"
	"fmt"
)

var (
	// ErrImageLoad matches every *LoadError.
	ErrImageLoad = errors.New("imaging: image load failed")

	// ErrImageSave matches every *SaveError.
	ErrImageSave = errors.New("imaging: image save failed")
)

// LoadError reports a file that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrImageLoad }

// SaveError reports a frame that could not be encoded or written.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to save image: %v", e.Err)
	}
	return fmt.Sprintf("failed to save image %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

func (e *SaveError) Is(target error) bool { return target == ErrImageSave }
