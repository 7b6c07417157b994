// Package pipeline runs an ordered list of grading stages over a frame.
//
// A Pipeline is immutable once built: New copies the stage list and nothing
// mutates it afterwards, so one pipeline may process any number of frames
// from any number of goroutines as long as each frame has a single caller.
//
// Stages run strictly in order. Each stage finishes its whole frame before
// the next begins, which is the only synchronization the stages rely on.
// Cancellation is observed between stages, never inside one.
//
// # Building
//
// Builder offers a chained API over the stage constructors:
//
//	p, err := pipeline.NewBuilder().
//		Exposure(0.5).
//		Richness(0.3).
//		FilmColors().
//		Contrast(1.2, 0.6).
//		Build()
//
// The first invalid parameter is remembered and returned by Build; later
// calls are ignored.
//
// # Logging
//
// The package is silent by default. SetLogger installs a *slog.Logger that
// receives a debug record per stage with its elapsed time.
package pipeline
