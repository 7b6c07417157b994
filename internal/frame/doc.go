// Package frame holds the pixel buffer every grading stage operates on.
//
// A Frame is a dense, row-major grid of colorspace.Color values tagged with
// the space they currently represent. The tag and the values only ever
// change together: through ConvertTo (which returns a new Frame), Assign, or
// Within. Construction always converts the source samples into the fixed
// working space, so a Frame handed to a stage is calibrated for stage math.
//
// # Parallel Iteration
//
// ForEach exposes every pixel exactly once as a mutable slot. The buffer is
// split into disjoint ranges handled by separate goroutines, so no locking is
// needed, and no visitation order is defined. Callbacks must not read or
// write any pixel other than the one they were handed.
//
// # Thread Safety
//
// A Frame must have exactly one mutator at a time. Distinct frames can be
// processed concurrently.
package frame
