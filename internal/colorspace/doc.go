// Package colorspace converts tri-stimulus color values between named color
// spaces using exact matrix and transfer-function math.
//
// Every RGB space is described by its primaries and white point. Matrices to
// and from the CIE XYZ reference (D65) are derived once per process, with a
// Bradford chromatic adaptation applied when the native white is not D65.
// Perceptual spaces (Oklab, CIELab) are reached from XYZ through their own
// nonlinear transforms.
//
// # Numeric Contract
//
// Pixel values are stored and transformed as float32. Matrices are derived in
// float64 and rounded once. Conversion never clamps: out-of-gamut and HDR
// values pass through unmodified, so clamping is left to the export boundary.
//
// # Thread Safety
//
// The space table and compiled transforms are immutable once built and safe
// for concurrent use. Transform.Apply has no cross-pixel state, which is what
// lets Convert fan the work out across goroutines without synchronization.
//
// # Working Space
//
// All grading math is calibrated against ACEScg (AP1 primaries, ACES white).
// Luminance in that space uses the weights exposed by Luminance.
package colorspace
