// Package stage implements the grading stages a pipeline is assembled from.
//
// Every stage is an immutable configuration built by a validating
// constructor, plus a per-pixel function applied through frame.ForEach. No
// stage reads any pixel other than the one it is writing, so every stage is
// safe to run across any number of workers and produces identical output
// regardless of the worker count.
//
// Stages that need a perceptual space for their math (the Oklab richness
// stages and LightnessCurve) go through frame.Within, which leaves the frame
// tagged with the space it arrived in.
//
// # Catalog
//
//   - Exposure: linear gain of 2^stops.
//   - ToneCurve / LightnessCurve: pivoted power curve with an automatic
//     highlight rolloff, per channel or on Oklab lightness.
//   - FilmShoulder: lifted blacks and compressed highlights.
//   - ColorRichness: midtone-protected Oklab chroma boost.
//   - SelectiveRichness: Oklab chroma boost chosen by one of seven hue bands.
//   - DensityRichness: channel separation with a density blend, luminance
//     restored exactly.
//   - SplitTone: HSL-derived tints added to shadows and highlights.
//   - BandSaturation: saturation multiplier blended across luminance bands.
//   - FilmBlacks: linear remap of the toe.
//   - ColorGrade: three-way additive offsets.
//
// # Numeric Edge Cases
//
// Denominators that can reach zero are floored at a small epsilon and hue is
// not evaluated for near-neutral pixels. Stages never fail on pixel values;
// Process only returns errors from space conversion.
package stage
