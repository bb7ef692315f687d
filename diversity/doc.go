// Package diversity implements the AILS loop's diversity-controlled
// acceptance machinery from spec.md §4.5: a decaying ideal edge-distance
// target d*, a per-perturbation-operator omega controller that tracks that
// target via exponential smoothing, and an exponentially decaying
// acceptance threshold eta.
//
// All decay is driven by elapsed normalized time tau in [0,1], correcting
// the source's documented bug of decaying against an estimated total
// iteration count instead (spec.md §9, "the acceptance/time-adjustment bug
// ... is explicitly corrected here to tau-based decay").
package diversity
