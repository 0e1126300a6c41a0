// Package smoothing applies moving-average filters to per-second match
// scores.
//
// Smooth is a full discrete convolution with a uniform kernel, so its output
// is window-1 samples longer than the input and the edges average over a
// zero-padded partial overlap. SmoothSame and SmoothTrailing return input
// length series aligned to the window centre and to its trailing edge.
// Peaks flags seconds that break away from a lagging mean, which is useful
// for spotting abrupt transitions before block segmentation.
package smoothing
