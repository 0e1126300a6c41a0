// Package comparison runs the full frame-by-frame comparison of two episodes:
// alignment, per-second scoring, smoothing and block segmentation.
//
// Service is the single entry point used by the CLI. It is safe for
// concurrent use; each Compare call owns its matcher state.
package comparison
