// Package framehash compares per-frame perceptual hash tokens.
//
// Hashes are produced externally (one fixed-alphabet string per video frame)
// and are only ever compared for equality or by symbol distance. Distance
// counts mismatching positions over the shorter of the two inputs; trailing
// characters of a longer hash are ignored so that sequences produced by
// slightly different hashers still compare.
package framehash
