// Package blocks segments per-second match scores into contiguous matched
// and unmatched blocks.
//
// A second passes when its score exceeds the pass criterion. The segmenter
// keeps a baseline classification for the open block and only closes it
// after more than MinDuration consecutive disagreeing seconds that follow
// at least MinDuration agreeing ones. Shorter disagreement is noise; a long
// disagreement without enough agreement before it flips the baseline in
// place instead of opening a new block.
package blocks
