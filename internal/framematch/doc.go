// Package framematch aligns a base episode's frame hashes against a
// comparison episode and scores how much of every base second reappears.
//
// The Matcher is a per-run state machine driven one base frame at a time:
// it seeks an exact hash inside a window proportional to the comparison
// length, narrows to a small band around the previous hit once locked, and
// falls back to a bounded symbol-distance probe after a miss. Each frame
// produces an Event; the Aggregator folds the counted events into integer
// per-second percentages.
//
// Align wires both together for whole sequences. Observers receive every
// Event read-only, which is how progress reporting and the frame log are
// attached without influencing the result.
package framematch
