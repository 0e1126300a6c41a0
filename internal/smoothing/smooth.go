package smoothing

import (
	"gonum.org/v1/gonum/floats"
)

// Ints converts integer scores to float64 for smoothing.
func Ints(scores []int) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = float64(s)
	}
	return out
}

// Smooth convolves scores with a uniform kernel of length window. The result
// has len(scores)+window-1 samples. A window of 1 or less returns a copy of
// scores.
func Smooth(scores []float64, window int) []float64 {
	if window <= 1 || len(scores) == 0 {
		return clone(scores)
	}
	n := len(scores)
	out := make([]float64, n+window-1)
	for k := range out {
		lo := max(0, k-window+1)
		hi := min(k, n-1)
		out[k] = floats.Sum(scores[lo : hi+1])
	}
	floats.Scale(1/float64(window), out)
	return out
}

// SmoothSame returns the centred part of Smooth, the same length as scores.
func SmoothSame(scores []float64, window int) []float64 {
	if window <= 1 || len(scores) == 0 {
		return clone(scores)
	}
	full := Smooth(scores, window)
	offset := (window - 1) / 2
	return clone(full[offset : offset+len(scores)])
}

// SmoothTrailing returns the lagging moving average: sample i averages
// scores[i-window+1..i] with missing leading samples counted as zero.
func SmoothTrailing(scores []float64, window int) []float64 {
	if window <= 1 || len(scores) == 0 {
		return clone(scores)
	}
	full := Smooth(scores, window)
	return clone(full[:len(scores)])
}

func clone(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	return out
}
