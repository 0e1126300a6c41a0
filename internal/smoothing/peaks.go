package smoothing

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Signal marks a sample that departs from the lagging baseline.
type Signal int

const (
	SignalNone Signal = 0
	SignalUp   Signal = 1
	SignalDown Signal = -1
)

// PeakParams configures Peaks.
type PeakParams struct {
	Lag       int     // samples in the moving baseline
	Threshold float64 // z-score needed to signal
	Influence float64 // weight of a signalled sample in the baseline, 0..1
}

// DefaultPeakParams suits per-second match scores.
func DefaultPeakParams() PeakParams {
	return PeakParams{Lag: 10, Threshold: 3, Influence: 0.2}
}

// Peaks runs a lagged z-score detector over scores. Samples before the first
// full lag window are never signalled. Signalled samples enter the baseline
// damped by Influence so a sustained shift is eventually absorbed.
func Peaks(scores []float64, p PeakParams) []Signal {
	signals := make([]Signal, len(scores))
	if p.Lag <= 0 || len(scores) <= p.Lag {
		return signals
	}
	influence := math.Min(math.Max(p.Influence, 0), 1)

	filtered := clone(scores)
	mean, std := stat.PopMeanStdDev(filtered[:p.Lag], nil)
	for i := p.Lag; i < len(scores); i++ {
		if math.Abs(scores[i]-mean) > p.Threshold*std {
			if scores[i] > mean {
				signals[i] = SignalUp
			} else {
				signals[i] = SignalDown
			}
			filtered[i] = influence*scores[i] + (1-influence)*filtered[i-1]
		}
		mean, std = stat.PopMeanStdDev(filtered[i-p.Lag+1:i+1], nil)
	}
	return signals
}
