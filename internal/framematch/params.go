package framematch

import (
	"errors"
	"fmt"
)

// ErrInvalidParams marks configuration rejected at construction time.
var ErrInvalidParams = errors.New("framematch: invalid params")

// Params holds the matcher tunables. A zero value is not usable; start from
// DefaultParams.
type Params struct {
	// FPS is the number of base frames folded into one scored second.
	FPS int `json:"fps"`
	// SeekFactor divides the comparison length to get the seek half-width.
	SeekFactor int `json:"seek_factor"`
	// LockRadius is the half-width of the band searched around the last hit.
	LockRadius int `json:"lock_radius"`
	// PartMatchLimit caps consecutive fuzzy probes after a miss.
	PartMatchLimit int `json:"part_match_limit"`
	// PartMatchLow is the exclusive distance ceiling for an almost-match.
	PartMatchLow int `json:"part_match_low"`
	// PartMatchHigh bounds the ambiguous distance band above PartMatchLow.
	// The matcher treats every distance >= PartMatchLow alike, so this value
	// is only validated and recorded in the cache key.
	PartMatchHigh int `json:"part_match_high"`
	// AllowReuse lets one comparison frame satisfy several base frames.
	AllowReuse bool `json:"allow_reuse"`
}

// DefaultParams returns the tunables used for 25 fps broadcast material.
func DefaultParams() Params {
	return Params{
		FPS:            25,
		SeekFactor:     6,
		LockRadius:     2,
		PartMatchLimit: 25,
		PartMatchLow:   5,
		PartMatchHigh:  9,
	}
}

// Validate rejects values that would divide by zero or invert the fuzzy
// thresholds.
func (p Params) Validate() error {
	switch {
	case p.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidParams, p.FPS)
	case p.SeekFactor <= 0:
		return fmt.Errorf("%w: seek_factor must be positive, got %d", ErrInvalidParams, p.SeekFactor)
	case p.LockRadius < 0:
		return fmt.Errorf("%w: lock_radius must not be negative, got %d", ErrInvalidParams, p.LockRadius)
	case p.PartMatchLimit < 0:
		return fmt.Errorf("%w: part_match_limit must not be negative, got %d", ErrInvalidParams, p.PartMatchLimit)
	case p.PartMatchLow < 0:
		return fmt.Errorf("%w: part_match_low must not be negative, got %d", ErrInvalidParams, p.PartMatchLow)
	case p.PartMatchHigh < p.PartMatchLow:
		return fmt.Errorf("%w: part_match_high (%d) must be >= part_match_low (%d)", ErrInvalidParams, p.PartMatchHigh, p.PartMatchLow)
	}
	return nil
}
