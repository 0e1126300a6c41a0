package framehash

import (
	"fmt"
	"strings"
)

// Distance returns the number of positions at which a and b differ.
// Only the first min(len(a), len(b)) bytes are compared.
func Distance(a, b string) int {
	n := min(len(a), len(b))
	diff := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff
}

// Diff renders b with every position that differs from a passed through
// mark, and returns the rendered string together with Distance(a, b).
// A nil mark wraps differing characters in brackets.
func Diff(a, b string, mark func(string) string) (string, int) {
	if mark == nil {
		mark = func(s string) string { return "[" + s + "]" }
	}
	n := min(len(a), len(b))
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	diff := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			sb.WriteByte(b[i])
			continue
		}
		sb.WriteString(mark(b[i : i+1]))
		diff++
	}
	return sb.String(), diff
}

// LengthMismatch describes a frame whose hash length differs from the
// first frame of the sequence.
type LengthMismatch struct {
	Frame int
	Want  int
	Got   int
}

// Validate reports frames whose hash length differs from the first frame.
// The comparison core tolerates such frames; callers use the result to warn.
func Validate(frames []string) ([]LengthMismatch, error) {
	if len(frames) == 0 {
		return nil, nil
	}
	want := len(frames[0])
	var out []LengthMismatch
	for i, f := range frames {
		if len(f) != want {
			out = append(out, LengthMismatch{Frame: i, Want: want, Got: len(f)})
		}
	}
	if len(out) > 0 {
		return out, fmt.Errorf("%d of %d frame hashes differ from expected length %d", len(out), len(frames), want)
	}
	return nil, nil
}
