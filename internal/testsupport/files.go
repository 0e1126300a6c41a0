package testsupport

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"creditmarker/internal/episode"
)

const hashAlphabet = "0123456789abcdef"

// Frames returns n pseudo-random 16 symbol hashes. Distinct seeds produce
// sequences whose frames are far apart in hash distance.
func Frames(n int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	out := make([]string, n)
	buf := make([]byte, 16)
	for i := range out {
		for j := range buf {
			buf[j] = hashAlphabet[rng.Intn(len(hashAlphabet))]
		}
		out[i] = string(buf)
	}
	return out
}

// Concat joins frame sequences into a new slice.
func Concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// WriteEpisode saves ep as <dir>/<name> and returns the path.
func WriteEpisode(t testing.TB, dir, name string, ep episode.Episode) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := episode.Save(path, ep); err != nil {
		t.Fatalf("save episode %s: %v", path, err)
	}
	return path
}
