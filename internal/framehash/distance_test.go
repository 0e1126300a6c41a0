package framehash

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "identical", a: "ffe0c0c0e0f0f8fc", b: "ffe0c0c0e0f0f8fc", want: 0},
		{name: "one symbol", a: "ffe0c0c0e0f0f8fc", b: "ffe0c0c0e0f0f8fd", want: 1},
		{name: "all symbols", a: "aaaa", b: "bbbb", want: 4},
		{name: "empty", a: "", b: "", want: 0},
		{name: "longer right truncated", a: "abc", b: "abcxyz", want: 0},
		{name: "longer left truncated", a: "abzxyz", b: "abc", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Fatalf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceIdentityAndSymmetry(t *testing.T) {
	hashes := []string{"0000000000000000", "ffffffffffffffff", "0f0f0f0f0f0f0f0f", "1234567890abcdef", "fedcba0987654321"}
	for _, a := range hashes {
		if d := Distance(a, a); d != 0 {
			t.Fatalf("Distance(%q, %q) = %d, want 0", a, a, d)
		}
		for _, b := range hashes {
			if Distance(a, b) != Distance(b, a) {
				t.Fatalf("Distance not symmetric for %q / %q", a, b)
			}
		}
	}
}

func TestDiffMarksDifferences(t *testing.T) {
	out, n := Diff("abcd", "abxd", nil)
	if n != 1 {
		t.Fatalf("expected distance 1, got %d", n)
	}
	if out != "ab[x]d" {
		t.Fatalf("unexpected diff rendering %q", out)
	}

	out, n = Diff("abcd", "wxyz", func(s string) string { return "<" + s + ">" })
	if n != 4 || out != "<w><x><y><z>" {
		t.Fatalf("unexpected diff %q (%d)", out, n)
	}
}

func TestValidate(t *testing.T) {
	if mismatches, err := Validate([]string{"aaaa", "bbbb"}); err != nil || len(mismatches) != 0 {
		t.Fatalf("expected consistent frames, got %v %v", mismatches, err)
	}
	mismatches, err := Validate([]string{"aaaa", "bbb", "cccc", "ddddd"})
	if err == nil {
		t.Fatal("expected error for inconsistent lengths")
	}
	if len(mismatches) != 2 || mismatches[0].Frame != 1 || mismatches[1].Got != 5 {
		t.Fatalf("unexpected mismatches: %+v", mismatches)
	}
	if mismatches, err := Validate(nil); err != nil || mismatches != nil {
		t.Fatalf("expected nil for empty input")
	}
}
