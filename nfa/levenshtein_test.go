package nfa

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/coregx/fuzzyfa/dfa"
)

func editDistance(a, b []uint16) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub++
			}
			cur[j] = min(sub, prev[j]+1, cur[j-1]+1)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func randomWord(r *rand.Rand, alphabet string, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[r.IntN(len(alphabet))])
	}
	return sb.String()
}

func TestLevenshteinCat(t *testing.T) {
	n := Levenshtein("cat", 1)
	d := n.DFA()

	tests := []struct {
		word string
		want bool
	}{
		{"cat", true},
		{"bat", true},
		{"ca", true},
		{"cats", true},
		{"at", true},
		{"caat", true},
		{"cut", true},
		{"act", false},
		{"dog", false},
		{"", false},
		{"c", false},
		{"catss", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := n.Test(tt.word); got != tt.want {
				t.Errorf("NFA Test(%q) = %v, want %v", tt.word, got, tt.want)
			}
			if got := d.Test(tt.word); got != tt.want {
				t.Errorf("DFA Test(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestLevenshteinBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		k       int
		accept  []string
		reject  []string
	}{
		{"exact", "abc", 0, []string{"abc"}, []string{"ab", "abd", "abcc", ""}},
		{"empty pattern", "", 2, []string{"", "a", "zz"}, []string{"abc"}},
		{"empty exact", "", 0, []string{""}, []string{"a"}},
		{"distance covers pattern", "ab", 2, []string{"", "x", "xy", "abab"}, []string{"xyz", "xxxxx"}},
		{"non-BMP", "a\U0001F600", 1, []string{"\U0001F600", "a\U0001F600", "ab\U0001F600"}, []string{"a", "b", "ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Levenshtein(tt.pattern, tt.k).DFA()
			for _, w := range tt.accept {
				if !d.Test(w) {
					t.Errorf("Test(%q) = false, want true", w)
				}
			}
			for _, w := range tt.reject {
				if d.Test(w) {
					t.Errorf("Test(%q) = true, want false", w)
				}
			}
		})
	}
}

func TestLevenshteinMatchesEditDistance(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const alphabet = "abcd"

	for iter := 0; iter < 200; iter++ {
		pattern := randomWord(r, "abc", r.IntN(6))
		k := r.IntN(4)
		n := Levenshtein(pattern, k)
		d := n.DFA()

		for j := 0; j < 50; j++ {
			word := randomWord(r, alphabet, r.IntN(len(pattern)+4))
			want := editDistance(dfa.Units(word), dfa.Units(pattern)) <= k
			if got := d.Test(word); got != want {
				t.Fatalf("DFA(%q, %d).Test(%q) = %v, want %v", pattern, k, word, got, want)
			}
			if got := n.Test(word); got != want {
				t.Fatalf("NFA(%q, %d).Test(%q) = %v, want %v", pattern, k, word, got, want)
			}
		}
	}
}

func TestLevenshteinDFAShape(t *testing.T) {
	d := Levenshtein("kitten", 2).DFA()
	for s := 0; s < d.Size(); s++ {
		state := dfa.StateID(s)
		for n := 1; n < d.Labels(state); n++ {
			if d.Label(state, n-1) >= d.Label(state, n) {
				t.Fatalf("state %d: labels not strictly ascending", s)
			}
		}
		for n := 0; n < d.Labels(state); n++ {
			if tgt := d.Target(state, n); tgt < 0 || int(tgt) >= d.Size() {
				t.Fatalf("state %d: edge %d targets %d", s, n, tgt)
			}
		}
	}
	if d.Labels(dfa.StartState) == 0 || d.Label(dfa.StartState, 0) != dfa.Any {
		t.Error("start state should have a wildcard edge first")
	}
}

func TestLevenshteinWithValue(t *testing.T) {
	d := Levenshtein("dog", 1, WithValue(7)).DFA()
	accepting := d.Accepting()
	if len(accepting) == 0 {
		t.Fatal("no accepting states")
	}
	for _, s := range accepting {
		if got := d.Values(s); len(got) != 1 || got[0] != 7 {
			t.Errorf("Values(%d) = %v, want [7]", s, got)
		}
	}
}

func TestLevenshteinPanics(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		k       int
	}{
		{"negative distance", "abc", -1},
		{"reserved unit", "a\x00b", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			Levenshtein(tt.pattern, tt.k)
		})
	}
}

func FuzzLevenshtein(f *testing.F) {
	f.Add("kitten", "sitting", uint8(2))
	f.Add("cat", "act", uint8(1))
	f.Add("", "a", uint8(0))
	f.Add("héllo", "hello", uint8(1))

	f.Fuzz(func(t *testing.T, pattern, word string, k uint8) {
		p, w := dfa.Units(pattern), dfa.Units(word)
		if len(p) > 8 || len(w) > 12 {
			t.Skip()
		}
		for _, u := range p {
			if u == 0 {
				t.Skip()
			}
		}
		distance := int(k % 4)

		want := editDistance(w, p) <= distance
		if got := LevenshteinUnits(p, distance).DFA().Test(word); got != want {
			t.Errorf("DFA(%q, %d).Test(%q) = %v, want %v", pattern, distance, word, got, want)
		}
	})
}
