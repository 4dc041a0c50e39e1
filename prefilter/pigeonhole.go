package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// Pigeonhole is a prefilter for approximate matching against a set of
// patterns.
//
// Every pattern is cut into distance+1 contiguous pieces. A word within
// distance edits of a pattern contains at least one of its pieces verbatim,
// because a single insertion, deletion or substitution damages at most one
// piece. All pieces of all patterns go into one Aho-Corasick automaton, so a
// single scan of the word rejects it when no piece occurs.
//
// Pieces and words are compared as big-endian UTF-16 bytes. A piece may be
// found at an odd byte offset, which only produces false candidates, never
// false rejections.
//
// A Pigeonhole is safe for concurrent use.
type Pigeonhole struct {
	ac     *ahocorasick.Automaton
	pieces int
}

// NewPigeonhole builds the prefilter. It returns ErrShortPattern if a
// pattern has fewer than distance+1 code units.
func NewPigeonhole(patterns [][]uint16, distance int) (*Pigeonhole, error) {
	builder := ahocorasick.NewBuilder()
	seen := make(map[string]struct{})
	for _, p := range patterns {
		if len(p) < distance+1 {
			return nil, ErrShortPattern
		}
		for _, piece := range Pieces(p, distance+1) {
			b := encode(piece)
			if _, dup := seen[string(b)]; dup {
				continue
			}
			seen[string(b)] = struct{}{}
			builder.AddPattern(b)
		}
	}

	if len(seen) == 0 {
		return &Pigeonhole{}, nil
	}
	ac, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Pigeonhole{ac: ac, pieces: len(seen)}, nil
}

// Candidate reports whether word contains any piece.
func (p *Pigeonhole) Candidate(word []uint16) bool {
	if p.pieces == 0 {
		return false
	}
	return p.ac.IsMatch(encode(word))
}

// Pieces returns the number of distinct pieces searched for.
func (p *Pigeonhole) Pieces() int {
	return p.pieces
}

// Pieces cuts units into n contiguous, non-empty pieces of near-equal
// length. It requires len(units) >= n > 0.
func Pieces(units []uint16, n int) [][]uint16 {
	pieces := make([][]uint16, n)
	for j := 0; j < n; j++ {
		pieces[j] = units[j*len(units)/n : (j+1)*len(units)/n]
	}
	return pieces
}

func encode(units []uint16) []byte {
	b := make([]byte, 2*len(units))
	for i, u := range units {
		b[2*i] = byte(u >> 8)
		b[2*i+1] = byte(u)
	}
	return b
}
