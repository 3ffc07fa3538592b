// Package testhelpers has synthetic vocabularies and brute-force oracles for
// checking the packer on inputs small enough to enumerate exhaustively.
package testhelpers

import (
	"slices"

	"gonum.org/v1/gonum/stat/combin"
	"lukechampine.com/frand"

	"github.com/domino14/wordpack/letterset"
)

// RandomWords returns n random words of the given length drawn from
// alphabet. Letters may repeat within a word and words may repeat.
func RandomWords(n, length int, alphabet string) []string {
	words := make([]string, n)
	buf := make([]byte, length)
	for i := range words {
		for j := range buf {
			buf[j] = alphabet[frand.Intn(len(alphabet))]
		}
		words[i] = string(buf)
	}
	return words
}

// RandomLettersets is RandomWords mapped to lettersets.
func RandomLettersets(n, length int, alphabet string) []letterset.LetterSet {
	words := RandomWords(n, length, alphabet)
	out := make([]letterset.LetterSet, n)
	for i, w := range words {
		out[i] = letterset.FromWord(w)
	}
	return out
}

// Unique sorts and deduplicates lettersets.
func Unique(sets []letterset.LetterSet) []letterset.LetterSet {
	out := slices.Clone(sets)
	slices.Sort(out)
	return slices.Compact(out)
}

// PairwiseDisjoint reports whether no two lettersets share a letter.
func PairwiseDisjoint(sets ...letterset.LetterSet) bool {
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			if !sets[i].Disjoint(sets[j]) {
				return false
			}
		}
	}
	return true
}

// BruteForceTriples returns every ascending 3-combination of pool whose
// members are pairwise disjoint. pool must be sorted and unique.
func BruteForceTriples(pool []letterset.LetterSet) [][3]letterset.LetterSet {
	out := [][3]letterset.LetterSet{}
	if len(pool) < 3 {
		return out
	}
	for _, c := range combin.Combinations(len(pool), 3) {
		t := [3]letterset.LetterSet{pool[c[0]], pool[c[1]], pool[c[2]]}
		if PairwiseDisjoint(t[:]...) {
			out = append(out, t)
		}
	}
	return out
}

// BruteForceHextuples returns, for one answer, every ascending 6-combination
// of guesses that is pairwise disjoint and disjoint from the answer. guesses
// must be sorted and unique.
func BruteForceHextuples(answer letterset.LetterSet, guesses []letterset.LetterSet) [][6]letterset.LetterSet {
	pool := []letterset.LetterSet{}
	for _, g := range guesses {
		if g.Disjoint(answer) {
			pool = append(pool, g)
		}
	}
	out := [][6]letterset.LetterSet{}
	if len(pool) < 6 {
		return out
	}
	gen := combin.NewCombinationGenerator(len(pool), 6)
	c := make([]int, 6)
	for gen.Next() {
		gen.Combination(c)
		var h [6]letterset.LetterSet
		for i, ci := range c {
			h[i] = pool[ci]
		}
		if PairwiseDisjoint(h[:]...) {
			out = append(out, h)
		}
	}
	return out
}
