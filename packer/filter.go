package packer

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/partition"
)

// Pool is a candidate pool: guess lettersets in ascending order, each with
// its partition key.
type Pool struct {
	Sets []letterset.LetterSet
	Keys []partition.Key
}

func (p Pool) Len() int {
	return len(p.Sets)
}

// Filter narrows the guesses to those disjoint from an answer. It keeps one
// posting list per letter (the guesses containing that letter); the pool for
// an answer is everything outside the union of its letters' postings.
type Filter struct {
	guesses  []letterset.LetterSet
	keys     []partition.Key
	postings [letterset.NumLetters]*bitset.BitSet
}

// NewFilter indexes guesses, which must be sorted and unique.
func NewFilter(guesses []letterset.LetterSet, keyer *partition.Keyer) *Filter {
	n := uint(len(guesses))
	f := &Filter{
		guesses: guesses,
		keys:    make([]partition.Key, len(guesses)),
	}
	for l := range f.postings {
		f.postings[l] = bitset.New(n)
	}
	for i, g := range guesses {
		f.keys[i] = keyer.Key(g)
		for _, l := range g.Letters() {
			f.postings[l].Set(uint(i))
		}
	}
	return f
}

func (f *Filter) compatible(answer letterset.LetterSet) *bitset.BitSet {
	excluded := bitset.New(uint(len(f.guesses)))
	for _, l := range answer.Letters() {
		excluded.InPlaceUnion(f.postings[l])
	}
	return excluded.Complement()
}

// Count is the size of the candidate pool for answer.
func (f *Filter) Count(answer letterset.LetterSet) int {
	return int(f.compatible(answer).Count())
}

// Candidates returns every guess g with g&answer == 0, in ascending order.
func (f *Filter) Candidates(answer letterset.LetterSet) Pool {
	bs := f.compatible(answer)
	pool := Pool{
		Sets: make([]letterset.LetterSet, 0, bs.Count()),
		Keys: make([]partition.Key, 0, bs.Count()),
	}
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		pool.Sets = append(pool.Sets, f.guesses[i])
		pool.Keys = append(pool.Keys, f.keys[i])
	}
	return pool
}
