package packer

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/partition"
)

// Buckets groups triples by partition key.
type Buckets struct {
	keys    []partition.Key
	triples map[partition.Key][]Triple
}

// Bucket groups triples by their Key. Keys are visited in ascending order so
// joins are deterministic.
func Bucket(triples []Triple) Buckets {
	grouped := lo.GroupBy(triples, func(t Triple) partition.Key { return t.Key })
	keys := lo.Keys(grouped)
	slices.Sort(keys)
	return Buckets{keys: keys, triples: grouped}
}

func (b Buckets) Len() int {
	return len(b.keys)
}

// JoinStats counts the work done by a join.
type JoinStats struct {
	BucketPairs        int64
	SkippedBucketPairs int64
	Comparisons        int64
	Packings           int
}

// JoinTriples combines disjoint triples into packings for answer.
//
// Two triples can only be disjoint if their keys are, so only bucket pairs
// with disjoint keys are compared triple by triple; a bucket is paired with
// itself only when its key is 0. Each six-set is emitted exactly once, as
// (t1, t2) with every letterset of t1 below every letterset of t2: its three
// smallest members and its three largest. The emitted guesses are therefore
// already in ascending order.
func JoinTriples(answer letterset.LetterSet, b Buckets, emit func(Packing)) JoinStats {
	var st JoinStats
	try := func(t1, t2 Triple) {
		st.Comparisons++
		if !t1.Disjoint(t2) {
			return
		}
		switch {
		case t1.G[2] < t2.G[0]:
		case t2.G[2] < t1.G[0]:
			t1, t2 = t2, t1
		default:
			// interleaved; the canonical split of these six comes from
			// another pair of triples
			return
		}
		st.Packings++
		emit(Packing{
			Answer:  answer,
			Guesses: [6]letterset.LetterSet{t1.G[0], t1.G[1], t1.G[2], t2.G[0], t2.G[1], t2.G[2]},
		})
	}

	for i, k1 := range b.keys {
		b1 := b.triples[k1]
		if k1 == 0 {
			st.BucketPairs++
			for x := range b1 {
				for y := x + 1; y < len(b1); y++ {
					try(b1[x], b1[y])
				}
			}
		}
		for _, k2 := range b.keys[i+1:] {
			if !k1.Disjoint(k2) {
				st.SkippedBucketPairs++
				continue
			}
			st.BucketPairs++
			for _, t1 := range b1 {
				for _, t2 := range b.triples[k2] {
					try(t1, t2)
				}
			}
		}
	}
	return st
}
