package packer

import (
	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/partition"
)

// Triple is three pairwise-disjoint guess lettersets in ascending order,
// with their union and the union of their partition keys.
type Triple struct {
	G    [3]letterset.LetterSet
	Mask letterset.LetterSet
	Key  partition.Key
}

// Disjoint reports whether two triples share no letters.
func (t Triple) Disjoint(other Triple) bool {
	return t.Mask.Disjoint(other.Mask)
}

// EnumerateTriples returns every combination g1 < g2 < g3 from the pool
// whose members are pairwise disjoint, each exactly once, in lexicographic
// order of pool positions.
//
// The search is depth first with the running mask. Once g1 is fixed, the
// candidates that clash with it are dropped before descending, so the third
// level only ever scans lettersets already known to be disjoint from g1.
func EnumerateTriples(pool Pool) []Triple {
	sets, keys := pool.Sets, pool.Keys
	triples := []Triple{}
	// positions after i that are disjoint from sets[i]
	rest := make([]int, 0, len(sets))
	for i := range sets {
		m1, k1 := sets[i], keys[i]
		rest = rest[:0]
		for j := i + 1; j < len(sets); j++ {
			if m1.Disjoint(sets[j]) {
				rest = append(rest, j)
			}
		}
		for x, j := range rest {
			m2, k2 := m1|sets[j], k1|keys[j]
			for _, l := range rest[x+1:] {
				if !m2.Disjoint(sets[l]) {
					continue
				}
				triples = append(triples, Triple{
					G:    [3]letterset.LetterSet{sets[i], sets[j], sets[l]},
					Mask: m2 | sets[l],
					Key:  k2 | keys[l],
				})
			}
		}
	}
	return triples
}
