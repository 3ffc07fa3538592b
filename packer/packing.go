package packer

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash"

	"github.com/domino14/wordpack/letterset"
)

// Packing is a letterset-level solution: an answer and six guesses, all
// seven pairwise disjoint. Guesses are in ascending order, so two packings
// are equal iff they hold the same lettersets.
type Packing struct {
	Answer  letterset.LetterSet    `json:"answer" yaml:"answer"`
	Guesses [6]letterset.LetterSet `json:"guesses" yaml:"guesses,flow"`
}

// Sets returns the answer followed by the guesses.
func (p Packing) Sets() [7]letterset.LetterSet {
	return [7]letterset.LetterSet{p.Answer,
		p.Guesses[0], p.Guesses[1], p.Guesses[2], p.Guesses[3], p.Guesses[4], p.Guesses[5]}
}

// Valid checks the packing invariants: pairwise disjoint, no empty sets and
// strictly ascending guesses.
func (p Packing) Valid() error {
	sets := p.Sets()
	for i := range sets {
		if sets[i] == 0 {
			return fmt.Errorf("packing %v has an empty letterset", p)
		}
		for j := i + 1; j < len(sets); j++ {
			if !sets[i].Disjoint(sets[j]) {
				return fmt.Errorf("packing %v: %v and %v share letters", p, sets[i], sets[j])
			}
		}
	}
	for i := 1; i < len(p.Guesses); i++ {
		if p.Guesses[i-1] >= p.Guesses[i] {
			return fmt.Errorf("packing %v: guesses out of order", p)
		}
	}
	return nil
}

func (p Packing) String() string {
	return fmt.Sprintf("%v %v", p.Answer, p.Guesses)
}

// Compare orders packings by answer, then guesses.
func Compare(a, b Packing) int {
	if c := cmp.Compare(a.Answer, b.Answer); c != 0 {
		return c
	}
	for i := range a.Guesses {
		if c := cmp.Compare(a.Guesses[i], b.Guesses[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Sort puts packings in canonical order.
func Sort(packings []Packing) {
	slices.SortFunc(packings, Compare)
}

// Fingerprint hashes a set of packings independently of their order. Equal
// sets have equal fingerprints.
func Fingerprint(packings []Packing) uint64 {
	sorted := slices.Clone(packings)
	Sort(sorted)
	h := xxhash.New()
	var buf [7 * 4]byte
	for _, p := range sorted {
		for i, ls := range p.Sets() {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(ls))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}
