// Package partition derives a short key from the most frequent letters of a
// vocabulary. Two lettersets whose keys overlap share a letter, so key
// overlap is a sound (but incomplete) test for non-disjointness.
package partition

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/wordpack/letterset"
)

const (
	// DefaultSize is the number of letters in a partition.
	DefaultSize = 10
	// MaxSize is the most letters a Key can hold.
	MaxSize = 16
)

// Key has bit i set iff the letterset contains the i-th partition letter.
type Key uint16

func (k Key) Disjoint(other Key) bool {
	return k&other == 0
}

// Keyer maps lettersets to keys. It is immutable and safe to share.
type Keyer struct {
	letters []int
	// table[l] is the key bit for letter l, or 0 if l is not a partition
	// letter.
	table [letterset.NumLetters]Key
	mask  letterset.LetterSet
}

// FromLetters builds a Keyer from an explicit letter order, e.g.
// "seaoriltnu".
func FromLetters(letters string) (*Keyer, error) {
	if len(letters) == 0 || len(letters) > MaxSize {
		return nil, fmt.Errorf("partition must have between 1 and %d letters, got %d", MaxSize, len(letters))
	}
	idxs := make([]int, 0, len(letters))
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c < 'a' || c > 'z' {
			return nil, fmt.Errorf("invalid partition letter %q", c)
		}
		if slices.Contains(idxs, int(c-'a')) {
			return nil, fmt.Errorf("duplicate partition letter %q", c)
		}
		idxs = append(idxs, int(c-'a'))
	}
	return newKeyer(idxs), nil
}

// FromFrequency picks the size letters that occur in the most lettersets.
// Ties are broken alphabetically so that the partition is stable for a given
// vocabulary.
func FromFrequency(sets []letterset.LetterSet, size int) (*Keyer, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("partition size must be between 1 and %d, got %d", MaxSize, size)
	}
	freq := LetterFrequency(sets)
	order := lo.Range(letterset.NumLetters)
	slices.SortStableFunc(order, func(a, b int) int {
		return freq[b] - freq[a]
	})
	return newKeyer(order[:size]), nil
}

// LetterFrequency counts, per letter, how many lettersets contain it.
func LetterFrequency(sets []letterset.LetterSet) [letterset.NumLetters]int {
	var freq [letterset.NumLetters]int
	for _, ls := range sets {
		for m := uint32(ls); m != 0; m &= m - 1 {
			freq[bits.TrailingZeros32(m)]++
		}
	}
	return freq
}

func newKeyer(letters []int) *Keyer {
	k := &Keyer{letters: slices.Clone(letters)}
	for i, l := range letters {
		k.table[l] = 1 << i
		k.mask |= 1 << l
	}
	return k
}

// Key returns the partition key of ls.
func (k *Keyer) Key(ls letterset.LetterSet) Key {
	var key Key
	for m := uint32(ls & k.mask); m != 0; m &= m - 1 {
		key |= k.table[bits.TrailingZeros32(m)]
	}
	return key
}

// Size is the number of partition letters.
func (k *Keyer) Size() int {
	return len(k.letters)
}

// Mask is the letterset of all partition letters.
func (k *Keyer) Mask() letterset.LetterSet {
	return k.mask
}

// Letters returns the partition letters in key-bit order.
func (k *Keyer) Letters() string {
	var sb strings.Builder
	for _, l := range k.letters {
		sb.WriteByte(byte('a' + l))
	}
	return sb.String()
}

func (k *Keyer) String() string {
	return k.Letters()
}
