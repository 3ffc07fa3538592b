package letterset

import (
	"fmt"
	"math/bits"
	"strings"
)

// NumLetters is the size of the alphabet a LetterSet can represent.
const NumLetters = 26

// Full has every letter of the alphabet set.
const Full = LetterSet(1<<NumLetters - 1)

// LetterSet is a bit mask of the distinct letters in a word. Bit i is set
// iff the letter 'a'+i occurs at least once. Anagrams, and words that only
// differ in repeated letters, share a LetterSet.
type LetterSet uint32

// FromWord returns the LetterSet of a lower-case a-z word. Bytes outside
// a-z are ignored; callers are expected to validate words first.
func FromWord(word string) LetterSet {
	var ls LetterSet
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			continue
		}
		ls |= 1 << (c - 'a')
	}
	return ls
}

// Disjoint reports whether the two sets share no letters.
func (ls LetterSet) Disjoint(other LetterSet) bool {
	return ls&other == 0
}

func (ls LetterSet) Union(other LetterSet) LetterSet {
	return ls | other
}

func (ls LetterSet) Intersection(other LetterSet) LetterSet {
	return ls & other
}

// Has reports whether letter (0 for 'a') is in the set.
func (ls LetterSet) Has(letter int) bool {
	return ls&(1<<letter) != 0
}

// Count returns the number of distinct letters.
func (ls LetterSet) Count() int {
	return bits.OnesCount32(uint32(ls))
}

// Letters returns the letter indices in the set, ascending.
func (ls LetterSet) Letters() []int {
	out := make([]int, 0, ls.Count())
	for m := uint32(ls); m != 0; m &= m - 1 {
		out = append(out, bits.TrailingZeros32(m))
	}
	return out
}

// String renders the set as its letters in alphabetical order, e.g. "aelst"
// for "slate".
func (ls LetterSet) String() string {
	var sb strings.Builder
	for _, l := range ls.Letters() {
		sb.WriteByte(byte('a' + l))
	}
	return sb.String()
}

// GoString is the binary form, handy when debugging masks.
func (ls LetterSet) GoString() string {
	return fmt.Sprintf("%026b", uint32(ls))
}

// Parse is the inverse of String. It accepts any a-z string.
func Parse(s string) (LetterSet, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return 0, fmt.Errorf("letter %q out of range in %q", s[i], s)
		}
	}
	return FromWord(s), nil
}

// MarshalText lets lettersets serialize as their letters in YAML and JSON.
func (ls LetterSet) MarshalText() ([]byte, error) {
	return []byte(ls.String()), nil
}

func (ls *LetterSet) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*ls = parsed
	return nil
}
