package partition

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/testhelpers"
)

func TestFromLetters(t *testing.T) {
	is := is.New(t)
	k, err := FromLetters("seaoriltnu")
	is.NoErr(err)
	is.Equal(k.Size(), 10)
	is.Equal(k.Letters(), "seaoriltnu")
	is.Equal(k.Mask(), letterset.LetterSet(0b00000111100110100100010001))

	is.Equal(k.Key(letterset.FromWord("s")), Key(1))
	is.Equal(k.Key(letterset.FromWord("slate")), Key(0b0011000111)) // s e a l t
	is.Equal(k.Key(letterset.FromWord("jumpy")), Key(1<<9))         // u
	is.Equal(k.Key(letterset.FromWord("whack")), Key(1<<2))         // a
}

func TestFromLettersErrors(t *testing.T) {
	for _, letters := range []string{"", "abca", "ab1", "abcdefghijklmnopq"} {
		_, err := FromLetters(letters)
		assert.Error(t, err, letters)
	}
}

func TestFromFrequency(t *testing.T) {
	is := is.New(t)
	sets := []letterset.LetterSet{
		letterset.FromWord("abc"),
		letterset.FromWord("abd"),
		letterset.FromWord("aez"),
	}
	k, err := FromFrequency(sets, 3)
	is.NoErr(err)
	// a:3, b:2, then c d e z tie at 1 and break alphabetically
	is.Equal(k.Letters(), "abc")

	_, err = FromFrequency(sets, 0)
	is.True(err != nil)
}

func TestLetterFrequency(t *testing.T) {
	freq := LetterFrequency([]letterset.LetterSet{
		letterset.FromWord("eerie"), letterset.FromWord("tree"),
	})
	assert.Equal(t, 2, freq['e'-'a'])
	assert.Equal(t, 2, freq['r'-'a'])
	assert.Equal(t, 1, freq['i'-'a'])
	assert.Equal(t, 0, freq['z'-'a'])
}

// Key overlap must imply mask overlap for every pair.
func TestKeySoundness(t *testing.T) {
	is := is.New(t)
	vocab := testhelpers.RandomLettersets(300, 4, "abcdefghijklmnop")
	k, err := FromFrequency(vocab, DefaultSize)
	is.NoErr(err)
	overlapping := 0
	for i, a := range vocab {
		for _, b := range vocab[i:] {
			if !k.Key(a).Disjoint(k.Key(b)) {
				overlapping++
				is.True(!a.Disjoint(b))
			}
			if a.Disjoint(b) {
				is.True(k.Key(a).Disjoint(k.Key(b)))
			}
		}
	}
	is.True(overlapping > 0)
}
