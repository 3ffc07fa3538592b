package packer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/partition"
	"github.com/domino14/wordpack/testhelpers"
)

func scanCandidates(answer letterset.LetterSet, guesses []letterset.LetterSet) []letterset.LetterSet {
	out := []letterset.LetterSet{}
	for _, g := range guesses {
		if g&answer == 0 {
			out = append(out, g)
		}
	}
	return out
}

func TestFilterMatchesScan(t *testing.T) {
	guesses := testhelpers.Unique(testhelpers.RandomLettersets(500, 5, "abcdefghijklmnopqrstuvwxyz"))
	keyer, err := partition.FromFrequency(guesses, partition.DefaultSize)
	require.NoError(t, err)
	f := NewFilter(guesses, keyer)

	for _, answer := range testhelpers.RandomLettersets(50, 5, "abcdefghijklmnopqrstuvwxyz") {
		pool := f.Candidates(answer)
		want := scanCandidates(answer, guesses)
		assert.Equal(t, want, pool.Sets)
		assert.Equal(t, len(want), f.Count(answer))
		require.Len(t, pool.Keys, len(pool.Sets))
		for i, g := range pool.Sets {
			assert.Equal(t, keyer.Key(g), pool.Keys[i])
		}
	}
}

func TestFilterEdgeCases(t *testing.T) {
	keyer, err := partition.FromLetters("abc")
	require.NoError(t, err)

	empty := NewFilter(nil, keyer)
	assert.Equal(t, 0, empty.Candidates(letterset.FromWord("abc")).Len())

	guesses := testhelpers.Unique([]letterset.LetterSet{
		letterset.FromWord("abc"), letterset.FromWord("def"),
	})
	f := NewFilter(guesses, keyer)
	// the empty answer excludes nothing
	assert.Equal(t, guesses, f.Candidates(0).Sets)
	assert.Equal(t, 0, f.Count(letterset.Full))
}
