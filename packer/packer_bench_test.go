package packer

import (
	"testing"

	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/lexicon"
	"github.com/domino14/wordpack/partition"
	"github.com/domino14/wordpack/testhelpers"
)

// "civic" has few distinct letters and so a large pool, "zesty" a small one.
var benchmarkAnswers = []string{"civic", "pinch", "zesty"}

func BenchmarkPackAnswer(b *testing.B) {
	guesses := testhelpers.RandomWords(600, 5, "abcdefghijklmnopqrstuvwxyz")
	idx, err := lexicon.NewIndex(benchmarkAnswers, guesses, lexicon.Options{WordLength: 5})
	if err != nil {
		b.Fatal(err)
	}
	keyer, err := partition.FromFrequency(idx.Guesses, partition.DefaultSize)
	if err != nil {
		b.Fatal(err)
	}
	p := NewPacker(idx, keyer)
	for _, answer := range benchmarkAnswers {
		b.Run(answer, func(b *testing.B) {
			a := letterset.FromWord(answer)
			for i := 0; i < b.N; i++ {
				p.PackAnswer(a)
			}
		})
	}
}
