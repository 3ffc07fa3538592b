package realizer

import (
	"context"
	"errors"
	"os"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/lexicon"
	"github.com/domino14/wordpack/packer"
	"github.com/domino14/wordpack/partition"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

type sliceSink struct {
	solutions []Solution
	failAfter int
}

var errSinkFull = errors.New("sink full")

func (s *sliceSink) Write(sol Solution) error {
	if s.failAfter > 0 && len(s.solutions) >= s.failAfter {
		return errSinkFull
	}
	s.solutions = append(s.solutions, sol)
	return nil
}

func pack(t *testing.T, answers, guesses []string) (*lexicon.Index, []packer.Packing) {
	t.Helper()
	idx, err := lexicon.NewIndex(answers, guesses, lexicon.Options{})
	if err != nil {
		t.Fatal(err)
	}
	keyer, err := partition.FromFrequency(idx.Guesses, partition.DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	packings, err := packer.NewPacker(idx, keyer).Pack(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return idx, packings
}

func TestRealizeSingleSolution(t *testing.T) {
	is := is.New(t)
	idx, packings := pack(t, []string{"abc"}, []string{"def", "ghi", "jkl", "mno", "pqr", "stu"})
	sink := &sliceSink{}
	n, err := NewRealizer(idx).Realize(context.Background(), packings, sink)
	is.NoErr(err)
	is.Equal(n, int64(1))
	is.Equal(sink.solutions, []Solution{{
		Answer:  "abc",
		Guesses: [6]string{"def", "ghi", "jkl", "mno", "pqr", "stu"},
	}})
}

func TestRealizeAnagramsInOneSlot(t *testing.T) {
	is := is.New(t)
	idx, packings := pack(t, []string{"vwx"}, []string{"abc", "bca", "def", "ghi", "jkl", "mno", "pqr"})
	is.Equal(len(packings), 1)

	r := NewRealizer(idx)
	is.Equal(r.Count(packings[0]), int64(2))
	sols := r.RealizePacking(packings[0])
	is.Equal(len(sols), 2)
	is.Equal(sols[0].Guesses[0], "abc")
	is.Equal(sols[1].Guesses[0], "bca")
	for _, s := range sols {
		is.Equal(s.Answer, "vwx")
		is.Equal(s.Guesses[1:], []string{"def", "ghi", "jkl", "mno", "pqr"})
	}
}

func TestRealizeCartesianProduct(t *testing.T) {
	is := is.New(t)
	answers := []string{"abc", "cab"}
	guesses := []string{"def", "fed", "ghi", "jkl", "mno", "pqr", "stu", "uts", "tus"}
	idx, packings := pack(t, answers, guesses)
	is.Equal(len(packings), 1)

	sink := &sliceSink{}
	r := NewRealizer(idx)
	r.SetThreads(2)
	r.SetQueueDepth(1)
	n, err := r.Realize(context.Background(), packings, sink)
	is.NoErr(err)
	is.Equal(n, int64(2*2*3))

	set := mapset.NewThreadUnsafeSet(sink.solutions...)
	is.Equal(set.Cardinality(), 12)
	for _, s := range sink.solutions {
		words := s.Words()
		sets := make([]letterset.LetterSet, len(words))
		for i, w := range words {
			sets[i] = letterset.FromWord(w)
		}
		for i := range sets {
			for j := i + 1; j < len(sets); j++ {
				is.True(sets[i].Disjoint(sets[j]))
			}
		}
	}
}

func TestRealizeStopsOnSinkError(t *testing.T) {
	is := is.New(t)
	guesses := []string{"def", "fed", "ghi", "jkl", "mno", "pqr", "stu", "uts", "tus"}
	idx, packings := pack(t, []string{"abc"}, guesses)
	sink := &sliceSink{failAfter: 5}
	n, err := NewRealizer(idx).Realize(context.Background(), packings, sink)
	is.True(errors.Is(err, errSinkFull))
	is.Equal(n, int64(0)) // the only batch failed part way
	is.Equal(len(sink.solutions), 5)
}

func TestRealizeCanceled(t *testing.T) {
	is := is.New(t)
	idx, packings := pack(t, []string{"abc"}, []string{"def", "ghi", "jkl", "mno", "pqr", "stu"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRealizer(idx).Realize(ctx, packings, &sliceSink{})
	if err != nil {
		is.True(errors.Is(err, context.Canceled))
	}
}

func TestRealizeUnknownLetterset(t *testing.T) {
	is := is.New(t)
	idx, _ := pack(t, []string{"abc"}, []string{"def"})
	p := packer.Packing{Answer: letterset.FromWord("abc")}
	is.Equal(len(NewRealizer(idx).RealizePacking(p)), 0)
}

func TestQueueDepth(t *testing.T) {
	is := is.New(t)
	is.Equal(QueueDepth(0), minQueueDepth)
	is.Equal(QueueDepth(16<<30), 256)
	is.Equal(QueueDepth(1<<50), maxQueueDepth)
}
