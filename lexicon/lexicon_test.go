package lexicon

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/wordpack/letterset"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestRead(t *testing.T) {
	is := is.New(t)
	in := "# answers\nSlate\n\n  least  extra\ncrane\n"
	entries, err := Read(strings.NewReader(in))
	is.NoErr(err)
	is.Equal(entries, []Entry{{"slate", 2}, {"least extra", 4}, {"crane", 5}})
}

func TestExtraTokensFollowPolicy(t *testing.T) {
	is := is.New(t)
	entries, err := Read(strings.NewReader("slate\nleast  extra\ncrane\n"))
	is.NoErr(err)

	_, err = NewIndexFromEntries(entries, nil, Options{WordLength: 5})
	is.True(errors.Is(err, ErrInvalidWord))
	var iwe *InvalidWordError
	is.True(errors.As(err, &iwe))
	is.Equal(iwe.Line, 2)
	is.Equal(iwe.Word, "least extra")

	idx, err := NewIndexFromEntries(entries, nil, Options{WordLength: 5, Policy: PolicySkip})
	is.NoErr(err)
	is.Equal(idx.AnswerWords.NumWords(), 2)
	// "least" shares slate's letterset but was never read as a word
	is.Equal(idx.AnswerWords.Words(letterset.FromWord("least")), []string{"slate"})
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	is.NoErr(Validate("slate", 5))
	is.NoErr(Validate("ab", 0))

	for _, w := range []string{"slat", "slates", "sl4te", "", "SLATE"} {
		err := Validate(w, 5)
		is.True(errors.Is(err, ErrInvalidWord))
	}
}

func TestIndexMergesAnagrams(t *testing.T) {
	is := is.New(t)
	idx, err := NewIndex([]string{"abc"}, []string{"abc", "bca", "xyz", "xyz"}, Options{WordLength: 3})
	is.NoErr(err)
	is.Equal(len(idx.Answers), 1)
	is.Equal(len(idx.Guesses), 2)
	is.Equal(idx.GuessWords.Words(letterset.FromWord("cab")), []string{"abc", "bca"})
	// duplicate words collapse
	is.Equal(idx.GuessWords.Words(letterset.FromWord("xyz")), []string{"xyz"})
	is.Equal(idx.GuessWords.NumWords(), 3)
}

func TestIndexSorted(t *testing.T) {
	is := is.New(t)
	idx, err := NewIndex(nil, []string{"zzz", "abc", "mno", "cab"}, Options{})
	is.NoErr(err)
	is.Equal(idx.WordLength, 3)
	is.Equal(idx.Guesses, []letterset.LetterSet{
		letterset.FromWord("abc"), letterset.FromWord("mno"), letterset.FromWord("z"),
	})
}

func TestIndexRejectPolicy(t *testing.T) {
	is := is.New(t)
	answers, err := Read(strings.NewReader("slate\ncr4ne\n"))
	is.NoErr(err)
	_, err = NewIndexFromEntries(answers, nil, Options{WordLength: 5, Policy: PolicyReject})
	is.True(errors.Is(err, ErrInvalidWord))
	var iwe *InvalidWordError
	is.True(errors.As(err, &iwe))
	is.Equal(iwe.Line, 2)
	is.Equal(iwe.Word, "cr4ne")
}

func TestIndexSkipPolicy(t *testing.T) {
	is := is.New(t)
	idx, err := NewIndex([]string{"slate", "toolong", "crane"}, []string{"fjord"},
		Options{WordLength: 5, Policy: PolicySkip})
	is.NoErr(err)
	is.Equal(idx.AnswerWords.NumWords(), 2)
}

func TestIndexEmpty(t *testing.T) {
	is := is.New(t)
	idx, err := NewIndex(nil, nil, Options{})
	is.NoErr(err)
	empty, reason := idx.Empty()
	is.True(empty)
	is.True(errors.Is(reason, ErrEmptyVocabulary))
	is.Equal(len(idx.Answers), 0)
}

func TestParsePolicy(t *testing.T) {
	is := is.New(t)
	p, err := ParsePolicy("skip")
	is.NoErr(err)
	is.Equal(p, PolicySkip)
	is.Equal(p.String(), "skip")
	_, err = ParsePolicy("ignore")
	is.True(err != nil)
}
