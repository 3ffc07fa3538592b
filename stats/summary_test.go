package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordpack/letterset"
)

func TestSummary(t *testing.T) {
	is := is.New(t)
	s := &Summary{}
	s.Add(AnswerStats{Answer: letterset.FromWord("abc"), Candidates: 10, Triples: 4, Comparisons: 2, Packings: 1})
	other := &Summary{}
	other.Add(AnswerStats{Answer: letterset.FromWord("xyz"), Candidates: 20, Triples: 1, Comparisons: 0, Packings: 0})
	other.Add(AnswerStats{Answer: letterset.FromWord("mno"), Candidates: 0})
	s.Merge(other)

	is.Equal(s.Answers(), 3)
	is.Equal(s.TotalPackings(), 1)
	is.Equal(s.NaivePairs, int64(6)) // C(4,2)
	is.Equal(s.Comparisons, int64(2))
	is.True(FuzzyEqual(s.PruningRatio(), 2.0/6.0))
	is.True(FuzzyEqual(s.Candidates.Mean(), 10))
	is.Equal(s.Busiest(1)[0].Answer, letterset.FromWord("abc"))
	is.Equal(len(s.Busiest(10)), 3)

	var buf bytes.Buffer
	is.NoErr(s.Fprint(&buf))
	is.True(strings.Contains(buf.String(), "answers: 3"))
	is.True(strings.Contains(buf.String(), "packings per answer:"))
}

func TestEmptySummary(t *testing.T) {
	is := is.New(t)
	s := &Summary{}
	is.Equal(s.PruningRatio(), 0.0)
	var buf bytes.Buffer
	is.NoErr(s.Fprint(&buf))
	is.True(!strings.Contains(buf.String(), "packings per answer:"))
}
