package stats

import (
	"fmt"
	"io"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/wordpack/letterset"
)

// AnswerStats are the counters for packing a single answer.
type AnswerStats struct {
	Answer     letterset.LetterSet
	Candidates int
	Triples    int
	Buckets    int
	// BucketPairs were compared triple by triple; SkippedBucketPairs were
	// rejected on their keys alone.
	BucketPairs        int64
	SkippedBucketPairs int64
	Comparisons        int64
	Packings           int
}

// NaivePairs is the number of triple pairs an all-pairs join would compare.
func (a AnswerStats) NaivePairs() int64 {
	if a.Triples < 2 {
		return 0
	}
	return int64(combin.Binomial(a.Triples, 2))
}

// Summary aggregates AnswerStats over a run. It is not safe for concurrent
// use; workers keep their own and the results are merged.
type Summary struct {
	Candidates Statistic
	Triples    Statistic
	Packings   Statistic

	Comparisons int64
	NaivePairs  int64

	answers []AnswerStats
}

func (s *Summary) Add(a AnswerStats) {
	s.Candidates.Push(float64(a.Candidates))
	s.Triples.Push(float64(a.Triples))
	s.Packings.Push(float64(a.Packings))
	s.Comparisons += a.Comparisons
	s.NaivePairs += a.NaivePairs()
	s.answers = append(s.answers, a)
}

// Merge adds every answer from other.
func (s *Summary) Merge(other *Summary) {
	for _, a := range other.answers {
		s.Add(a)
	}
}

func (s *Summary) Answers() int {
	return len(s.answers)
}

// TotalPackings is the number of letterset-level packings over all answers.
func (s *Summary) TotalPackings() int {
	return lo.SumBy(s.answers, func(a AnswerStats) int { return a.Packings })
}

// PruningRatio is the fraction of naive triple-pair comparisons that were
// actually performed.
func (s *Summary) PruningRatio() float64 {
	if s.NaivePairs == 0 {
		return 0
	}
	return float64(s.Comparisons) / float64(s.NaivePairs)
}

// Busiest returns up to n answers with the most comparisons.
func (s *Summary) Busiest(n int) []AnswerStats {
	sorted := slices.Clone(s.answers)
	slices.SortFunc(sorted, func(a, b AnswerStats) int {
		if a.Comparisons != b.Comparisons {
			if a.Comparisons > b.Comparisons {
				return -1
			}
			return 1
		}
		return int(a.Answer) - int(b.Answer)
	})
	return sorted[:min(n, len(sorted))]
}

// Fprint writes a human-readable report, including a histogram of packings
// per answer.
func (s *Summary) Fprint(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"answers: %d\npackings: %d\ncandidates/answer: mean %.1f stdev %.1f max %.0f\n"+
			"triples/answer: mean %.1f stdev %.1f max %.0f\n"+
			"comparisons: %d of %d naive (%.4f%%)\n",
		s.Answers(), s.TotalPackings(),
		s.Candidates.Mean(), s.Candidates.Stdev(), s.Candidates.Max(),
		s.Triples.Mean(), s.Triples.Stdev(), s.Triples.Max(),
		s.Comparisons, s.NaivePairs, 100*s.PruningRatio())
	if err != nil {
		return err
	}
	for _, a := range s.Busiest(3) {
		if _, err := fmt.Fprintf(w, "  %s: %d triples, %d comparisons, %d packings\n",
			a.Answer, a.Triples, a.Comparisons, a.Packings); err != nil {
			return err
		}
	}
	if len(s.answers) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "packings per answer:"); err != nil {
		return err
	}
	data := lo.Map(s.answers, func(a AnswerStats, _ int) float64 { return float64(a.Packings) })
	return histogram.Fprint(w, histogram.Hist(10, data), histogram.Linear(40))
}
