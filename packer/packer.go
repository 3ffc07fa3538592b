// Package packer finds every answer plus six guesses whose lettersets are
// pairwise disjoint.
//
// For each answer the guesses that share a letter with it are dropped, the
// disjoint triples of the remaining guesses are enumerated, the triples are
// bucketed by their partition key, and pairs of buckets with disjoint keys
// are joined into packings. Answers are independent and are processed on a
// pool of workers that share the read-only index.
package packer

import (
	"context"
	"errors"
	"io"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/lexicon"
	"github.com/domino14/wordpack/partition"
	"github.com/domino14/wordpack/progress"
	"github.com/domino14/wordpack/stats"
)

var ErrCanceledEarly = errors.New("packing canceled before all answers were processed")

type job struct {
	answer     letterset.LetterSet
	candidates int
}

// Packer holds the immutable inputs shared by all workers.
type Packer struct {
	index   *lexicon.Index
	keyer   *partition.Keyer
	filter  *Filter
	threads int

	progressOut io.Writer
	summary     *stats.Summary
}

// NewPacker builds the guess filter for idx. The keyer should be derived
// from the same vocabulary.
func NewPacker(idx *lexicon.Index, keyer *partition.Keyer) *Packer {
	return &Packer{
		index:   idx,
		keyer:   keyer,
		filter:  NewFilter(idx.Guesses, keyer),
		threads: max(1, runtime.NumCPU()-1),
	}
}

func (p *Packer) SetThreads(t int) {
	p.threads = max(1, t)
}

func (p *Packer) Threads() int {
	return p.threads
}

// SetProgressOutput shows a progress bar on w while packing; nil hides it.
func (p *Packer) SetProgressOutput(w io.Writer) {
	p.progressOut = w
}

// Summary returns the statistics of the last Pack call.
func (p *Packer) Summary() *stats.Summary {
	return p.summary
}

func (p *Packer) Keyer() *partition.Keyer {
	return p.keyer
}

// PackAnswer finds all packings for a single answer letterset.
func (p *Packer) PackAnswer(answer letterset.LetterSet) ([]Packing, stats.AnswerStats) {
	pool := p.filter.Candidates(answer)
	triples := EnumerateTriples(pool)
	buckets := Bucket(triples)
	packings := []Packing{}
	js := JoinTriples(answer, buckets, func(pk Packing) {
		packings = append(packings, pk)
	})
	return packings, stats.AnswerStats{
		Answer:             answer,
		Candidates:         pool.Len(),
		Triples:            len(triples),
		Buckets:            buckets.Len(),
		BucketPairs:        js.BucketPairs,
		SkippedBucketPairs: js.SkippedBucketPairs,
		Comparisons:        js.Comparisons,
		Packings:           js.Packings,
	}
}

// PackWord packs the answer word's letterset.
func (p *Packer) PackWord(word string) ([]Packing, stats.AnswerStats, error) {
	if err := lexicon.Validate(word, p.index.WordLength); err != nil {
		return nil, stats.AnswerStats{}, err
	}
	packings, st := p.PackAnswer(letterset.FromWord(word))
	return packings, st, nil
}

// Pack packs every answer in the index and returns the packings in
// canonical order. If ctx is canceled, the packings found so far are
// returned together with ErrCanceledEarly.
func (p *Packer) Pack(ctx context.Context) ([]Packing, error) {
	start := time.Now()
	jobs := make([]job, len(p.index.Answers))
	for i, a := range p.index.Answers {
		jobs[i] = job{answer: a, candidates: p.filter.Count(a)}
	}
	// Largest pools first so that a few expensive answers do not end up
	// alone at the tail of the run.
	slices.SortStableFunc(jobs, func(a, b job) int { return b.candidates - a.candidates })

	log.Info().
		Int("answers", len(jobs)).
		Int("guesses", len(p.index.Guesses)).
		Int("threads", p.threads).
		Str("partition", p.keyer.Letters()).
		Msg("starting-packing")

	bar := progress.New(p.progressOut, len(jobs), "packing")
	results := make([][]Packing, p.threads)
	summaries := make([]*stats.Summary, p.threads)
	jobChan := make(chan job, p.threads)
	var processed atomic.Uint32

	g := errgroup.Group{}
	for t := 0; t < p.threads; t++ {
		t := t
		summaries[t] = &stats.Summary{}
		g.Go(func() error {
			for j := range jobChan {
				packings, st := p.PackAnswer(j.answer)
				results[t] = append(results[t], packings...)
				summaries[t].Add(st)
				bar.Add(1)
				n := processed.Add(1)
				log.Debug().Str("answer", j.answer.String()).
					Int("candidates", st.Candidates).
					Int("triples", st.Triples).
					Int("packings", st.Packings).
					Msg("packed-answer")
				if n%250 == 0 {
					log.Info().Msgf("packed %d of %d answers...", n, len(jobs))
				}
			}
			return nil
		})
	}

	canceled := false
queue:
	for _, j := range jobs {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case <-ctx.Done():
			canceled = true
			break queue
		case jobChan <- j:
		}
	}
	close(jobChan)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	bar.Finish()

	summary := &stats.Summary{}
	total := 0
	for t := range results {
		summary.Merge(summaries[t])
		total += len(results[t])
	}
	packings := make([]Packing, 0, total)
	for _, r := range results {
		packings = append(packings, r...)
	}
	Sort(packings)
	p.summary = summary

	log.Info().
		Int("packings", len(packings)).
		Int64("comparisons", summary.Comparisons).
		Float64("pruning-ratio", summary.PruningRatio()).
		Dur("elapsed", time.Since(start)).
		Msg("finished-packing")

	if canceled {
		log.Info().Uint32("processed", processed.Load()).Msg("canceled; returning packings so far")
		return packings, ErrCanceledEarly
	}
	return packings, nil
}
