// Package realizer expands letterset-level packings into word-level
// solutions.
//
// A packing such as
//
//	a  = {a,e,l,s,t} -> least, slate
//	g1 = {b,i,k,l,n} -> blink
//	g2 = {c,o,r,u,y} -> corny, court
//
// realizes to every combination of one word per slot, here 2 x 1 x 2 = 4
// solutions. Packings are independent, so they are realized on a pool of
// workers and streamed to a single writer.
package realizer

import (
	"context"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/wordpack/lexicon"
	"github.com/domino14/wordpack/packer"
	"github.com/domino14/wordpack/progress"
)

// Solution is one answer word and six guess words. Guesses[i] realizes the
// i-th guess letterset of its packing.
type Solution struct {
	Answer  string    `json:"answer" yaml:"answer"`
	Guesses [6]string `json:"guesses" yaml:"guesses,flow"`
}

// Words returns the answer followed by the guesses.
func (s Solution) Words() [7]string {
	return [7]string{s.Answer,
		s.Guesses[0], s.Guesses[1], s.Guesses[2], s.Guesses[3], s.Guesses[4], s.Guesses[5]}
}

// Sink receives solutions from a single goroutine.
type Sink interface {
	Write(s Solution) error
}

const (
	minQueueDepth = 16
	maxQueueDepth = 4096
	// bytes of system memory per queued batch
	memoryPerBatch = 64 << 20
)

// QueueDepth sizes the batch queue between the workers and the writer from
// the amount of system memory.
func QueueDepth(totalMemory uint64) int {
	return int(min(max(totalMemory/memoryPerBatch, minQueueDepth), maxQueueDepth))
}

type Realizer struct {
	answers lexicon.Vocabulary
	guesses lexicon.Vocabulary

	threads     int
	queueDepth  int
	progressOut io.Writer
}

func NewRealizer(idx *lexicon.Index) *Realizer {
	return &Realizer{
		answers:    idx.AnswerWords,
		guesses:    idx.GuessWords,
		threads:    max(1, runtime.NumCPU()-1),
		queueDepth: QueueDepth(memory.TotalMemory()),
	}
}

func (r *Realizer) SetThreads(t int) {
	r.threads = max(1, t)
}

// SetQueueDepth overrides the memory-derived queue depth; 0 keeps it.
func (r *Realizer) SetQueueDepth(d int) {
	if d > 0 {
		r.queueDepth = d
	}
}

func (r *Realizer) SetProgressOutput(w io.Writer) {
	r.progressOut = w
}

func (r *Realizer) wordLists(p packer.Packing) [7][]string {
	return [7][]string{
		r.answers.Words(p.Answer),
		r.guesses.Words(p.Guesses[0]),
		r.guesses.Words(p.Guesses[1]),
		r.guesses.Words(p.Guesses[2]),
		r.guesses.Words(p.Guesses[3]),
		r.guesses.Words(p.Guesses[4]),
		r.guesses.Words(p.Guesses[5]),
	}
}

// Count is the number of solutions p realizes to.
func (r *Realizer) Count(p packer.Packing) int64 {
	n := int64(1)
	for _, ws := range r.wordLists(p) {
		n *= int64(len(ws))
	}
	return n
}

// RealizePacking returns the Cartesian product of the words behind each
// letterset of p. A letterset with no words (one that did not come from
// this index) realizes to nothing.
func (r *Realizer) RealizePacking(p packer.Packing) []Solution {
	lists := r.wordLists(p)
	lens := make([]int, len(lists))
	for i, ws := range lists {
		if len(ws) == 0 {
			log.Warn().Str("packing", p.String()).Int("slot", i).Msg("letterset-has-no-words")
			return nil
		}
		lens[i] = len(ws)
	}
	solutions := make([]Solution, 0, r.Count(p))
	gen := combin.NewCartesianGenerator(lens)
	product := make([]int, len(lens))
	for gen.Next() {
		gen.Product(product)
		s := Solution{Answer: lists[0][product[0]]}
		for i := range s.Guesses {
			s.Guesses[i] = lists[i+1][product[i+1]]
		}
		solutions = append(solutions, s)
	}
	return solutions
}

// Realize expands every packing and writes the solutions to sink, returning
// how many were written. Workers hand whole packings' worth of solutions to
// one writer over a bounded queue, so memory use does not grow with the
// number of solutions. The first sink error stops the run.
func (r *Realizer) Realize(ctx context.Context, packings []packer.Packing, sink Sink) (int64, error) {
	start := time.Now()
	log.Info().Int("packings", len(packings)).Int("threads", r.threads).
		Int("queue-depth", r.queueDepth).Msg("starting-realization")

	bar := progress.New(r.progressOut, len(packings), "realizing")
	g, gctx := errgroup.WithContext(ctx)
	jobChan := make(chan packer.Packing, r.threads)
	out := make(chan []Solution, r.queueDepth)

	g.Go(func() error {
		defer close(jobChan)
		for _, p := range packings {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case jobChan <- p:
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	for t := 0; t < r.threads; t++ {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for p := range jobChan {
				batch := r.RealizePacking(p)
				select {
				case <-gctx.Done():
					return gctx.Err()
				case out <- batch:
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		workers.Wait()
		close(out)
		return nil
	})

	var written atomic.Int64
	g.Go(func() error {
		for batch := range out {
			for _, s := range batch {
				if err := sink.Write(s); err != nil {
					return err
				}
			}
			written.Add(int64(len(batch)))
			bar.Add(1)
		}
		return nil
	})

	err := g.Wait()
	bar.Finish()
	n := written.Load()
	if err != nil {
		log.Err(err).Int64("written", n).Msg("realization-failed")
		return n, err
	}
	log.Info().Int64("solutions", n).Dur("elapsed", time.Since(start)).Msg("finished-realization")
	return n, nil
}
