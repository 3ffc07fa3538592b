// Package runner wires a full packing run together: load the word lists,
// choose a partition, pack, and realize into the configured sink.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpack/config"
	"github.com/domino14/wordpack/letterset"
	"github.com/domino14/wordpack/lexicon"
	"github.com/domino14/wordpack/packer"
	"github.com/domino14/wordpack/partition"
	"github.com/domino14/wordpack/realizer"
	"github.com/domino14/wordpack/sink"
	"github.com/domino14/wordpack/stats"
)

type Options struct {
	// Answer restricts the run to this single answer word.
	Answer string
	// PackingsOnly stops after the letterset-level packing.
	PackingsOnly bool
	// Progress is where progress bars go; nil hides them.
	Progress io.Writer
}

type Result struct {
	Packings    []packer.Packing
	Fingerprint uint64
	Solutions   int64
	Summary     *stats.Summary
}

type Runner struct {
	cfg  *config.Config
	opts Options
	// overrides sink.Open when set
	sink sink.Sink
}

func New(cfg *config.Config, opts Options) *Runner {
	return &Runner{cfg: cfg, opts: opts}
}

// SetSink makes the run write to s instead of the configured output. The
// runner closes s.
func (r *Runner) SetSink(s sink.Sink) {
	r.sink = s
}

// LoadIndex reads both word lists named by the config.
func LoadIndex(cfg *config.Config, answer string) (*lexicon.Index, error) {
	policy, err := lexicon.ParsePolicy(cfg.InvalidWords)
	if err != nil {
		return nil, err
	}
	guesses, err := lexicon.ReadFile(cfg.GuessesPath)
	if err != nil {
		return nil, err
	}
	var answers []lexicon.Entry
	if answer != "" {
		answers = lexicon.Entries([]string{answer})
		// a bad single answer is always an error, whatever the policy
		if err := lexicon.Validate(answers[0].Word, cfg.WordLength); err != nil {
			return nil, err
		}
	} else {
		answers, err = lexicon.ReadFile(cfg.AnswersPath)
		if err != nil {
			return nil, err
		}
	}
	return lexicon.NewIndexFromEntries(answers, guesses, lexicon.Options{
		WordLength: cfg.WordLength,
		Policy:     policy,
	})
}

// NewKeyer picks the partition letters: the configured ones if any,
// otherwise the most frequent letters of the configured source.
func NewKeyer(cfg *config.Config, idx *lexicon.Index) (*partition.Keyer, error) {
	if cfg.PartitionLetters != "" {
		return partition.FromLetters(cfg.PartitionLetters)
	}
	sets := idx.Guesses
	if cfg.PartitionSource == config.SourceUnion {
		sets = append(append([]letterset.LetterSet{}, idx.Guesses...), idx.Answers...)
	}
	return partition.FromFrequency(sets, cfg.PartitionSize)
}

// Run performs the whole run. A canceled context still realizes and
// returns the packings found so far, along with packer.ErrCanceledEarly.
// The sink is closed on every return.
func (r *Runner) Run(ctx context.Context) (res *Result, err error) {
	out := r.sink
	defer func() {
		if out == nil {
			return
		}
		if cerr := out.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing output: %w", cerr))
		}
	}()

	idx, err := LoadIndex(r.cfg, r.opts.Answer)
	if err != nil {
		return nil, err
	}
	res = &Result{Summary: &stats.Summary{}}
	if empty, err := idx.Empty(); empty {
		log.Warn().Err(err).Msg("nothing-to-pack")
		return res, nil
	}

	keyer, err := NewKeyer(r.cfg, idx)
	if err != nil {
		return nil, err
	}
	log.Info().Str("partition", keyer.String()).Msg("chose-partition")

	p := packer.NewPacker(idx, keyer)
	if r.cfg.Threads > 0 {
		p.SetThreads(r.cfg.Threads)
	}
	p.SetProgressOutput(r.opts.Progress)

	var packErr error
	if r.opts.Answer != "" {
		packings, st, err := p.PackWord(r.opts.Answer)
		if err != nil {
			return nil, err
		}
		res.Packings = packings
		res.Summary.Add(st)
	} else {
		res.Packings, packErr = p.Pack(ctx)
		if packErr != nil && !errors.Is(packErr, packer.ErrCanceledEarly) {
			return nil, packErr
		}
		res.Summary = p.Summary()
	}
	res.Fingerprint = packer.Fingerprint(res.Packings)
	log.Info().Int("packings", len(res.Packings)).
		Str("fingerprint", fmt.Sprintf("%016x", res.Fingerprint)).
		Msg("packed")

	if path := r.cfg.Output.PackingsPath; path != "" {
		if err := sink.WritePackings(path, res.Packings); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("wrote-packings")
	}
	if r.opts.PackingsOnly {
		return res, packErr
	}

	if out == nil {
		out, err = sink.Open(r.cfg.Output.SinkOptions())
		if err != nil {
			return nil, err
		}
	}
	rz := realizer.NewRealizer(idx)
	if r.cfg.Threads > 0 {
		rz.SetThreads(r.cfg.Threads)
	}
	rz.SetQueueDepth(r.cfg.RealizeQueue)
	rz.SetProgressOutput(r.opts.Progress)

	// realization is not canceled with ctx so that a canceled run still
	// writes out what it packed
	res.Solutions, err = rz.Realize(context.WithoutCancel(ctx), res.Packings, out)
	if err != nil {
		return res, fmt.Errorf("realizing solutions: %w", err)
	}
	return res, packErr
}
