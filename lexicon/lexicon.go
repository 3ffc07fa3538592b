// Package lexicon turns raw answer and guess word lists into deduplicated
// lettersets, keeping track of the words behind each letterset.
package lexicon

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordpack/letterset"
)

// Policy decides what happens to invalid words.
type Policy int

const (
	// PolicyReject fails index construction on the first invalid word.
	PolicyReject Policy = iota
	// PolicySkip drops invalid words with a warning.
	PolicySkip
)

// ParsePolicy accepts "reject" or "skip".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reject", "":
		return PolicyReject, nil
	case "skip":
		return PolicySkip, nil
	}
	return PolicyReject, fmt.Errorf("unknown invalid-word policy %q; use reject or skip", s)
}

func (p Policy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "reject"
}

type Options struct {
	// WordLength is the required word length. 0 means the length of the
	// first valid word seen.
	WordLength int
	Policy     Policy
}

// Vocabulary maps a letterset to the words that share it, in input order.
// It must not be modified after construction.
type Vocabulary map[letterset.LetterSet][]string

// Words returns the words for ls; nil if there are none.
func (v Vocabulary) Words(ls letterset.LetterSet) []string {
	return v[ls]
}

// Lettersets returns the distinct lettersets in ascending order.
func (v Vocabulary) Lettersets() []letterset.LetterSet {
	keys := lo.Keys(v)
	slices.Sort(keys)
	return keys
}

// NumWords is the total number of words in the vocabulary.
func (v Vocabulary) NumWords() int {
	return lo.SumBy(lo.Values(v), func(ws []string) int { return len(ws) })
}

// Index is the immutable, shared view of both vocabularies.
type Index struct {
	WordLength int
	// Answers and Guesses are unique and sorted ascending.
	Answers []letterset.LetterSet
	Guesses []letterset.LetterSet

	AnswerWords Vocabulary
	GuessWords  Vocabulary
}

// Empty reports whether either vocabulary is empty, in which case there are
// no solutions. The returned error wraps ErrEmptyVocabulary.
func (idx *Index) Empty() (bool, error) {
	switch {
	case len(idx.Answers) == 0:
		return true, fmt.Errorf("answers: %w", ErrEmptyVocabulary)
	case len(idx.Guesses) == 0:
		return true, fmt.Errorf("guesses: %w", ErrEmptyVocabulary)
	}
	return false, nil
}

// NewIndex builds an Index from plain word slices.
func NewIndex(answers, guesses []string, opts Options) (*Index, error) {
	return NewIndexFromEntries(Entries(answers), Entries(guesses), opts)
}

// NewIndexFromEntries builds an Index from entries read from word lists.
func NewIndexFromEntries(answers, guesses []Entry, opts Options) (*Index, error) {
	length := opts.WordLength
	if length == 0 {
		length = inferLength(answers, guesses)
	}
	answerWords, err := buildVocabulary("answers", answers, length, opts.Policy)
	if err != nil {
		return nil, err
	}
	guessWords, err := buildVocabulary("guesses", guesses, length, opts.Policy)
	if err != nil {
		return nil, err
	}
	idx := &Index{
		WordLength:  length,
		Answers:     answerWords.Lettersets(),
		Guesses:     guessWords.Lettersets(),
		AnswerWords: answerWords,
		GuessWords:  guessWords,
	}
	if empty, err := idx.Empty(); empty {
		log.Warn().Err(err).Msg("no solutions possible")
	}
	log.Info().
		Int("answer-words", answerWords.NumWords()).
		Int("answer-lettersets", len(idx.Answers)).
		Int("guess-words", guessWords.NumWords()).
		Int("guess-lettersets", len(idx.Guesses)).
		Int("word-length", length).
		Msg("built-index")
	return idx, nil
}

func inferLength(lists ...[]Entry) int {
	for _, l := range lists {
		for _, e := range l {
			if Validate(e.Word, 0) == nil {
				return len(e.Word)
			}
		}
	}
	return 0
}

func buildVocabulary(name string, entries []Entry, length int, policy Policy) (Vocabulary, error) {
	vocab := make(Vocabulary)
	seen := make(map[string]bool, len(entries))
	skipped := 0
	for _, e := range entries {
		if err := Validate(e.Word, length); err != nil {
			if iwe, ok := err.(*InvalidWordError); ok {
				iwe.Line = e.Line
			}
			if policy == PolicyReject {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			log.Warn().Err(err).Str("list", name).Msg("skipping-invalid-word")
			skipped++
			continue
		}
		if seen[e.Word] {
			continue
		}
		seen[e.Word] = true
		ls := letterset.FromWord(e.Word)
		vocab[ls] = append(vocab[ls], e.Word)
	}
	if skipped > 0 {
		log.Info().Str("list", name).Int("skipped", skipped).Msg("skipped-invalid-words")
	}
	return vocab, nil
}
