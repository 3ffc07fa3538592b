package lexicon

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWord is wrapped by every *InvalidWordError.
	ErrInvalidWord = errors.New("invalid word")
	// ErrEmptyVocabulary is reported when a vocabulary has no usable words.
	// It is informational: packing an empty vocabulary yields no solutions.
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// InvalidWordError describes a rejected input token.
type InvalidWordError struct {
	Word   string
	Line   int // 1-based; 0 when the word did not come from a file
	Reason string
}

func (e *InvalidWordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid word %q on line %d: %s", e.Word, e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid word %q: %s", e.Word, e.Reason)
}

func (e *InvalidWordError) Unwrap() error {
	return ErrInvalidWord
}
