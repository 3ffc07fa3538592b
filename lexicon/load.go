package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is a raw token read from a word list, with its line number so that
// validation errors can point back at the file.
type Entry struct {
	Word string
	Line int
}

// Read reads one word per line. Surrounding whitespace is trimmed; blank
// lines and lines starting with '#' are skipped. Words are case-folded to
// lower case. A line holding more than one token is kept whole so that
// validation rejects or skips it like any other invalid word.
func Read(r io.Reader) ([]Entry, error) {
	fold := cases.Lower(language.Und)
	entries := []Entry{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		entries = append(entries, Entry{Word: fold.String(strings.Join(fields, " ")), Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return entries, nil
}

// ReadFile is Read on a file path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("words", len(entries)).Msg("read-word-list")
	return entries, nil
}

// Entries wraps plain words (e.g. an embedded list) as entries without
// line numbers.
func Entries(words []string) []Entry {
	out := make([]Entry, len(words))
	for i, w := range words {
		out[i] = Entry{Word: w}
	}
	return out
}

// Validate checks that word is exactly length letters from a to z. A
// length of 0 accepts any non-empty length.
func Validate(word string, length int) error {
	if word == "" {
		return &InvalidWordError{Word: word, Reason: "empty"}
	}
	if strings.ContainsAny(word, " \t") {
		return &InvalidWordError{Word: word, Reason: "more than one word on the line"}
	}
	if length > 0 && len(word) != length {
		return &InvalidWordError{Word: word,
			Reason: fmt.Sprintf("has length %d, want %d", len(word), length)}
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return &InvalidWordError{Word: word,
				Reason: fmt.Sprintf("non-alphabetic character %q", word[i])}
		}
	}
	return nil
}
