package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/domino14/wordpack/realizer"
)

// Text writes one solution per line, answer first, words joined by a
// delimiter.
type Text struct {
	w     *bufio.Writer
	out   io.Closer
	delim string
}

func NewText(w io.WriteCloser, delimiter string) *Text {
	if delimiter == "" {
		delimiter = ","
	}
	return &Text{w: bufio.NewWriterSize(w, 1<<16), out: w, delim: delimiter}
}

func (t *Text) Write(s realizer.Solution) error {
	for i, word := range s.Words() {
		if i > 0 {
			t.w.WriteString(t.delim)
		}
		t.w.WriteString(word)
	}
	return t.w.WriteByte('\n')
}

func (t *Text) Close() error {
	if err := t.w.Flush(); err != nil {
		t.out.Close()
		return fmt.Errorf("flushing output: %w", err)
	}
	return t.out.Close()
}

// JSONLines writes one JSON object per line.
type JSONLines struct {
	w   *bufio.Writer
	enc *json.Encoder
	out io.Closer
}

func NewJSONLines(w io.WriteCloser) *JSONLines {
	bw := bufio.NewWriterSize(w, 1<<16)
	return &JSONLines{w: bw, enc: json.NewEncoder(bw), out: w}
}

func (j *JSONLines) Write(s realizer.Solution) error {
	return j.enc.Encode(s)
}

func (j *JSONLines) Close() error {
	if err := j.w.Flush(); err != nil {
		j.out.Close()
		return fmt.Errorf("flushing output: %w", err)
	}
	return j.out.Close()
}

// YAML writes a stream of YAML documents, one per solution.
type YAML struct {
	w   *bufio.Writer
	enc *yaml.Encoder
	out io.Closer
}

func NewYAML(w io.WriteCloser) *YAML {
	bw := bufio.NewWriterSize(w, 1<<16)
	return &YAML{w: bw, enc: yaml.NewEncoder(bw), out: w}
}

func (y *YAML) Write(s realizer.Solution) error {
	return y.enc.Encode(s)
}

func (y *YAML) Close() error {
	if err := y.enc.Close(); err != nil {
		y.out.Close()
		return err
	}
	if err := y.w.Flush(); err != nil {
		y.out.Close()
		return fmt.Errorf("flushing output: %w", err)
	}
	return y.out.Close()
}
