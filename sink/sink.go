// Package sink writes realized solutions to their destination. Sinks are
// written to from a single goroutine and are not safe for concurrent use.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/domino14/wordpack/realizer"
)

// Sink is a realizer.Sink that must be closed to flush its output.
type Sink interface {
	realizer.Sink
	io.Closer
}

const (
	FormatText   = "text"
	FormatJSONL  = "jsonl"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
	FormatNATS   = "nats"
	FormatCount  = "count"
)

// Options selects and configures a sink.
type Options struct {
	Format    string
	Path      string // "" or "-" means stdout for the stream formats
	Delimiter string

	SQLiteBatch int

	NATSURL     string
	NATSSubject string
}

// Open creates the sink described by opts.
func Open(opts Options) (Sink, error) {
	switch opts.Format {
	case FormatText, "":
		w, err := openOutput(opts.Path)
		if err != nil {
			return nil, err
		}
		return NewText(w, opts.Delimiter), nil
	case FormatJSONL:
		w, err := openOutput(opts.Path)
		if err != nil {
			return nil, err
		}
		return NewJSONLines(w), nil
	case FormatYAML:
		w, err := openOutput(opts.Path)
		if err != nil {
			return nil, err
		}
		return NewYAML(w), nil
	case FormatSQLite:
		if opts.Path == "" || opts.Path == "-" {
			return nil, fmt.Errorf("the sqlite sink needs an output path")
		}
		s, err := OpenSQLite(opts.Path, opts.SQLiteBatch)
		if err != nil {
			return nil, err
		}
		return s, nil
	case FormatNATS:
		n, err := DialNATS(opts.NATSURL, opts.NATSSubject)
		if err != nil {
			return nil, err
		}
		return n, nil
	case FormatCount:
		return &Counter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", opts.Format)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

// Counter discards solutions and counts them.
type Counter struct {
	N int64
}

func (c *Counter) Write(realizer.Solution) error {
	c.N++
	return nil
}

func (c *Counter) Close() error { return nil }

// Collector keeps every solution in memory. It is meant for tests and
// small vocabularies.
type Collector struct {
	Solutions []realizer.Solution
}

func (c *Collector) Write(s realizer.Solution) error {
	c.Solutions = append(c.Solutions, s)
	return nil
}

func (c *Collector) Close() error { return nil }
