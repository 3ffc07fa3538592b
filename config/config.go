// Package config holds the settings for a packing run. Values come from, in
// increasing priority, defaults, an optional YAML file, WORDPACK_*
// environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/wordpack/lexicon"
	"github.com/domino14/wordpack/partition"
	"github.com/domino14/wordpack/sink"
)

const EnvPrefix = "WORDPACK"

const (
	SourceGuesses = "guesses"
	SourceUnion   = "union"
)

type Output struct {
	Format       string `mapstructure:"format"`
	Path         string `mapstructure:"path"`
	Delimiter    string `mapstructure:"delimiter"`
	PackingsPath string `mapstructure:"packings_path"`
	NATSURL      string `mapstructure:"nats_url"`
	NATSSubject  string `mapstructure:"nats_subject"`
	SQLiteBatch  int    `mapstructure:"sqlite_batch"`
}

// SinkOptions converts the output settings for sink.Open.
func (o Output) SinkOptions() sink.Options {
	return sink.Options{
		Format:      o.Format,
		Path:        o.Path,
		Delimiter:   o.Delimiter,
		SQLiteBatch: o.SQLiteBatch,
		NATSURL:     o.NATSURL,
		NATSSubject: o.NATSSubject,
	}
}

type Config struct {
	AnswersPath      string `mapstructure:"answers_path"`
	GuessesPath      string `mapstructure:"guesses_path"`
	WordLength       int    `mapstructure:"word_length"`
	InvalidWords     string `mapstructure:"invalid_words"`
	PartitionSize    int    `mapstructure:"partition_size"`
	PartitionLetters string `mapstructure:"partition_letters"`
	PartitionSource  string `mapstructure:"partition_source"`
	// 0 picks one fewer than the number of CPUs.
	Threads int `mapstructure:"threads"`
	// 0 sizes the realizer queue from system memory.
	RealizeQueue int    `mapstructure:"realize_queue"`
	Progress     bool   `mapstructure:"progress"`
	Debug        bool   `mapstructure:"debug"`
	Output       Output `mapstructure:"output"`

	v *viper.Viper
}

func DefaultConfig() Config {
	return Config{
		AnswersPath:     "./data/answers.txt",
		GuessesPath:     "./data/guesses.txt",
		WordLength:      5,
		InvalidWords:    lexicon.PolicyReject.String(),
		PartitionSize:   partition.DefaultSize,
		PartitionSource: SourceGuesses,
		Progress:        true,
		Output: Output{
			Format:      sink.FormatText,
			Path:        "-",
			Delimiter:   ",",
			NATSSubject: sink.DefaultNATSSubject,
			SQLiteBatch: sink.DefaultSQLiteBatch,
		},
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"answers":           "answers_path",
	"guesses":           "guesses_path",
	"word-length":       "word_length",
	"invalid-words":     "invalid_words",
	"partition-size":    "partition_size",
	"partition-letters": "partition_letters",
	"partition-source":  "partition_source",
	"threads":           "threads",
	"realize-queue":     "realize_queue",
	"progress":          "progress",
	"debug":             "debug",
	"format":            "output.format",
	"output":            "output.path",
	"delimiter":         "output.delimiter",
	"packings-out":      "output.packings_path",
	"nats-url":          "output.nats_url",
	"nats-subject":      "output.nats_subject",
	"sqlite-batch":      "output.sqlite_batch",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("config", "", "YAML config file")
	fs.String("answers", d.AnswersPath, "answer word list")
	fs.String("guesses", d.GuessesPath, "guess word list")
	fs.Int("word-length", d.WordLength, "word length; 0 infers it from the first valid word")
	fs.String("invalid-words", d.InvalidWords, "what to do with invalid words: reject or skip")
	fs.Int("partition-size", d.PartitionSize, "number of letters in the partition key")
	fs.String("partition-letters", "", "explicit partition letters, most frequent first")
	fs.String("partition-source", d.PartitionSource, "letter frequencies for the partition: guesses or union")
	fs.Int("threads", d.Threads, "worker goroutines; 0 uses NumCPU-1")
	fs.Int("realize-queue", d.RealizeQueue, "realizer queue depth; 0 sizes it from memory")
	fs.Bool("progress", d.Progress, "show progress bars on stderr")
	fs.Bool("debug", d.Debug, "debug logging")
	fs.String("format", d.Output.Format, "output format: text, jsonl, yaml, sqlite, nats or count")
	fs.StringP("output", "o", d.Output.Path, "output path; - is stdout")
	fs.String("delimiter", d.Output.Delimiter, "word delimiter for text output")
	fs.String("packings-out", "", "also write letterset packings to this YAML file")
	fs.String("nats-url", d.Output.NATSURL, "NATS server for nats output")
	fs.String("nats-subject", d.Output.NATSSubject, "NATS subject for nats output")
	fs.Int("sqlite-batch", d.Output.SQLiteBatch, "rows per sqlite transaction")
}

// Load parses args and fills in c.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("wordpack", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.LoadFlags(fs)
}

// LoadFlags fills in c from an already parsed flag set that had
// RegisterFlags called on it.
func (c *Config) LoadFlags(fs *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return err
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cf, _ := fs.GetString("config"); cf != "" {
		v.SetConfigFile(cf)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	c.v = v
	return c.Validate()
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("answers_path", d.AnswersPath)
	v.SetDefault("guesses_path", d.GuessesPath)
	v.SetDefault("word_length", d.WordLength)
	v.SetDefault("invalid_words", d.InvalidWords)
	v.SetDefault("partition_size", d.PartitionSize)
	v.SetDefault("partition_letters", d.PartitionLetters)
	v.SetDefault("partition_source", d.PartitionSource)
	v.SetDefault("threads", d.Threads)
	v.SetDefault("realize_queue", d.RealizeQueue)
	v.SetDefault("progress", d.Progress)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.delimiter", d.Output.Delimiter)
	v.SetDefault("output.packings_path", d.Output.PackingsPath)
	v.SetDefault("output.nats_url", d.Output.NATSURL)
	v.SetDefault("output.nats_subject", d.Output.NATSSubject)
	v.SetDefault("output.sqlite_batch", d.Output.SQLiteBatch)
}

func (c *Config) Validate() error {
	var errs []error
	if c.WordLength < 0 {
		errs = append(errs, fmt.Errorf("word_length must not be negative, got %d", c.WordLength))
	}
	if _, err := lexicon.ParsePolicy(c.InvalidWords); err != nil {
		errs = append(errs, err)
	}
	if c.PartitionLetters == "" && (c.PartitionSize < 1 || c.PartitionSize > partition.MaxSize) {
		errs = append(errs, fmt.Errorf("partition_size must be between 1 and %d, got %d",
			partition.MaxSize, c.PartitionSize))
	}
	if c.PartitionSource != SourceGuesses && c.PartitionSource != SourceUnion {
		errs = append(errs, fmt.Errorf("partition_source must be %q or %q, got %q",
			SourceGuesses, SourceUnion, c.PartitionSource))
	}
	if c.Threads < 0 {
		errs = append(errs, fmt.Errorf("threads must not be negative, got %d", c.Threads))
	}
	switch c.Output.Format {
	case sink.FormatText, sink.FormatJSONL, sink.FormatYAML, sink.FormatSQLite,
		sink.FormatNATS, sink.FormatCount:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", c.Output.Format))
	}
	return errors.Join(errs...)
}

// AdjustRelativePaths resolves relative input and output paths against
// basedir.
func (c *Config) AdjustRelativePaths(basedir string) {
	c.AnswersPath = adjustPath(basedir, c.AnswersPath)
	c.GuessesPath = adjustPath(basedir, c.GuessesPath)
	c.Output.Path = adjustPath(basedir, c.Output.Path)
	c.Output.PackingsPath = adjustPath(basedir, c.Output.PackingsPath)
}

func adjustPath(basedir, p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(basedir, p)
}

// SanitizedSettings returns the settings for logging, with any credentials
// in the NATS URL redacted.
func (c *Config) SanitizedSettings() map[string]any {
	settings := map[string]any{
		"answers_path":      c.AnswersPath,
		"guesses_path":      c.GuessesPath,
		"word_length":       c.WordLength,
		"invalid_words":     c.InvalidWords,
		"partition_size":    c.PartitionSize,
		"partition_letters": c.PartitionLetters,
		"partition_source":  c.PartitionSource,
		"threads":           c.Threads,
		"realize_queue":     c.RealizeQueue,
		"progress":          c.Progress,
		"debug":             c.Debug,
		"output": map[string]any{
			"format":        c.Output.Format,
			"path":          c.Output.Path,
			"delimiter":     c.Output.Delimiter,
			"packings_path": c.Output.PackingsPath,
			"nats_url":      redactURL(c.Output.NATSURL),
			"nats_subject":  c.Output.NATSSubject,
			"sqlite_batch":  c.Output.SQLiteBatch,
		},
	}
	if c.v != nil {
		settings["config_file"] = c.v.ConfigFileUsed()
	}
	return settings
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
