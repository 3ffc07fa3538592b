package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domino14/wordpack/config"
	"github.com/domino14/wordpack/packer"
	"github.com/domino14/wordpack/runner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		answer       string
		packingsOnly bool
		showStats    bool
		profilePath  string
	)
	cmd := &cobra.Command{
		Use:   "wordpack",
		Short: "Find every answer with six guesses that share no letters",
		Long: `wordpack finds every answer word together with six guess words such
that no letter appears in more than one of the seven words.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if err := cfg.LoadFlags(cmd.Flags()); err != nil {
				return err
			}
			setupLogging(cfg.Debug)
			if cf, _ := cmd.Flags().GetString("config"); cf != "" {
				cfg.AdjustRelativePaths(filepath.Dir(cf))
			}
			log.Info().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

			if profilePath != "" {
				f, err := os.Create(profilePath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				defer pprof.StopCPUProfile()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := runner.Options{
				Answer:       strings.ToLower(answer),
				PackingsOnly: packingsOnly,
			}
			if cfg.Progress {
				opts.Progress = os.Stderr
			}
			res, err := runner.New(&cfg, opts).Run(ctx)
			if errors.Is(err, packer.ErrCanceledEarly) {
				log.Warn().Msg("canceled-output-incomplete")
			} else if err != nil {
				return err
			}
			if showStats {
				if perr := res.Summary.Fprint(os.Stderr); perr != nil {
					return perr
				}
			}
			log.Info().
				Int("packings", len(res.Packings)).
				Int64("solutions", res.Solutions).
				Str("fingerprint", fmt.Sprintf("%016x", res.Fingerprint)).
				Msg("done")
			return err
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&answer, "answer", "", "pack only this answer word")
	cmd.Flags().BoolVar(&packingsOnly, "packings-only", false, "stop after letterset-level packing")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print packing statistics to stderr")
	cmd.Flags().StringVar(&profilePath, "profilepath", "", "write a CPU profile here")
	return cmd
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
