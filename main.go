// main.go
//
// Entry point for the vocabgame binary.
// Commands:
//   - serve → run the HTTP backend (spelling, challenges, duels).
//   - pick  → print a word selection, handy for checking a catalog or a daily list.
//
// Configuration comes from the environment (and .env in development); see
// internal/config.

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/vocabgame/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config
	root := &cobra.Command{
		Use:           "vocabgame",
		Short:         "Vocabulary games backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			setupLogging(cfg)
			return nil
		},
	}
	root.AddCommand(newServeCmd(&cfg), newPickCmd(&cfg))
	return root
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
