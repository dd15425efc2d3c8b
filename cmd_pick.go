package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/vocabgame/internal/config"
	"github.com/robalobadob/vocabgame/internal/daily"
	"github.com/robalobadob/vocabgame/internal/random"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

type pickOpts struct {
	count int
	daily bool
	date  string
	seed  uint64
}

func newPickCmd(cfg *config.Config) *cobra.Command {
	var o pickOpts
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print a word selection in play order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := vocab.Load(vocab.Source{CatalogFile: cfg.CatalogFile, FamiliesFile: cfg.FamiliesFile})
			if err != nil {
				return err
			}
			rng, err := o.rng(cfg.DailySalt)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, e := range vocab.SelectWords(catalog.Entries, catalog.Families, o.count, rng) {
				tag, def := vocab.SplitPartOfSpeech(e.Definition)
				fmt.Fprintf(out, "%2d. %-14s %-12s %-10s %s\n", i+1, e.Word, catalog.Families.Root(e.Word), tag, def)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&o.count, "count", "n", 10, "number of words")
	cmd.Flags().BoolVar(&o.daily, "daily", false, "use the daily seed")
	cmd.Flags().StringVar(&o.date, "date", "", "date for --daily (YYYY-MM-DD, default today UTC)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "explicit seed (0 = random)")
	return cmd
}

// rng picks the generator: daily seed, explicit seed, or a fresh one.
func (o pickOpts) rng(salt string) (*rand.Rand, error) {
	switch {
	case o.daily:
		day := time.Now().UTC()
		if o.date != "" {
			var err error
			if day, err = time.Parse("2006-01-02", o.date); err != nil {
				return nil, fmt.Errorf("bad --date: %w", err)
			}
		}
		return random.New(daily.Seed(day, salt)), nil
	case o.seed != 0:
		return random.New(o.seed), nil
	default:
		return random.Fresh(), nil
	}
}
