package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/vocabgame/assets"
	"github.com/robalobadob/vocabgame/internal/config"
	"github.com/robalobadob/vocabgame/internal/db"
	"github.com/robalobadob/vocabgame/internal/httpserver"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer conn.Close()

			migrations, err := assets.Migrations()
			if err != nil {
				return err
			}
			if err := db.Migrate(conn, migrations); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			catalog, err := vocab.Load(vocab.Source{CatalogFile: cfg.CatalogFile, FamiliesFile: cfg.FamiliesFile})
			if err != nil {
				return err
			}
			log.Info().Int("entries", catalog.Len()).Int("families", catalog.Roots()).Msg("vocabulary loaded")

			srv := httpserver.New(httpserver.Deps{Config: *cfg, Catalog: catalog, DB: conn})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.Info().Str("addr", cfg.Addr()).Str("db", cfg.DBPath).Msg("starting vocabgame")
			if err := srv.Run(ctx, cfg.Addr()); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
}
