package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/rights360/rights360/internal/config"
	"github.com/rights360/rights360/internal/content"
	"github.com/rights360/rights360/internal/db"
	"github.com/rights360/rights360/internal/seed"
)

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the starter catalog (users, topics, quizzes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
			if err != nil {
				return err
			}
			defer dbh.Close()
			if err := seed.Run(ctx, dbh, content.NewSQLStore(dbh)); err != nil {
				return err
			}
			log.Println("seed complete")
			return nil
		},
	}
}
