package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/rights360/rights360/internal/config"
	"github.com/rights360/rights360/internal/db"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
			if err != nil {
				return err
			}
			defer dbh.Close()
			log.Printf("schema ready (%s)", cfg.DBDriver)
			return nil
		},
	}
}
