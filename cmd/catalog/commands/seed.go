package commands

import (
	"github.com/spf13/cobra"

	"github.com/Alp4ka/pagewindow/internal/catalog"
)

func NewSeedCommand(configFile *string) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(*configFile)
			if err != nil {
				return err
			}

			db, err := catalog.Open(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}

			if err = catalog.Seed(cmd.Context(), db, count); err != nil {
				return err
			}
			log.WithField("count", count).Info("products seeded")

			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of products to insert")

	return cmd
}
