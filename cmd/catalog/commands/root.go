package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/pagewindow"
	"github.com/Alp4ka/pagewindow/internal/config"
	"github.com/Alp4ka/pagewindow/internal/logger"
)

// NewRootCommand creates the catalog command tree.
func NewRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Paginated product catalog service",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./catalog.yaml)")

	cmd.AddCommand(
		NewServeCommand(&configFile),
		NewSeedCommand(&configFile),
	)

	return cmd
}

// setup loads the config and the process logger shared by every command.
func setup(configFile string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logger.Level)
	if err != nil {
		return nil, nil, err
	}
	pagewindow.SetLogger(log)

	return cfg, log, nil
}
