package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/pagewindow"
	"github.com/Alp4ka/pagewindow/internal/catalog"
	"github.com/Alp4ka/pagewindow/internal/server"
)

func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(*configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := catalog.Open(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}

			executor, closeExecutor, err := catalog.NewExecutor(ctx, cfg.Database.Driver, cfg.Database.DSN, db)
			if err != nil {
				return err
			}
			defer closeExecutor()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			metrics, err := pagewindow.NewMetrics(reg)
			if err != nil {
				return err
			}

			opts := []catalog.Option{
				catalog.WithExecutor(executor),
				catalog.WithLogger(log),
				catalog.WithMetrics(metrics),
			}
			if cfg.Search.Enabled() {
				client := meilisearch.New(cfg.Search.Host, meilisearch.WithAPIKey(cfg.Search.APIKey))
				opts = append(opts, catalog.WithSearchIndex(client.Index(cfg.Search.Index)))
				log.WithField("index", cfg.Search.Index).Info("search enabled")
			}

			gin.SetMode(cfg.Server.Mode)
			handler := server.NewProductHandler(catalog.NewService(db, opts...), cfg.Paging.MaxPerPage, cfg.Paging.Edges)

			return server.New(cfg.Server.Addr(), server.NewRouter(handler, reg, log), log).Run(ctx)
		},
	}
}
