// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pixabay-gallery/internal/gallery"
	"github.com/pdiddy/pixabay-gallery/internal/history"
	"github.com/pdiddy/pixabay-gallery/internal/logger"
	"github.com/pdiddy/pixabay-gallery/internal/metrics"
	"github.com/pdiddy/pixabay-gallery/internal/notify"
	"github.com/pdiddy/pixabay-gallery/internal/pixabay"
	"github.com/pdiddy/pixabay-gallery/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the image search page",
	Long: `Serve runs the search page on --addr. Each visitor gets a session that
tracks the query and page number, so "Load more" continues where the last
request stopped. Every request to Pixabay is logged to the history database
unless --history-db is empty. Prometheus metrics are exposed on /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("history-db", "", "SQLite history database (default data/history.db)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	bindFlags(cmd)
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	log := logger.Init(os.Stderr, logger.ParseLevel(cfg.Server.LogLevel))
	if cfg.Pixabay.APIKey == "" {
		return pixabay.ErrMissingAPIKey
	}

	recorder := metrics.Recorder{}
	if cfg.History.DBPath != "" {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		recorder.Next = store
		log.Info("recording search history", "db", cfg.History.DBPath)
	}

	client := pixabay.NewClient(cfg.Pixabay)
	sessions := gallery.NewSessions(client, recorder, cfg.Server.SessionTTL, log)
	srv := server.New(cfg.Server, sessions, notify.OptionsFrom(cfg.Notify), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
