package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flow-tools/cbm-insight/pkg/config"
	"github.com/flow-tools/cbm-insight/pkg/server"
	"github.com/flow-tools/cbm-insight/pkg/services/analysis"
	"github.com/flow-tools/cbm-insight/pkg/services/ingest"
	"github.com/flow-tools/cbm-insight/pkg/services/session"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the CBM Insight web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (./config.yaml is picked up when present)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sessions := session.NewStore(cfg.SessionTTL)

	sweeper := cron.New()
	_, err = sweeper.AddFunc("@every 1m", func() {
		if n := sessions.PurgeExpired(); n > 0 {
			logger.Info().Int("purged", n).Msg("expired sessions removed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		MaxUploadBytes:  cfg.MaxUploadBytes,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Sessions: sessions,
			Ingest:   ingest.NewService(),
			Analyzer: analysis.NewAnalyzer(),
		},
	})

	logger.Info().
		Str("session_ttl", cfg.SessionTTL.String()).
		Int64("max_upload_bytes", cfg.MaxUploadBytes).
		Msg("configuration loaded")

	return webAPI.Start()
}
