package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/qepting91/dex-ai/internal/collector"
	"github.com/qepting91/dex-ai/internal/config"
	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/fetcher"
	"github.com/qepting91/dex-ai/internal/retry"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "dex",
	Short:         "Pokédex browser, leaderboard, quiz and battle narrator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(configPath)
		return err
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "dex.yaml", "optional YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(browseCmd, topCmd, quizCmd, battleCmd, relayCmd, dashboardCmd, exportCmd)

	// Graceful Shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

// pipeline is the source, collector and fetcher shared by the commands.
type pipeline struct {
	src       domain.Source
	collector *collector.Collector
	fetcher   *fetcher.Fetcher
}

func newPipeline() (*pipeline, error) {
	src, err := collector.NewSource(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Source initialized", "mode", cfg.Mode, "base_url", cfg.BaseURL)

	policy := retry.Policy{Retries: cfg.Retries, Base: cfg.RetryBase}
	return &pipeline{
		src:       src,
		collector: collector.New(src, cfg.PageSize, cfg.CatalogSize, policy, logger),
		fetcher:   fetcher.New(src, cfg.BatchSize, policy, logger),
	}, nil
}

// checkCategory rejects a --type value before any request is made.
func checkCategory(category string) error {
	if !domain.ValidCategory(category) {
		return fmt.Errorf("unknown --type %q (one of: %s)", category, strings.Join(domain.Categories, ", "))
	}
	return nil
}
