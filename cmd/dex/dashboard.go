package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/qepting91/dex-ai/internal/dashboard"
	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/relay"
	"github.com/qepting91/dex-ai/internal/session"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the stat leaderboard as charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		board := &dashboard.Board{}
		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		dashboard.Mount(r, board, logger)

		// The page answers 503 until the catalog is resolved.
		go func() {
			boards, err := session.LoadLeaderboard(ctx, p.collector, p.fetcher, domain.TrackedStats, cfg.TopN, logger)
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("Leaderboard load failed", "err", err)
				}
				return
			}
			board.Set(boards)
		}()

		return relay.Serve(ctx, cfg.Port, r, logger)
	},
}
