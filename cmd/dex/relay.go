package main

import (
	"github.com/qepting91/dex-ai/internal/relay"
	"github.com/spf13/cobra"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Serve POST /gemini, proxying prompts to Gemini",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		gen, err := relay.NewGenAIGenerator(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		return relay.Serve(cmd.Context(), cfg.Port, relay.NewRouter(gen, logger), logger)
	},
}
