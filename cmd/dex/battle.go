package main

import (
	"fmt"

	"github.com/qepting91/dex-ai/internal/battle"
	"github.com/qepting91/dex-ai/internal/relay"
	"github.com/spf13/cobra"
)

var battleRaw bool

var battleCmd = &cobra.Command{
	Use:   "battle <pokemon1> <pokemon2>",
	Short: "Narrate a battle between two Pokémon with Gemini",
	Long: `Fetches both Pokémon, builds the narrator prompt and sends it to Gemini.

With DEX_RELAY_URL set the prompt goes through a running "dex relay";
otherwise GOOGLE_GEMINI_API_KEY must be set and Gemini is called directly.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}

		var narrator battle.Narrator
		if cfg.RelayURL != "" {
			narrator = relay.NewClient(cfg.RelayURL)
		} else {
			if err := cfg.RequireAPIKey(); err != nil {
				return err
			}
			narrator, err = relay.NewGenAIGenerator(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return err
			}
		}

		text, err := battle.NewSimulator(p.src, narrator).Simulate(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if battleRaw {
			fmt.Println(text)
			return nil
		}
		out, err := battle.Render(text, 80)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	battleCmd.Flags().BoolVar(&battleRaw, "raw", false, "print the Markdown without rendering")
}
