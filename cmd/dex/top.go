package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/session"
	"github.com/spf13/cobra"
)

var topJSON bool

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the top Pokémon for each base stat",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		boards, err := session.LoadLeaderboard(cmd.Context(), p.collector, p.fetcher, domain.TrackedStats, cfg.TopN, logger)
		if err != nil {
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		}

		if topJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(boards)
		}
		for _, b := range boards {
			fmt.Println(headerStyle.Render("Best in " + b.Label))
			if len(b.Entries) == 0 {
				fmt.Println("  Nothing found.")
			}
			for _, e := range b.Entries {
				star := " "
				if e.Rank == 1 {
					star = "★"
				}
				fmt.Printf("%s %2d. %-20s %4d %s\n", star, e.Rank, e.Name, e.Value, b.Label)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	topCmd.Flags().BoolVar(&topJSON, "json", false, "print boards as JSON")
}
