package main

import (
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qepting91/dex-ai/internal/ingest"
	"github.com/qepting91/dex-ai/internal/session"
	"github.com/qepting91/dex-ai/internal/tui"
	"github.com/spf13/cobra"
)

var (
	quizRoster string
	quizType   string
	quizLimit  int
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play \"Who's that Pokémon?\"",
	RunE: func(cmd *cobra.Command, args []string) error {
		if quizRoster == "" {
			if err := checkCategory(quizType); err != nil {
				return err
			}
		}
		p, err := newPipeline()
		if err != nil {
			return err
		}

		qs := session.QuizSource{Category: quizType, Limit: quizLimit}
		if quizRoster != "" {
			qs.Names, err = ingest.LoadRoster(quizRoster)
			if err != nil {
				return err
			}
			logger.Info("Roster loaded", "path", quizRoster, "names", len(qs.Names))
		}

		q, err := session.LoadQuiz(cmd.Context(), p.src, p.collector, p.fetcher, qs, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		if err != nil {
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		}

		_, err = tea.NewProgram(tui.NewQuizModel(q, cfg.QuizDelay), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	quizCmd.Flags().StringVar(&quizRoster, "roster", "", "CSV of names to quiz on (header row, name first)")
	quizCmd.Flags().StringVarP(&quizType, "type", "t", "all", "draw the quiz from this type")
	quizCmd.Flags().IntVar(&quizLimit, "limit", 151, "maximum number of Pokémon in the quiz")
}
