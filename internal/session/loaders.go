package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/qepting91/dex-ai/internal/collector"
	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/fetcher"
	"github.com/qepting91/dex-ai/internal/view"
)

// LoadLeaderboard collects the whole catalog, resolves every record and
// ranks each stat. A collection failure yields empty boards; cancellation
// is returned as ctx.Err().
func LoadLeaderboard(ctx context.Context, c *collector.Collector, f *fetcher.Fetcher, stats []string, n int, logger *slog.Logger) ([]view.Board, error) {
	if logger == nil {
		logger = slog.Default()
	}
	refs, err := c.Collect(ctx, domain.CategoryAll)
	if err != nil {
		if canceled(ctx, err) {
			return nil, ctx.Err()
		}
		logger.Warn("Leaderboard collection failed", "err", err)
		return view.Leaderboard(nil, stats, n), nil
	}

	records, err := f.Resolve(ctx, fetcher.NewCache(), view.URLs(refs))
	if err != nil {
		return nil, err
	}
	logger.Info("Leaderboard ready", "references", len(refs), "records", len(records))
	return view.Leaderboard(records, stats, n), nil
}

// QuizSource picks where quiz items come from: explicit names (a roster)
// or every member of a category.
type QuizSource struct {
	Names    []string
	Category string
	Limit    int
}

// LoadQuiz resolves the roster and shuffles it into a Quiz.
func LoadQuiz(ctx context.Context, src domain.Source, c *collector.Collector, f *fetcher.Fetcher, qs QuizSource, rng *rand.Rand) (*view.Quiz, error) {
	var urls []string
	if len(qs.Names) > 0 {
		for _, n := range qs.Names {
			urls = append(urls, src.RecordURL(n))
		}
	} else {
		category := qs.Category
		if category == "" {
			category = domain.CategoryAll
		}
		refs, err := c.Collect(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", category, err)
		}
		urls = view.URLs(refs)
	}
	if qs.Limit > 0 && len(urls) > qs.Limit {
		urls = urls[:qs.Limit]
	}

	records, err := f.Resolve(ctx, fetcher.NewCache(), urls)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no quiz items could be resolved")
	}

	items := make([]view.QuizItem, len(records))
	for i, r := range records {
		items[i] = view.QuizItem{Name: r.Name, Sprite: r.Sprite, Types: r.Types}
	}
	return view.NewQuiz(items, rng), nil
}
