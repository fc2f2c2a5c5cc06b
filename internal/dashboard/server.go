package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/dex-ai/internal/view"
)

// Board holds the latest leaderboard; it is filled once loading finishes.
type Board struct {
	mu     sync.RWMutex
	boards []view.Board
	ready  bool
}

func (b *Board) Set(boards []view.Board) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boards = boards
	b.ready = true
}

func (b *Board) Get() ([]view.Board, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.boards, b.ready
}

// Mount attaches the chart page at "/" and the JSON feed at "/api/top".
func Mount(r chi.Router, board *Board, logger *slog.Logger) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		boards, ready := board.Get()
		if !ready {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Loading leaderboard...\n"))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		for _, b := range boards {
			if err := statChart(b).Render(w); err != nil {
				logger.Error("Chart render failed", "stat", b.Stat, "err", err)
				return
			}
		}
	})

	r.Get("/api/top", func(w http.ResponseWriter, r *http.Request) {
		boards, ready := board.Get()
		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
			return
		}
		json.NewEncoder(w).Encode(boards)
	})
}

func statChart(b view.Board) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Top " + b.Label}),
		charts.WithThemeOpts(opts.Theme{Theme: types.ThemeWesteros}),
	)

	names := make([]string, 0, len(b.Entries))
	values := make([]opts.BarData, 0, len(b.Entries))
	for _, e := range b.Entries {
		names = append(names, e.Name)
		values = append(values, opts.BarData{Value: e.Value})
	}
	bar.SetXAxis(names).AddSeries(b.Label, values)
	return bar
}
