package view

import (
	"slices"

	"github.com/qepting91/dex-ai/internal/domain"
)

type Entry struct {
	Rank   int    `json:"rank"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite,omitempty"`
	Value  int    `json:"value"`
}

// Board is the ranking for one stat.
type Board struct {
	Stat    string  `json:"stat"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// TopN sorts descending by stat and keeps the first n. Ties keep source order.
func TopN(records []domain.Record, stat string, n int) []Entry {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.Record) int {
		return b.Stat(stat) - a.Stat(stat)
	})
	sorted = sorted[:min(max(n, 0), len(sorted))]

	entries := make([]Entry, len(sorted))
	for i, r := range sorted {
		entries[i] = Entry{
			Rank:   i + 1,
			ID:     r.ID,
			Name:   r.Name,
			Sprite: r.Sprite,
			Value:  r.Stat(stat),
		}
	}
	return entries
}

// Leaderboard ranks every stat independently, boards in the order of stats.
func Leaderboard(records []domain.Record, stats []string, n int) []Board {
	boards := make([]Board, 0, len(stats))
	for _, s := range stats {
		label := domain.StatLabels[s]
		if label == "" {
			label = s
		}
		boards = append(boards, Board{Stat: s, Label: label, Entries: TopN(records, s, n)})
	}
	return boards
}
