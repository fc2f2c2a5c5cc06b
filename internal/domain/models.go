package domain

import (
	"context"
	"strings"
)

// Reference points at a full record. Unique by URL.
type Reference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID returns the numeric identifier encoded in the reference URL.
func (r Reference) ID() string {
	return IDFromURL(r.URL)
}

// Record is the clean creature structure, immutable once fetched.
type Record struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Types  []string       `json:"types"`
	Sprite string         `json:"sprite,omitempty"`
	Stats  map[string]int `json:"stats"`
}

// Stat returns the named base stat, 0 if the record does not carry it.
func (r Record) Stat(name string) int {
	return r.Stats[name]
}

// PrimaryType is the first type tag, or "unknown".
func (r Record) PrimaryType() string {
	if len(r.Types) == 0 {
		return "unknown"
	}
	return r.Types[0]
}

// Source defines the interface for the external creature API
type Source interface {
	ListPage(ctx context.Context, offset, limit int) ([]Reference, error)
	ListCategory(ctx context.Context, category string) ([]Reference, error)
	FetchRecord(ctx context.Context, url string) (Record, error)
	RecordURL(name string) string
}

// IDFromURL returns the last non-empty path segment, e.g.
// ".../pokemon/7/" -> "7".
func IDFromURL(url string) string {
	parts := strings.Split(url, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
