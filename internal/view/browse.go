// Package view holds the pure derivations from cached records and view
// state to what a screen shows.
package view

import (
	"strings"

	"github.com/qepting91/dex-ai/internal/domain"
)

// VisibleReferences applies the free-text filter, or the pagination cursor
// when no term is set. A term matches a case-insensitive substring of the
// name, or exactly the numeric id taken from the URL.
func VisibleReferences(refs []domain.Reference, term string, cursor int) []domain.Reference {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return refs[:min(max(cursor, 0), len(refs))]
	}

	var out []domain.Reference
	for _, r := range refs {
		if strings.Contains(strings.ToLower(r.Name), term) || r.ID() == term {
			out = append(out, r)
		}
	}
	return out
}

// NextCursor grows the cursor by step, capped at total.
func NextCursor(cursor, step, total int) int {
	return min(cursor+step, total)
}

// HasMore reports whether the load-more action applies.
func HasMore(term string, cursor, total int) bool {
	return strings.TrimSpace(term) == "" && cursor < total
}

// URLs projects references to their URLs.
func URLs(refs []domain.Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.URL
	}
	return out
}
