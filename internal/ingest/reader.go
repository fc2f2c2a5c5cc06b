package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Regex for valid creature names (PokeAPI slugs)
var nameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,39}$`)

// LoadRoster reads quiz names from the first column of a CSV with a header
// row. Invalid rows are skipped; duplicates keep their first position.
func LoadRoster(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRoster(f)
}

func ParseRoster(src io.Reader) ([]string, error) {
	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(src))
	r.FieldsPerRecord = -1

	var names []string
	seen := make(map[string]bool)
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read roster: %w", err)
		}
		line++
		if line == 1 {
			continue
		} // Skip header

		// Validation (Fail-Soft)
		if len(record) == 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(record[0]))
		if !nameRegex.MatchString(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
