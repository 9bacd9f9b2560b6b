// Package extract parses raw source data into typed rows, enforcing the
// required-column contract for each source before any cleaning runs.
package extract

import (
	"sort"
	"strings"

	"github.com/chordline/music-etl/internal/model"
)

// normalizeCol lowercases and trims a column name for header matching.
func normalizeCol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumns builds a normalized column name → index map.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// getCol gets a column value by normalized name, "" when absent.
func getCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[normalizeCol(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// checkSchema returns a SchemaError listing every required column missing
// from the header, or nil when all are present.
func checkSchema(source string, colIdx map[string]int, required []string) error {
	var missing []string
	for _, col := range required {
		if _, ok := colIdx[normalizeCol(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &model.SchemaError{Source: source, Missing: missing}
}
