// Package merge implements collaborator-name expansion, the fuzzy joiner,
// and the orchestrator that reconciles the three cleaned sources into one
// deduplicated table.
package merge

import (
	"regexp"
	"strings"
)

// collabSeparatorRe splits a multi-artist credit on the fixed separator set:
// ";", ",", "&", "/", " x ", and "Featuring"/"feat."/"ft." in any case.
var collabSeparatorRe = regexp.MustCompile(`;|,|&|/| [Xx] |(?i: featuring | feat\.| ft\.)`)

// SplitArtists splits a collaborator credit string into individual artist
// names, trimmed and lowercased, empty tokens discarded. An empty input
// yields no names, which drops the row from the expansion.
func SplitArtists(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := collabSeparatorRe.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
