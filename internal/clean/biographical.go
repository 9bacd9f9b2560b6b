package clean

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/model"
)

// CleanBiographical cleans the raw per-award biographical rows and collapses
// them to one ArtistProfile per artist: demographics by per-column mode,
// awards filtered to English and joined as a sorted distinct set. filter may
// be nil, in which case a fresh LanguageFilter is used.
func CleanBiographical(rows []model.BiographicalRow, filter *LanguageFilter) []model.ArtistProfile {
	if filter == nil {
		filter = NewLanguageFilter()
	}

	zap.L().Info("clean: biographical start", zap.Int("rows", len(rows)))

	cleaned := make([]model.BiographicalRow, 0, len(rows))
	seen := make(map[model.BiographicalRow]struct{}, len(rows))
	for _, r := range rows {
		r.Artist = strings.TrimSpace(r.Artist)
		r.Country = strings.TrimSpace(r.Country)
		r.Gender = strings.TrimSpace(r.Gender)
		r.Award = strings.TrimSpace(r.Award)

		if r.Country == "" {
			r.Country = "Unknown"
		}
		if strings.TrimSpace(r.Death) != "" {
			r.Death = "deceased"
		} else {
			r.Death = "alive"
		}

		// Remaining nulls drop the row.
		if r.Artist == "" || r.Gender == "" || r.Award == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}

		if !filter.IsEnglish(r.Award) {
			continue
		}
		cleaned = append(cleaned, r)
	}

	profiles := aggregateProfiles(cleaned)

	zap.L().Info("clean: biographical done",
		zap.Int("artists", len(profiles)),
		zap.Int("detections_cached", filter.CacheSize()),
	)
	return profiles
}

// aggregateProfiles groups rows by artist. Country, death, and gender take
// the per-group mode (ties to first occurrence); awards collapse to a sorted
// distinct "; "-joined set.
func aggregateProfiles(rows []model.BiographicalRow) []model.ArtistProfile {
	order := make([]string, 0, len(rows))
	groups := make(map[string][]model.BiographicalRow, len(rows))
	for _, r := range rows {
		if _, ok := groups[r.Artist]; !ok {
			order = append(order, r.Artist)
		}
		groups[r.Artist] = append(groups[r.Artist], r)
	}

	out := make([]model.ArtistProfile, 0, len(order))
	for _, artist := range order {
		group := groups[artist]

		countries := make([]string, len(group))
		deaths := make([]string, len(group))
		genders := make([]string, len(group))
		awardSet := make(map[string]struct{}, len(group))
		for i, r := range group {
			countries[i] = r.Country
			deaths[i] = r.Death
			genders[i] = r.Gender
			awardSet[r.Award] = struct{}{}
		}

		awards := make([]string, 0, len(awardSet))
		for a := range awardSet {
			awards = append(awards, a)
		}
		sort.Strings(awards)

		wonGrammy := "No"
		for _, a := range awards {
			if strings.Contains(strings.ToLower(a), "grammy") {
				wonGrammy = "Yes"
				break
			}
		}

		out = append(out, model.ArtistProfile{
			Artist:     artist,
			Country:    modeValue(countries),
			Death:      modeValue(deaths),
			Gender:     modeValue(genders),
			Award:      strings.Join(awards, "; "),
			AwardCount: len(awards),
			WonGrammy:  wonGrammy,
		})
	}
	return out
}

// modeValue returns the most frequent value, ties broken by first occurrence.
func modeValue(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	for _, v := range values {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
