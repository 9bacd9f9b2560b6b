package clean

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/model"
)

// dropCategories are award categories whose rows cannot be safely imputed
// when both artist and workers are missing: ensemble and classical-soloist
// categories where the nominee names a work, not a person.
var dropCategories = map[string]struct{}{
	"Best Chamber Music Performance":                              {},
	"Best Classical Vocal Soloist Performance":                    {},
	"Best Classical Vocal Performance":                            {},
	"Best Small Ensemble Performance (With Or Without Conductor)": {},
	"Best Instrumental Soloist Performance (With Orchestra)":      {},
	"Best Instrumental Soloist(S) Performance (With Orchestra)":   {},
	"Most Promising New Classical Recording Artist":               {},
	"Best New Classical Artist":                                   {},
}

// nomineeIsArtistCategories are categories where the nominee field names the
// artist directly, so it is taken verbatim.
var nomineeIsArtistCategories = map[string]struct{}{
	"Best New Artist":                     {},
	"Best New Artist Of The Year":         {},
	"Producer Of The Year":                {},
	"Producer Of The Year, Non-Classical": {},
	"Producer Of The Year, Classical":     {},
	"Classical Producer Of The Year":      {},
	"Remixer Of The Year, Non-Classical":  {},
}

var (
	// "Song Title - Artist Name" (hyphen or en dash).
	hyphenPrefixRe = regexp.MustCompile(`^(.*?)\s+[-–]\s+`)
	// Trailing parenthesized name at the end of workers: "... (John Smith)".
	workersParenRe = regexp.MustCompile(`\(([^()]+)\)\s*$`)
	// "Name, soloist" / "Name, composer" / "Name, conductor" / "Name, artist".
	workersRoleRe = regexp.MustCompile(`(?i)^(.*?),\s*(?:soloist|composer|conductor|artist)`)
	// Leading clause up to and including a featuring/&/and joiner.
	workersFeatRe = regexp.MustCompile(`(?i)^([^,;]+(?:\s(?:featuring|feat\.|ft\.|&|and)\s[^,;]+)?)`)

	nonImputableWords = []string{"album", "song", "works of"}
)

// CleanAwards cleans the raw awards table: drops rows without a nominee,
// drops denylisted categories that cannot be imputed, fills missing artists
// via the cascading imputation rules, and derives is_nominated from the
// winner marker. Every returned row has a non-empty artist.
func CleanAwards(rows []model.AwardRow) []model.AwardRecord {
	zap.L().Info("clean: awards start", zap.Int("rows", len(rows)))

	out := make([]model.AwardRecord, 0, len(rows))
	var dropped int
	for _, r := range rows {
		nominee := strings.TrimSpace(r.Nominee)
		if nominee == "" {
			dropped++
			continue
		}

		artist := strings.TrimSpace(r.Artist)
		workers := strings.TrimSpace(r.Workers)
		category := strings.TrimSpace(r.Category)

		if artist == "" && workers == "" {
			if _, ok := dropCategories[category]; ok {
				dropped++
				continue
			}
		}

		if artist == "" {
			artist = imputeFromNominee(category, nominee)
		}
		if artist == "" && workers != "" {
			artist = imputeFromWorkers(workers)
		}
		if artist == "" {
			dropped++
			continue
		}

		if artist == "(Various Artists)" {
			artist = "Various Artists"
		}

		year, _ := strconv.Atoi(strings.TrimSpace(r.Year))
		out = append(out, model.AwardRecord{
			Year:        year,
			Title:       strings.TrimSpace(r.Title),
			Category:    category,
			Nominee:     nominee,
			Artist:      artist,
			Workers:     workers,
			IsNominated: strings.TrimSpace(r.Winner) != "",
		})
	}

	zap.L().Info("clean: awards done", zap.Int("rows", len(out)), zap.Int("dropped", dropped))
	return out
}

// imputeFromNominee derives an artist from the nominee field. Returns ""
// when the nominee looks like a work title that names no artist.
func imputeFromNominee(category, nominee string) string {
	if _, ok := nomineeIsArtistCategories[category]; ok {
		return nominee
	}
	if m := hyphenPrefixRe.FindStringSubmatch(nominee); m != nil {
		// Known-lossy: when the nominee is "Title - Artist" this takes
		// the title.
		return strings.TrimSpace(m[1])
	}
	lower := strings.ToLower(nominee)
	for _, w := range nonImputableWords {
		if strings.Contains(lower, w) {
			return ""
		}
	}
	if len(strings.Fields(nominee)) > 3 {
		return ""
	}
	return nominee
}

// imputeFromWorkers derives an artist from the workers credit string.
func imputeFromWorkers(workers string) string {
	if m := workersParenRe.FindStringSubmatch(workers); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := workersRoleRe.FindStringSubmatch(workers); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := workersFeatRe.FindStringSubmatch(workers); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(workers)
}
