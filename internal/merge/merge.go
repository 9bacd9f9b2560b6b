package merge

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/clean"
	"github.com/chordline/music-etl/internal/model"
)

// Options configures the full merge.
type Options struct {
	Cutoff     int
	Policy     Policy
	Workers    int
	GenreRules []clean.GenreRule     // nil = built-in table
	Filter     *clean.LanguageFilter // nil = fresh per-run filter
}

// trackArtist is one (track, individual artist) pair after collaborator
// expansion of the catalog.
type trackArtist struct {
	track  model.CatalogTrack
	artist string
}

// awardCredit is one (award row, individual artist) pair after collaborator
// expansion of the awards table.
type awardCredit struct {
	award  model.AwardRecord
	artist string
}

// trackAward is the intermediate result of the catalog-awards join.
type trackAward struct {
	trackArtist
	award *model.AwardRecord // nil under the outer policy when unmatched
}

// All runs the three cleaners, expands collaborators, chains the two fuzzy
// joins (catalog to awards, then biographical), and deduplicates the result by
// (track_id, artist). An empty cleaned or joined intermediate table fails
// the whole merge: no partial output is ever returned.
func All(catalog []model.CatalogRow, awards []model.AwardRow, bio []model.BiographicalRow, opts Options) ([]model.MergedRecord, error) {
	if opts.Cutoff == 0 {
		opts.Cutoff = 90
	}
	if opts.Policy == "" {
		opts.Policy = PolicyInner
	}

	tracks := clean.CleanCatalog(catalog, opts.GenreRules)
	if len(tracks) == 0 {
		return nil, &model.EmptyResultError{Stage: "clean catalog"}
	}
	records := clean.CleanAwards(awards)
	if len(records) == 0 {
		return nil, &model.EmptyResultError{Stage: "clean awards"}
	}
	profiles := clean.CleanBiographical(bio, opts.Filter)
	if len(profiles) == 0 {
		return nil, &model.EmptyResultError{Stage: "clean biographical"}
	}

	trackArtists := expandTracks(tracks)
	awardCredits := expandAwards(records)
	if len(trackArtists) == 0 || len(awardCredits) == 0 {
		return nil, &model.EmptyResultError{Stage: "collaborator expansion"}
	}

	joinOpts := JoinOptions{Cutoff: opts.Cutoff, Policy: opts.Policy, Workers: opts.Workers}

	zap.L().Info("merge: joining catalog with awards",
		zap.Int("left", len(trackArtists)),
		zap.Int("right", len(awardCredits)),
		zap.Int("cutoff", opts.Cutoff),
		zap.String("policy", string(opts.Policy)),
	)
	withAwards := Join(trackArtists, awardCredits, joinOpts,
		func(t trackArtist) string { return t.artist },
		func(a awardCredit) string { return a.artist },
		func(t trackArtist, a *awardCredit) trackAward {
			ta := trackAward{trackArtist: t}
			if a != nil {
				ta.award = &a.award
			}
			return ta
		})
	if len(withAwards) == 0 {
		return nil, &model.EmptyResultError{Stage: "join catalog awards"}
	}

	zap.L().Info("merge: joining biographical",
		zap.Int("left", len(withAwards)),
		zap.Int("right", len(profiles)),
	)
	merged := Join(withAwards, profiles, joinOpts,
		func(t trackAward) string { return t.artist },
		func(p model.ArtistProfile) string { return strings.ToLower(strings.TrimSpace(p.Artist)) },
		combineMerged)
	if len(merged) == 0 {
		return nil, &model.EmptyResultError{Stage: "join biographical"}
	}

	merged = dedupMerged(merged)
	zap.L().Info("merge: complete", zap.Int("rows", len(merged)))
	return merged, nil
}

func expandTracks(tracks []model.CatalogTrack) []trackArtist {
	out := make([]trackArtist, 0, len(tracks))
	for _, t := range tracks {
		for _, name := range SplitArtists(t.Artists) {
			out = append(out, trackArtist{track: t, artist: name})
		}
	}
	return out
}

func expandAwards(records []model.AwardRecord) []awardCredit {
	out := make([]awardCredit, 0, len(records))
	for _, r := range records {
		for _, name := range SplitArtists(r.Artist) {
			out = append(out, awardCredit{award: r, artist: name})
		}
	}
	return out
}

// combineMerged builds the final record from a joined track+award pair and
// its biographical profile. Missing sides leave their columns zero-valued;
// won_grammy is always filled, "No" when no Grammy is present or matched.
func combineMerged(t trackAward, p *model.ArtistProfile) model.MergedRecord {
	m := model.MergedRecord{
		TrackID:         t.track.TrackID,
		Artist:          t.artist,
		TrackName:       t.track.TrackName,
		TrackGenre:      t.track.TrackGenre,
		Popularity:      t.track.Popularity,
		DurationMin:     t.track.DurationMin,
		PopularityCat:   t.track.PopularityCat,
		DurationCat:     t.track.DurationCat,
		DanceabilityCat: t.track.DanceabilityCat,
		EnergyCat:       t.track.EnergyCat,
		ValenceCat:      t.track.ValenceCat,
		IsLoud:          t.track.IsLoud,
		IsLive:          t.track.IsLive,
		WonGrammy:       "No",
	}
	if t.award != nil {
		m.AwardYear = t.award.Year
		m.AwardCategory = t.award.Category
		m.IsNominated = t.award.IsNominated
	}
	if p != nil {
		m.Country = p.Country
		m.Gender = p.Gender
		m.Death = p.Death
		m.Award = p.Award
		m.AwardCount = p.AwardCount
		if p.WonGrammy != "" {
			m.WonGrammy = p.WonGrammy
		}
	}
	return m
}

// dedupMerged drops rows sharing (track_id, artist), keeping the first.
// Guards against one artist matching multiply via near-duplicate rows.
func dedupMerged(rows []model.MergedRecord) []model.MergedRecord {
	type key struct{ trackID, artist string }
	seen := make(map[key]struct{}, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		k := key{r.TrackID, r.Artist}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
