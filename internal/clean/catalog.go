// Package clean implements the per-source cleaning stages: the catalog,
// awards, and biographical cleaners plus the English-award language filter.
// Each cleaner is pure: one raw table in, one cleaned table out.
package clean

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/model"
)

// track carries the parsed catalog row through the cleaning steps. The
// numeric audio features exist only here; the output record drops them.
type track struct {
	trackID          string
	trackName        string
	artists          string
	albumName        string
	genre            string
	popularity       int
	durationMS       float64
	danceability     float64
	energy           float64
	key              string
	loudness         float64
	mode             string
	speechiness      float64
	acousticness     float64
	instrumentalness float64
	liveness         float64
	valence          float64
	tempo            float64
	timeSignature    string
}

// contentKey identifies a track by everything except track_id and album_name.
type contentKey struct {
	trackName, artists, genre, key, mode, timeSignature                   string
	popularity                                                            int
	durationMS, danceability, energy, loudness, speechiness, acousticness float64
	instrumentalness, liveness, valence, tempo                            float64
}

func (t track) content() contentKey {
	return contentKey{
		trackName: t.trackName, artists: t.artists, genre: t.genre,
		key: t.key, mode: t.mode, timeSignature: t.timeSignature,
		popularity: t.popularity, durationMS: t.durationMS,
		danceability: t.danceability, energy: t.energy, loudness: t.loudness,
		speechiness: t.speechiness, acousticness: t.acousticness,
		instrumentalness: t.instrumentalness, liveness: t.liveness,
		valence: t.valence, tempo: t.tempo,
	}
}

// CleanCatalog runs the full catalog cleaning pipeline. rules may be nil to
// use the built-in genre table. Ordering is stable: surviving rows keep
// their input order.
func CleanCatalog(rows []model.CatalogRow, rules []GenreRule) []model.CatalogTrack {
	if rules == nil {
		rules = DefaultGenreRules()
	}

	zap.L().Info("clean: catalog start", zap.Int("rows", len(rows)))

	rows = dropNullCatalogRows(rows)
	rows = dropExactDuplicates(rows)

	tracks := parseTracks(rows)
	tracks = consolidateByGenreMode(tracks, rules)
	tracks = dropContentDuplicates(tracks)
	tracks = keepMostPopular(tracks)

	out := make([]model.CatalogTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.genre == "Other" || t.genre == "Moods" {
			continue
		}
		durationMin := t.durationMS / 60000
		out = append(out, model.CatalogTrack{
			TrackID:         t.trackID,
			TrackName:       t.trackName,
			Artists:         t.artists,
			Popularity:      t.popularity,
			DurationMin:     durationMin,
			TrackGenre:      t.genre,
			PopularityCat:   PopularityCategory(t.popularity),
			DurationCat:     DurationCategory(durationMin),
			DanceabilityCat: LevelCategory(t.danceability),
			EnergyCat:       LevelCategory(t.energy),
			ValenceCat:      ValenceCategory(t.valence),
			IsLoud:          t.loudness > -5,
			IsLive:          t.liveness > 0.8,
		})
	}

	zap.L().Info("clean: catalog done", zap.Int("rows", len(out)))
	return out
}

// dropNullCatalogRows drops any row with an empty field.
func dropNullCatalogRows(rows []model.CatalogRow) []model.CatalogRow {
	out := rows[:0:0]
	for _, r := range rows {
		if r.TrackID == "" || r.TrackName == "" || r.Artists == "" || r.AlbumName == "" ||
			r.Popularity == "" || r.DurationMS == "" || r.Danceability == "" || r.Energy == "" ||
			r.Key == "" || r.Loudness == "" || r.Mode == "" || r.Speechiness == "" ||
			r.Acousticness == "" || r.Instrumentalness == "" || r.Liveness == "" ||
			r.Valence == "" || r.Tempo == "" || r.TimeSignature == "" || r.TrackGenre == "" {
			continue
		}
		out = append(out, r)
	}
	zap.L().Debug("clean: catalog nulls dropped", zap.Int("remaining", len(out)))
	return out
}

// dropExactDuplicates keeps the first occurrence of each identical row.
func dropExactDuplicates(rows []model.CatalogRow) []model.CatalogRow {
	seen := make(map[model.CatalogRow]struct{}, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// parseTracks converts raw string rows into typed tracks. Rows whose numeric
// fields do not parse are treated as nulls and dropped.
func parseTracks(rows []model.CatalogRow) []track {
	out := make([]track, 0, len(rows))
	var bad int
	for _, r := range rows {
		t := track{
			trackID:       r.TrackID,
			trackName:     r.TrackName,
			artists:       r.Artists,
			albumName:     r.AlbumName,
			genre:         r.TrackGenre,
			key:           strings.TrimSpace(r.Key),
			mode:          strings.TrimSpace(r.Mode),
			timeSignature: strings.TrimSpace(r.TimeSignature),
		}
		ok := true
		parse := func(s string) float64 {
			v, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if e != nil {
				ok = false
			}
			return v
		}
		pop := parse(r.Popularity)
		t.popularity = int(pop)
		t.durationMS = parse(r.DurationMS)
		t.danceability = parse(r.Danceability)
		t.energy = parse(r.Energy)
		t.loudness = parse(r.Loudness)
		t.speechiness = parse(r.Speechiness)
		t.acousticness = parse(r.Acousticness)
		t.instrumentalness = parse(r.Instrumentalness)
		t.liveness = parse(r.Liveness)
		t.valence = parse(r.Valence)
		t.tempo = parse(r.Tempo)
		if !ok {
			bad++
			continue
		}
		out = append(out, t)
	}
	if bad > 0 {
		zap.L().Warn("clean: catalog rows with unparseable numerics dropped", zap.Int("rows", bad))
	}
	return out
}

// consolidateByGenreMode maps each genre to its coarse category, then keeps
// one row per (artists, track_id) group: the first row whose category is the
// group's most frequent one, ties broken by first occurrence.
func consolidateByGenreMode(tracks []track, rules []GenreRule) []track {
	for i := range tracks {
		tracks[i].genre = genreCategory(rules, tracks[i].genre)
	}

	type groupKey struct{ artists, trackID string }
	order := make([]groupKey, 0, len(tracks))
	groups := make(map[groupKey][]track, len(tracks))
	for _, t := range tracks {
		k := groupKey{t.artists, t.trackID}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], t)
	}

	out := make([]track, 0, len(order))
	for _, k := range order {
		group := groups[k]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		counts := make(map[string]int, len(group))
		for _, t := range group {
			counts[t.genre]++
		}
		mode := group[0].genre
		for _, t := range group {
			if counts[t.genre] > counts[mode] {
				mode = t.genre
			}
		}
		for _, t := range group {
			if t.genre == mode {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// dropContentDuplicates removes rows identical in everything but track_id
// and album_name, keeping the first.
func dropContentDuplicates(tracks []track) []track {
	seen := make(map[contentKey]struct{}, len(tracks))
	out := tracks[:0:0]
	for _, t := range tracks {
		k := t.content()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// keepMostPopular keeps, per (track_name, artists) group, the row with the
// maximum popularity; ties go to the first occurrence of the maximum.
func keepMostPopular(tracks []track) []track {
	type groupKey struct{ trackName, artists string }
	order := make([]groupKey, 0, len(tracks))
	best := make(map[groupKey]track, len(tracks))
	for _, t := range tracks {
		k := groupKey{t.trackName, t.artists}
		b, ok := best[k]
		if !ok {
			order = append(order, k)
			best[k] = t
			continue
		}
		if t.popularity > b.popularity {
			best[k] = t
		}
	}
	out := make([]track, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

// PopularityCategory buckets a 0–100 popularity score.
func PopularityCategory(p int) string {
	switch {
	case p < 30:
		return "low"
	case p < 70:
		return "medium"
	default:
		return "high"
	}
}

// DurationCategory buckets a duration in minutes.
func DurationCategory(min float64) string {
	switch {
	case min < 2.5:
		return "short"
	case min <= 4:
		return "medium"
	default:
		return "long"
	}
}

// LevelCategory buckets a [0,1] float (danceability, energy).
func LevelCategory(v float64) string {
	switch {
	case v < 0.33:
		return "low"
	case v < 0.66:
		return "medium"
	default:
		return "high"
	}
}

// ValenceCategory buckets emotional valence.
func ValenceCategory(v float64) string {
	switch {
	case v < 0.2:
		return "very sad"
	case v < 0.4:
		return "sad"
	case v < 0.6:
		return "neutral"
	case v < 0.8:
		return "happy"
	default:
		return "very happy"
	}
}
