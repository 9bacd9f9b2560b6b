// Package model defines the typed records flowing through the pipeline and
// the run-tracking types persisted by the store.
package model

// CatalogRow is one raw row of the streaming-catalog export, as parsed from
// CSV/XLSX. All fields are strings so that missing values survive until the
// cleaner's null handling; an empty string is a null.
type CatalogRow struct {
	TrackID          string `csv:"track_id"`
	TrackName        string `csv:"track_name"`
	Artists          string `csv:"artists"`
	AlbumName        string `csv:"album_name"`
	Popularity       string `csv:"popularity"`
	DurationMS       string `csv:"duration_ms"`
	Danceability     string `csv:"danceability"`
	Energy           string `csv:"energy"`
	Key              string `csv:"key"`
	Loudness         string `csv:"loudness"`
	Mode             string `csv:"mode"`
	Speechiness      string `csv:"speechiness"`
	Acousticness     string `csv:"acousticness"`
	Instrumentalness string `csv:"instrumentalness"`
	Liveness         string `csv:"liveness"`
	Valence          string `csv:"valence"`
	Tempo            string `csv:"tempo"`
	TimeSignature    string `csv:"time_signature"`
	TrackGenre       string `csv:"track_genre"`
}

// CatalogTrack is one cleaned catalog row. The numeric audio-feature columns
// are gone; only identifiers and derived categoricals/booleans remain.
type CatalogTrack struct {
	TrackID         string  `csv:"track_id"`
	TrackName       string  `csv:"track_name"`
	Artists         string  `csv:"artists"`
	Popularity      int     `csv:"popularity"`
	DurationMin     float64 `csv:"duration_min"`
	TrackGenre      string  `csv:"track_genre"`
	PopularityCat   string  `csv:"popularity_cat"`
	DurationCat     string  `csv:"duration_cat"`
	DanceabilityCat string  `csv:"danceability_cat"`
	EnergyCat       string  `csv:"energy_cat"`
	ValenceCat      string  `csv:"valence_cat"`
	IsLoud          bool    `csv:"is_loud"`
	IsLive          bool    `csv:"is_live"`
}

// AwardRow is one raw awards-nomination row as read from the raw table.
type AwardRow struct {
	Year     string `csv:"year"`
	Title    string `csv:"title"`
	Category string `csv:"category"`
	Nominee  string `csv:"nominee"`
	Artist   string `csv:"artist"`
	Workers  string `csv:"workers"`
	Winner   string `csv:"winner"`
}

// AwardRecord is one cleaned awards row. Artist is always non-empty.
type AwardRecord struct {
	Year        int    `csv:"year"`
	Title       string `csv:"title"`
	Category    string `csv:"category"`
	Nominee     string `csv:"nominee"`
	Artist      string `csv:"artist"`
	Workers     string `csv:"workers"`
	IsNominated bool   `csv:"is_nominated"`
}

// BiographicalRow is one raw per-award row from the knowledge graph:
// one row per (artist, award) pair, demographics repeated.
type BiographicalRow struct {
	Artist  string `csv:"artist"`
	Country string `csv:"country"`
	Death   string `csv:"death"`
	Gender  string `csv:"gender"`
	Award   string `csv:"award"`
}

// ArtistProfile is the aggregated biographical record: exactly one row per
// artist, with the English award names collapsed into a sorted joined set.
type ArtistProfile struct {
	Artist     string `csv:"artist"`
	Country    string `csv:"country"`
	Death      string `csv:"death"` // "alive" or "deceased"
	Gender     string `csv:"gender"`
	Award      string `csv:"award"` // "; "-joined sorted distinct awards
	AwardCount int    `csv:"award_count"`
	WonGrammy  string `csv:"won_grammy"` // "Yes" or "No"
}

// MergedRecord is one row of the final table: a catalog (track, artist) pair
// extended with its matched award and biographical fields.
type MergedRecord struct {
	TrackID         string  `csv:"track_id"`
	Artist          string  `csv:"artist"`
	TrackName       string  `csv:"track_name"`
	TrackGenre      string  `csv:"track_genre"`
	Popularity      int     `csv:"popularity"`
	DurationMin     float64 `csv:"duration_min"`
	PopularityCat   string  `csv:"popularity_cat"`
	DurationCat     string  `csv:"duration_cat"`
	DanceabilityCat string  `csv:"danceability_cat"`
	EnergyCat       string  `csv:"energy_cat"`
	ValenceCat      string  `csv:"valence_cat"`
	IsLoud          bool    `csv:"is_loud"`
	IsLive          bool    `csv:"is_live"`

	AwardYear     int    `csv:"year"`
	AwardCategory string `csv:"category"`
	IsNominated   bool   `csv:"is_nominated"`

	Country    string `csv:"country"`
	Gender     string `csv:"gender"`
	Death      string `csv:"death"`
	Award      string `csv:"award"`
	AwardCount int    `csv:"award_count"`
	WonGrammy  string `csv:"won_grammy"`
}
