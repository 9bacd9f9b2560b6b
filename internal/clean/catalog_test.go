package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordline/music-etl/internal/model"
)

func testCatalogRow(mutate func(*model.CatalogRow)) model.CatalogRow {
	r := model.CatalogRow{
		TrackID:          "t1",
		TrackName:        "Bohemian Rhapsody",
		Artists:          "Queen",
		AlbumName:        "A Night at the Opera",
		Popularity:       "85",
		DurationMS:       "354000",
		Danceability:     "0.4",
		Energy:           "0.7",
		Key:              "0",
		Loudness:         "-9.9",
		Mode:             "0",
		Speechiness:      "0.05",
		Acousticness:     "0.27",
		Instrumentalness: "0",
		Liveness:         "0.24",
		Valence:          "0.22",
		Tempo:            "144",
		TimeSignature:    "4",
		TrackGenre:       "rock",
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestCleanCatalog_DropsRowsWithNulls(t *testing.T) {
	rows := []model.CatalogRow{
		testCatalogRow(nil),
		testCatalogRow(func(r *model.CatalogRow) { r.TrackID = "t2"; r.Artists = "" }),
		testCatalogRow(func(r *model.CatalogRow) { r.TrackID = "t3"; r.Loudness = "" }),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].TrackID)
}

func TestCleanCatalog_DropsUnparseableNumerics(t *testing.T) {
	rows := []model.CatalogRow{
		testCatalogRow(nil),
		testCatalogRow(func(r *model.CatalogRow) { r.TrackID = "t2"; r.Popularity = "not-a-number" }),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].TrackID)
}

func TestCleanCatalog_DropsExactDuplicates(t *testing.T) {
	rows := []model.CatalogRow{testCatalogRow(nil), testCatalogRow(nil)}

	out := CleanCatalog(rows, nil)

	assert.Len(t, out, 1)
}

func TestCleanCatalog_ConsolidatesGenreByMode(t *testing.T) {
	// Same (artists, track_id) listed under three genres; two map to Rock,
	// one to Electronic. The Rock row must win.
	rows := []model.CatalogRow{
		testCatalogRow(func(r *model.CatalogRow) { r.TrackGenre = "rock" }),
		testCatalogRow(func(r *model.CatalogRow) { r.TrackGenre = "hard-rock" }),
		testCatalogRow(func(r *model.CatalogRow) { r.TrackGenre = "techno" }),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "Rock", out[0].TrackGenre)
}

func TestCleanCatalog_GenreModeTieKeepsFirst(t *testing.T) {
	rows := []model.CatalogRow{
		testCatalogRow(func(r *model.CatalogRow) { r.TrackGenre = "techno" }),
		testCatalogRow(func(r *model.CatalogRow) { r.TrackGenre = "rock" }),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "Electronic", out[0].TrackGenre)
}

func TestCleanCatalog_DropsContentDuplicatesAcrossAlbums(t *testing.T) {
	// Identical except track_id and album_name: the same recording
	// republished on a compilation.
	rows := []model.CatalogRow{
		testCatalogRow(nil),
		testCatalogRow(func(r *model.CatalogRow) {
			r.TrackID = "t2"
			r.AlbumName = "Greatest Hits"
		}),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].TrackID)
}

func TestCleanCatalog_KeepsMostPopularPerTitleArtist(t *testing.T) {
	rows := []model.CatalogRow{
		testCatalogRow(func(r *model.CatalogRow) { r.Popularity = "40" }),
		testCatalogRow(func(r *model.CatalogRow) {
			r.TrackID = "t2"
			r.AlbumName = "Live at Wembley"
			r.Popularity = "90"
			r.Liveness = "0.95"
		}),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "t2", out[0].TrackID)
	assert.Equal(t, 90, out[0].Popularity)
	assert.True(t, out[0].IsLive)
}

func TestCleanCatalog_FiltersOtherAndMoods(t *testing.T) {
	rows := []model.CatalogRow{
		testCatalogRow(nil),
		testCatalogRow(func(r *model.CatalogRow) {
			r.TrackID = "t2"
			r.TrackName = "Rain Sounds"
			r.TrackGenre = "chill"
		}),
		testCatalogRow(func(r *model.CatalogRow) {
			r.TrackID = "t3"
			r.TrackName = "Mystery Tune"
			r.TrackGenre = "obscure-microgenre"
		}),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].TrackID)
}

func TestCleanCatalog_DerivedColumns(t *testing.T) {
	rows := []model.CatalogRow{testCatalogRow(func(r *model.CatalogRow) {
		r.Loudness = "-3.2"
	})}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 1)
	got := out[0]
	assert.Equal(t, "high", got.PopularityCat)
	assert.InDelta(t, 5.9, got.DurationMin, 0.01)
	assert.Equal(t, "long", got.DurationCat)
	assert.Equal(t, "medium", got.DanceabilityCat)
	assert.Equal(t, "high", got.EnergyCat)
	assert.Equal(t, "sad", got.ValenceCat)
	assert.True(t, got.IsLoud)
	assert.False(t, got.IsLive)
}

func TestCleanCatalog_AlreadyCleanInputPassesThrough(t *testing.T) {
	rows := []model.CatalogRow{
		testCatalogRow(nil),
		testCatalogRow(func(r *model.CatalogRow) {
			r.TrackID = "t2"
			r.TrackName = "Don't Stop Me Now"
			r.Popularity = "88"
		}),
	}

	out := CleanCatalog(rows, nil)

	require.Len(t, out, 2)
	assert.Equal(t, "t1", out[0].TrackID)
	assert.Equal(t, "t2", out[1].TrackID)
}

func TestCategoryBuckets(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"popularity low", PopularityCategory(29), "low"},
		{"popularity medium", PopularityCategory(30), "medium"},
		{"popularity high", PopularityCategory(70), "high"},
		{"duration short", DurationCategory(2.49), "short"},
		{"duration medium", DurationCategory(4.0), "medium"},
		{"duration long", DurationCategory(4.01), "long"},
		{"level low", LevelCategory(0.32), "low"},
		{"level medium", LevelCategory(0.5), "medium"},
		{"level high", LevelCategory(0.66), "high"},
		{"valence very sad", ValenceCategory(0.1), "very sad"},
		{"valence neutral", ValenceCategory(0.5), "neutral"},
		{"valence very happy", ValenceCategory(0.9), "very happy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
