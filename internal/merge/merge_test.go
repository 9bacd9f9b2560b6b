package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordline/music-etl/internal/model"
)

func mergeCatalogRow(trackID, trackName, artists string) model.CatalogRow {
	return model.CatalogRow{
		TrackID: trackID, TrackName: trackName, Artists: artists,
		AlbumName: "Some Album", Popularity: "80", DurationMS: "210000",
		Danceability: "0.5", Energy: "0.6", Key: "5", Loudness: "-6.5",
		Mode: "1", Speechiness: "0.04", Acousticness: "0.1",
		Instrumentalness: "0", Liveness: "0.1", Valence: "0.5",
		Tempo: "120", TimeSignature: "4", TrackGenre: "rock",
	}
}

func mergeAwardRow(nominee, artist string) model.AwardRow {
	return model.AwardRow{
		Year: "1981", Title: "24th Annual GRAMMY Awards",
		Category: "Record Of The Year", Nominee: nominee,
		Artist: artist, Workers: "", Winner: "True",
	}
}

func mergeBioRow(artist string) model.BiographicalRow {
	return model.BiographicalRow{
		Artist: artist, Country: "United Kingdom", Death: "",
		Gender: "male", Award: "Grammy Award For Best Rock Album",
	}
}

func TestAll_EndToEnd(t *testing.T) {
	catalog := []model.CatalogRow{
		mergeCatalogRow("t1", "Under Pressure", "Queen;David Bowie"),
		mergeCatalogRow("t2", "Heroes", "David Bowie"),
	}
	awards := []model.AwardRow{
		mergeAwardRow("Under Pressure", "Queen"),
		mergeAwardRow("Heroes", "David Bowie"),
	}
	bio := []model.BiographicalRow{
		mergeBioRow("Queen"),
		mergeBioRow("David Bowie"),
	}

	out, err := All(catalog, awards, bio, Options{Cutoff: 90, Policy: PolicyInner})
	require.NoError(t, err)

	// t1 expands to two artists, t2 to one; all three match both joins.
	require.Len(t, out, 3)

	byKey := make(map[[2]string]model.MergedRecord, len(out))
	for _, m := range out {
		byKey[[2]string{m.TrackID, m.Artist}] = m
	}

	queen, ok := byKey[[2]string{"t1", "queen"}]
	require.True(t, ok)
	assert.Equal(t, "Under Pressure", queen.TrackName)
	assert.Equal(t, 1981, queen.AwardYear)
	assert.True(t, queen.IsNominated)
	assert.Equal(t, "United Kingdom", queen.Country)
	assert.Equal(t, "Yes", queen.WonGrammy)

	bowie, ok := byKey[[2]string{"t1", "david bowie"}]
	require.True(t, ok)
	assert.Equal(t, "Under Pressure", bowie.TrackName)

	_, ok = byKey[[2]string{"t2", "david bowie"}]
	assert.True(t, ok)
}

func TestAll_InnerPolicyDropsArtistsWithoutAwards(t *testing.T) {
	catalog := []model.CatalogRow{
		mergeCatalogRow("t1", "Under Pressure", "Queen"),
		mergeCatalogRow("t2", "Some Deep Cut", "Unsung Band"),
	}
	awards := []model.AwardRow{mergeAwardRow("Under Pressure", "Queen")}
	bio := []model.BiographicalRow{mergeBioRow("Queen")}

	out, err := All(catalog, awards, bio, Options{Cutoff: 90, Policy: PolicyInner})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "queen", out[0].Artist)
}

func TestAll_OuterPolicyKeepsUnmatched(t *testing.T) {
	catalog := []model.CatalogRow{
		mergeCatalogRow("t1", "Under Pressure", "Queen"),
		mergeCatalogRow("t2", "Some Deep Cut", "Unsung Band"),
	}
	awards := []model.AwardRow{mergeAwardRow("Under Pressure", "Queen")}
	bio := []model.BiographicalRow{mergeBioRow("Queen")}

	out, err := All(catalog, awards, bio, Options{Cutoff: 90, Policy: PolicyOuter})
	require.NoError(t, err)

	require.Len(t, out, 2)
	var unmatched *model.MergedRecord
	for i := range out {
		if out[i].Artist == "unsung band" {
			unmatched = &out[i]
		}
	}
	require.NotNil(t, unmatched)
	assert.Zero(t, unmatched.AwardYear)
	assert.False(t, unmatched.IsNominated)
	assert.Empty(t, unmatched.Country)
	assert.Equal(t, "No", unmatched.WonGrammy)
}

func TestAll_EmptyCleanedSourceFails(t *testing.T) {
	catalog := []model.CatalogRow{mergeCatalogRow("t1", "Under Pressure", "Queen")}
	awards := []model.AwardRow{mergeAwardRow("Under Pressure", "Queen")}

	_, err := All(catalog, awards, nil, Options{Cutoff: 90, Policy: PolicyInner})

	var empty *model.EmptyResultError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "clean biographical", empty.Stage)
}

func TestAll_DeduplicatesByTrackAndArtist(t *testing.T) {
	// The same artist credited twice on one track collapses to one row.
	catalog := []model.CatalogRow{
		mergeCatalogRow("t1", "Under Pressure", "Queen & Queen"),
	}
	awards := []model.AwardRow{mergeAwardRow("Under Pressure", "Queen")}
	bio := []model.BiographicalRow{mergeBioRow("Queen")}

	out, err := All(catalog, awards, bio, Options{Cutoff: 90, Policy: PolicyInner})
	require.NoError(t, err)

	assert.Len(t, out, 1)
}

func TestAll_DefaultsApplied(t *testing.T) {
	catalog := []model.CatalogRow{mergeCatalogRow("t1", "Under Pressure", "Queen")}
	awards := []model.AwardRow{mergeAwardRow("Under Pressure", "Queen")}
	bio := []model.BiographicalRow{mergeBioRow("Queen")}

	out, err := All(catalog, awards, bio, Options{})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
