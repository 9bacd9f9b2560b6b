package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordline/music-etl/internal/config"
	"github.com/chordline/music-etl/pkg/wikidata"
)

type fakeWikidata struct {
	facts []wikidata.ArtistFact
	names []string
}

func (f *fakeWikidata) ArtistFacts(_ context.Context, names []string) ([]wikidata.ArtistFact, error) {
	f.names = names
	return f.facts, nil
}

const testCatalogCSV = `track_id,track_name,artists,album_name,popularity,duration_ms,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,time_signature,track_genre
t1,Under Pressure,Queen;David Bowie,Hot Space,81,245000,0.5,0.7,2,-7.1,1,0.06,0.2,0,0.3,0.6,114,4,rock
`

func TestExtractCatalog_FromCSVPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogCSV), 0o644))

	p := New(&config.Config{
		Catalog: config.CatalogConfig{Path: path},
		TempDir: dir,
	}, nil, nil)

	rows, err := p.ExtractCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Queen;David Bowie", rows[0].Artists)
}

func TestExtractCatalog_NoSourceConfigured(t *testing.T) {
	p := New(&config.Config{}, nil, nil)

	_, err := p.ExtractCatalog(context.Background())
	assert.Error(t, err)
}

func TestExtractBiographical(t *testing.T) {
	dir := t.TempDir()
	artists := filepath.Join(dir, "artists.csv")
	require.NoError(t, os.WriteFile(artists, []byte("Queen\nSimon & Garfunkel\nQueen\n"), 0o644))

	fake := &fakeWikidata{facts: []wikidata.ArtistFact{
		{Artist: "Queen", Country: "United Kingdom", Award: "Grammy Award", Gender: "male"},
	}}
	p := New(&config.Config{
		Wikidata: config.WikidataConfig{ArtistsPath: artists},
		TempDir:  dir,
	}, nil, fake)

	rows, err := p.ExtractBiographical(context.Background())
	require.NoError(t, err)

	// Names are cleaned, deduplicated and sorted before querying.
	assert.Equal(t, []string{"Queen", "Simon and Garfunkel"}, fake.names)
	require.Len(t, rows, 1)
	assert.Equal(t, "United Kingdom", rows[0].Country)
}

func TestGenreRules_DefaultWhenUnset(t *testing.T) {
	p := New(&config.Config{}, nil, nil)

	rules, err := p.GenreRules()
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestGenreRules_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genres.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- match: rock\n  category: Rock\n"), 0o644))

	p := New(&config.Config{
		Catalog: config.CatalogConfig{GenreMapFile: path},
	}, nil, nil)

	rules, err := p.GenreRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Rock", rules[0].Category)
}
