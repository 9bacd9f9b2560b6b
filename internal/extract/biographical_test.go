package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordline/music-etl/internal/model"
)

func TestBiographicalFromCSV(t *testing.T) {
	input := `artist,country,death,gender,award
Queen,United Kingdom,,male,Grammy Award For Best Rock Album
Aretha Franklin,United States,2018-08-16T00:00:00Z,female,Grammy Lifetime Achievement Award
`
	rows, err := BiographicalFromCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Queen", rows[0].Artist)
	assert.Equal(t, "", rows[0].Death)
	assert.Equal(t, "2018-08-16T00:00:00Z", rows[1].Death)
}

func TestBiographicalFromCSV_MissingColumns(t *testing.T) {
	input := "artist,award\nQueen,Grammy Award\n"

	_, err := BiographicalFromCSV(strings.NewReader(input))

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "biographical", schemaErr.Source)
	assert.Equal(t, []string{"country", "death", "gender"}, schemaErr.Missing)
}

func TestArtistNamesFromCSV(t *testing.T) {
	input := `Queen;David Bowie
"The ""Boss"" Bruce"
AC/DC
Simon & Garfunkel
Queen;David Bowie
`
	names, err := ArtistNamesFromCSV(strings.NewReader(input))
	require.NoError(t, err)

	// Cleaned, deduplicated, sorted.
	assert.Equal(t, []string{
		"AC DC",
		"Queen;David Bowie",
		"Simon and Garfunkel",
		"The Boss Bruce",
	}, names)
}

func TestArtistNamesFromCSV_SkipsEmptyNames(t *testing.T) {
	input := "Queen\n\"  \"\nQueen\n"

	names, err := ArtistNamesFromCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Queen"}, names)
}
