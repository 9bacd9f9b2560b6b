package extract

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/fetcher"
	"github.com/chordline/music-etl/internal/model"
)

// catalogColumns are the columns the catalog cleaner depends on. The export's
// junk index column ("Unnamed: 0") is tolerated and ignored.
var catalogColumns = []string{
	"track_id", "track_name", "artists", "album_name", "popularity",
	"duration_ms", "danceability", "energy", "key", "loudness", "mode",
	"speechiness", "acousticness", "instrumentalness", "liveness",
	"valence", "tempo", "time_signature", "track_genre",
}

// CatalogFromCSV parses a catalog CSV export into raw rows. Returns a
// SchemaError when required columns are missing.
func CatalogFromCSV(r io.Reader, opts fetcher.CSVOptions) ([]model.CatalogRow, error) {
	header, rows, err := fetcher.ReadCSV(r, opts)
	if err != nil {
		return nil, err
	}
	return catalogRows(header, rows)
}

// CatalogFromXLSX parses a catalog XLSX export into raw rows.
func CatalogFromXLSX(path string) ([]model.CatalogRow, error) {
	header, rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
	if err != nil {
		return nil, err
	}
	return catalogRows(header, rows)
}

func catalogRows(header []string, rows [][]string) ([]model.CatalogRow, error) {
	colIdx := mapColumns(header)
	if err := checkSchema("catalog", colIdx, catalogColumns); err != nil {
		return nil, err
	}

	out := make([]model.CatalogRow, 0, len(rows))
	for _, rec := range rows {
		out = append(out, model.CatalogRow{
			TrackID:          strings.TrimSpace(getCol(rec, colIdx, "track_id")),
			TrackName:        getCol(rec, colIdx, "track_name"),
			Artists:          getCol(rec, colIdx, "artists"),
			AlbumName:        getCol(rec, colIdx, "album_name"),
			Popularity:       getCol(rec, colIdx, "popularity"),
			DurationMS:       getCol(rec, colIdx, "duration_ms"),
			Danceability:     getCol(rec, colIdx, "danceability"),
			Energy:           getCol(rec, colIdx, "energy"),
			Key:              getCol(rec, colIdx, "key"),
			Loudness:         getCol(rec, colIdx, "loudness"),
			Mode:             getCol(rec, colIdx, "mode"),
			Speechiness:      getCol(rec, colIdx, "speechiness"),
			Acousticness:     getCol(rec, colIdx, "acousticness"),
			Instrumentalness: getCol(rec, colIdx, "instrumentalness"),
			Liveness:         getCol(rec, colIdx, "liveness"),
			Valence:          getCol(rec, colIdx, "valence"),
			Tempo:            getCol(rec, colIdx, "tempo"),
			TimeSignature:    getCol(rec, colIdx, "time_signature"),
			TrackGenre:       getCol(rec, colIdx, "track_genre"),
		})
	}

	zap.L().Info("extract: catalog parsed", zap.Int("rows", len(out)))
	return out, nil
}
