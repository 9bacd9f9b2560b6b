package extract

import (
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/fetcher"
	"github.com/chordline/music-etl/internal/model"
	"github.com/chordline/music-etl/pkg/wikidata"
)

// biographicalColumns are the columns the biographical cleaner depends on.
var biographicalColumns = []string{"artist", "country", "death", "gender", "award"}

// BiographicalFromCSV parses a biographical CSV (the intermediate artifact
// written after the SPARQL extract) into raw rows. Returns a SchemaError
// when required columns are missing.
func BiographicalFromCSV(r io.Reader) ([]model.BiographicalRow, error) {
	header, rows, err := fetcher.ReadCSV(r, fetcher.CSVOptions{})
	if err != nil {
		return nil, err
	}

	colIdx := mapColumns(header)
	if err := checkSchema("biographical", colIdx, biographicalColumns); err != nil {
		return nil, err
	}

	out := make([]model.BiographicalRow, 0, len(rows))
	for _, rec := range rows {
		out = append(out, model.BiographicalRow{
			Artist:  getCol(rec, colIdx, "artist"),
			Country: getCol(rec, colIdx, "country"),
			Death:   getCol(rec, colIdx, "death"),
			Gender:  getCol(rec, colIdx, "gender"),
			Award:   getCol(rec, colIdx, "award"),
		})
	}
	return out, nil
}

// ArtistNamesFromCSV reads a headerless single-column file of raw artist
// names and returns the cleaned, deduplicated, sorted name list used to
// drive the SPARQL queries.
func ArtistNamesFromCSV(r io.Reader) ([]string, error) {
	header, rows, err := fetcher.ReadCSV(r, fetcher.CSVOptions{})
	if err != nil {
		return nil, err
	}

	// Headerless file: the first record is data too.
	set := make(map[string]struct{}, len(rows)+1)
	add := func(rec []string) {
		if len(rec) == 0 {
			return
		}
		if name := wikidata.CleanName(rec[0]); name != "" {
			set[name] = struct{}{}
		}
	}
	add(header)
	for _, rec := range rows {
		add(rec)
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	zap.L().Info("extract: unique artist names", zap.Int("count", len(names)))
	return names, nil
}
