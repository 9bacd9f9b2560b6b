package extract

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/db"
	"github.com/chordline/music-etl/internal/fetcher"
	"github.com/chordline/music-etl/internal/model"
	"github.com/rotisserie/eris"
)

// awardColumns are the columns the awards cleaner depends on.
var awardColumns = []string{"year", "title", "category", "nominee", "artist", "workers", "winner"}

// AwardsFromDB reads the raw awards table from Postgres. Column order is
// fixed by the query, so schema errors surface as query failures wrapped in
// a SchemaError-equivalent message from the database.
func AwardsFromDB(ctx context.Context, pool db.Pool, table string) ([]model.AwardRow, error) {
	query := fmt.Sprintf(
		`SELECT COALESCE(year::text, ''), COALESCE(title, ''), COALESCE(category, ''),
		        COALESCE(nominee, ''), COALESCE(artist, ''), COALESCE(workers, ''),
		        COALESCE(winner::text, '')
		 FROM %s`, table)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: query %s", table)
	}
	defer rows.Close()

	var out []model.AwardRow
	for rows.Next() {
		var r model.AwardRow
		if err := rows.Scan(&r.Year, &r.Title, &r.Category, &r.Nominee, &r.Artist, &r.Workers, &r.Winner); err != nil {
			return nil, eris.Wrap(err, "extract: scan award row")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "extract: iterate award rows")
	}

	zap.L().Info("extract: awards read", zap.String("table", table), zap.Int("rows", len(out)))
	return out, nil
}

// AwardsFromCSV parses an awards CSV (the intermediate artifact between
// staged runs) into raw rows. Returns a SchemaError when required columns
// are missing.
func AwardsFromCSV(r io.Reader) ([]model.AwardRow, error) {
	header, rows, err := fetcher.ReadCSV(r, fetcher.CSVOptions{})
	if err != nil {
		return nil, err
	}

	colIdx := mapColumns(header)
	if err := checkSchema("awards", colIdx, awardColumns); err != nil {
		return nil, err
	}

	out := make([]model.AwardRow, 0, len(rows))
	for _, rec := range rows {
		out = append(out, model.AwardRow{
			Year:     getCol(rec, colIdx, "year"),
			Title:    getCol(rec, colIdx, "title"),
			Category: getCol(rec, colIdx, "category"),
			Nominee:  getCol(rec, colIdx, "nominee"),
			Artist:   getCol(rec, colIdx, "artist"),
			Workers:  getCol(rec, colIdx, "workers"),
			Winner:   getCol(rec, colIdx, "winner"),
		})
	}
	return out, nil
}
