// Package load writes the merged table into the warehouse.
package load

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/db"
	"github.com/chordline/music-etl/internal/model"
)

// mergedColumns is the warehouse column order for the merged table.
var mergedColumns = []string{
	"track_id", "artist", "track_name", "track_genre", "popularity",
	"duration_min", "popularity_cat", "duration_cat", "danceability_cat",
	"energy_cat", "valence_cat", "is_loud", "is_live",
	"year", "category", "is_nominated",
	"country", "gender", "death", "award", "award_count", "won_grammy",
}

// Merged replaces the contents of table with records: a truncate followed by
// a bulk COPY, both inside one transaction so readers never observe a
// half-loaded table.
func Merged(ctx context.Context, pool db.Pool, table string, records []model.MergedRecord) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "load: begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+pgx.Identifier{table}.Sanitize()); err != nil {
		return 0, eris.Wrapf(err, "load: truncate %s", table)
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.TrackID, r.Artist, r.TrackName, r.TrackGenre, r.Popularity,
			r.DurationMin, r.PopularityCat, r.DurationCat, r.DanceabilityCat,
			r.EnergyCat, r.ValenceCat, r.IsLoud, r.IsLive,
			r.AwardYear, r.AwardCategory, r.IsNominated,
			r.Country, r.Gender, r.Death, r.Award, r.AwardCount, r.WonGrammy,
		})
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, mergedColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "load: COPY INTO %s", table)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "load: commit")
	}

	zap.L().Info("load: merged table replaced", zap.String("table", table), zap.Int64("rows", n))
	return n, nil
}
