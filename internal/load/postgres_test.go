package load

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chordline/music-etl/internal/model"
)

func testMerged() []model.MergedRecord {
	return []model.MergedRecord{
		{
			TrackID: "t1", Artist: "queen", TrackName: "Under Pressure",
			TrackGenre: "Rock", Popularity: 81, AwardYear: 1981,
			IsNominated: true, Country: "United Kingdom", WonGrammy: "Yes",
		},
		{
			TrackID: "t2", Artist: "david bowie", TrackName: "Heroes",
			TrackGenre: "Rock", Popularity: 75, WonGrammy: "No",
		},
	}
}

func TestMerged_TruncateAndCopyInOneTx(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE TABLE "artists_data"`).
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"artists_data"}, mergedColumns).
		WillReturnResult(2)
	mock.ExpectCommit()

	n, err := Merged(context.Background(), mock, "artists_data", testMerged())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerged_TruncateFailureRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE TABLE "artists_data"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = Merged(context.Background(), mock, "artists_data", testMerged())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerged_BeginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(assert.AnError)

	_, err = Merged(context.Background(), mock, "artists_data", nil)
	assert.Error(t, err)
}
