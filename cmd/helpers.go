package main

import (
	"context"
	"path/filepath"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/chordline/music-etl/internal/pipeline"
	"github.com/chordline/music-etl/internal/store"
	"github.com/chordline/music-etl/pkg/wikidata"
)

// Intermediate artifact file names under cfg.TempDir. The raw files are what
// extract writes and merge reads; the clean files exist for inspection after
// a transform invocation.
const (
	rawCatalogArtifact = "catalog_raw.csv"
	rawAwardsArtifact  = "awards_raw.csv"
	rawBioArtifact     = "biographical_raw.csv"

	cleanCatalogArtifact = "catalog_clean.csv"
	cleanAwardsArtifact  = "awards_clean.csv"
	cleanBioArtifact     = "biographical_clean.csv"
)

func tempPath(name string) string {
	return filepath.Join(cfg.TempDir, name)
}

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

func newWikidataClient() wikidata.Client {
	return wikidata.NewClient(
		wikidata.WithEndpoint(cfg.Wikidata.Endpoint),
		wikidata.WithUserAgent(cfg.Wikidata.UserAgent),
		wikidata.WithBatchSize(cfg.Wikidata.BatchSize),
		wikidata.WithMaxQueryBytes(cfg.Wikidata.MaxQueryBytes),
		wikidata.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Wikidata.RatePerSec), 1)),
	)
}

func newPipeline(st store.Store) *pipeline.Pipeline {
	return pipeline.New(cfg, st, newWikidataClient())
}
