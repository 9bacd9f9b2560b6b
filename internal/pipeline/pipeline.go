// Package pipeline orchestrates the full extract, merge, load and share run.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chordline/music-etl/internal/artifact"
	"github.com/chordline/music-etl/internal/clean"
	"github.com/chordline/music-etl/internal/config"
	"github.com/chordline/music-etl/internal/db"
	"github.com/chordline/music-etl/internal/extract"
	"github.com/chordline/music-etl/internal/fetcher"
	"github.com/chordline/music-etl/internal/load"
	"github.com/chordline/music-etl/internal/merge"
	"github.com/chordline/music-etl/internal/model"
	"github.com/chordline/music-etl/internal/share"
	"github.com/chordline/music-etl/internal/store"
	"github.com/chordline/music-etl/pkg/wikidata"
)

// MergedArtifact is the file name of the final merged CSV in the temp dir.
const MergedArtifact = "merged.csv"

// Pipeline wires the sources, the merge and the sinks together.
type Pipeline struct {
	cfg      *config.Config
	store    store.Store
	wikidata wikidata.Client
	http     *fetcher.HTTPFetcher
}

// New creates a Pipeline. store may be nil when run tracking is not wanted.
func New(cfg *config.Config, st store.Store, wd wikidata.Client) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    st,
		wikidata: wd,
		http:     fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
	}
}

// Run executes the whole pipeline and records the outcome in the store.
func (p *Pipeline) Run(ctx context.Context) (*model.RunResult, error) {
	start := time.Now()

	var run *model.Run
	if p.store != nil {
		var err error
		run, err = p.store.CreateRun(ctx)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: create run")
		}
		if err := p.store.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return nil, eris.Wrap(err, "pipeline: mark run running")
		}
		zap.L().Info("pipeline: run started", zap.String("run_id", run.ID))
	}

	result, err := p.run(ctx)
	result.DurationSecs = time.Since(start).Seconds()

	if p.store != nil {
		status := model.RunStatusComplete
		if err != nil {
			status = model.RunStatusFailed
			result.Error = err.Error()
		}
		if uerr := p.store.UpdateRunResult(ctx, run.ID, status, result); uerr != nil {
			zap.L().Error("pipeline: record run result", zap.Error(uerr))
		}
	}
	return result, err
}

func (p *Pipeline) run(ctx context.Context) (*model.RunResult, error) {
	result := &model.RunResult{}

	var (
		catalog []model.CatalogRow
		awards  []model.AwardRow
		bio     []model.BiographicalRow
	)

	// The three sources are independent; extract them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := p.ExtractCatalog(gctx)
		if err != nil {
			return err
		}
		catalog = rows
		return nil
	})
	g.Go(func() error {
		rows, err := p.ExtractAwards(gctx)
		if err != nil {
			return err
		}
		awards = rows
		return nil
	})
	g.Go(func() error {
		rows, err := p.ExtractBiographical(gctx)
		if err != nil {
			return err
		}
		bio = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.CatalogRows = len(catalog)
	result.AwardRows = len(awards)
	result.BiographicalRows = len(bio)

	rules, err := p.GenreRules()
	if err != nil {
		return result, err
	}
	policy, err := merge.ParsePolicy(p.cfg.Merge.JoinPolicy)
	if err != nil {
		return result, err
	}

	merged, err := merge.All(catalog, awards, bio, merge.Options{
		Cutoff:     p.cfg.Merge.ScoreCutoff,
		Policy:     policy,
		Workers:    p.cfg.Merge.Workers,
		GenreRules: rules,
	})
	if err != nil {
		return result, err
	}
	result.MergedRows = len(merged)

	mergedPath := filepath.Join(p.cfg.TempDir, MergedArtifact)
	if err := artifact.Write(mergedPath, merged); err != nil {
		return result, err
	}

	if p.cfg.Load.DatabaseURL != "" {
		if err := p.Load(ctx, merged); err != nil {
			return result, err
		}
		result.Loaded = true
	}

	if p.cfg.Share.FTPAddr != "" {
		if err := p.Share(ctx, mergedPath); err != nil {
			return result, err
		}
		result.Shared = true
	}

	zap.L().Info("pipeline: run complete",
		zap.Int("catalog_rows", result.CatalogRows),
		zap.Int("award_rows", result.AwardRows),
		zap.Int("biographical_rows", result.BiographicalRows),
		zap.Int("merged_rows", result.MergedRows))
	return result, nil
}

// ExtractCatalog reads the catalog export from the configured local path or,
// when none is set, downloads it first.
func (p *Pipeline) ExtractCatalog(ctx context.Context) ([]model.CatalogRow, error) {
	path := p.cfg.Catalog.Path
	if path == "" {
		if p.cfg.Catalog.URL == "" {
			return nil, eris.New("pipeline: no catalog path or url configured")
		}
		path = filepath.Join(p.cfg.TempDir, "catalog_download.csv")
		if err := os.MkdirAll(p.cfg.TempDir, 0o755); err != nil {
			return nil, eris.Wrap(err, "pipeline: create temp dir")
		}
		if _, err := p.http.DownloadToFile(ctx, p.cfg.Catalog.URL, path); err != nil {
			return nil, err
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return extract.CatalogFromXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: open catalog %s", path)
	}
	defer func() { _ = f.Close() }()
	return extract.CatalogFromCSV(f, fetcher.CSVOptions{})
}

// ExtractAwards reads the raw awards table from the configured database.
func (p *Pipeline) ExtractAwards(ctx context.Context) ([]model.AwardRow, error) {
	if p.cfg.Awards.DatabaseURL == "" {
		return nil, eris.New("pipeline: no awards database configured")
	}
	pool, err := db.Connect(ctx, p.cfg.Awards.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return extract.AwardsFromDB(ctx, pool, p.cfg.Awards.Table)
}

// ExtractBiographical reads the raw artist-name list, cleans it, and fetches
// biographical facts from the knowledge graph.
func (p *Pipeline) ExtractBiographical(ctx context.Context) ([]model.BiographicalRow, error) {
	if p.cfg.Wikidata.ArtistsPath == "" {
		return nil, eris.New("pipeline: no artists path configured")
	}
	f, err := os.Open(p.cfg.Wikidata.ArtistsPath)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: open artists %s", p.cfg.Wikidata.ArtistsPath)
	}
	defer func() { _ = f.Close() }()

	names, err := extract.ArtistNamesFromCSV(f)
	if err != nil {
		return nil, err
	}

	facts, err := p.wikidata.ArtistFacts(ctx, names)
	if err != nil {
		return nil, err
	}

	rows := make([]model.BiographicalRow, 0, len(facts))
	for _, fact := range facts {
		rows = append(rows, model.BiographicalRow{
			Artist:  fact.Artist,
			Country: fact.Country,
			Death:   fact.Death,
			Gender:  fact.Gender,
			Award:   fact.Award,
		})
	}
	return rows, nil
}

// GenreRules returns the configured genre table, falling back to the
// built-in one.
func (p *Pipeline) GenreRules() ([]clean.GenreRule, error) {
	if p.cfg.Catalog.GenreMapFile == "" {
		return nil, nil
	}
	return clean.LoadGenreRules(p.cfg.Catalog.GenreMapFile)
}

// Load writes the merged records into the warehouse table.
func (p *Pipeline) Load(ctx context.Context, merged []model.MergedRecord) error {
	pool, err := db.Connect(ctx, p.cfg.Load.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	_, err = load.Merged(ctx, pool, p.cfg.Load.Table, merged)
	return err
}

// Share uploads the merged artifact to the configured FTP drop.
func (p *Pipeline) Share(ctx context.Context, mergedPath string) error {
	u := share.NewUploader(share.Options{
		Host:     p.cfg.Share.FTPAddr,
		User:     p.cfg.Share.User,
		Password: p.cfg.Share.Password,
		Dir:      p.cfg.Share.Dir,
	})
	return u.UploadFile(ctx, mergedPath)
}
