package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test, like t.Chdir in
// newer Go releases.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "music-etl.db", cfg.Store.Path)
	assert.Equal(t, "data_temp", cfg.TempDir)
	assert.Equal(t, "raw_grammy", cfg.Awards.Table)
	assert.Equal(t, "artists_data", cfg.Load.Table)
	assert.Equal(t, 80, cfg.Wikidata.BatchSize)
	assert.Equal(t, 60000, cfg.Wikidata.MaxQueryBytes)
	assert.Equal(t, 90, cfg.Merge.ScoreCutoff)
	assert.Equal(t, "inner", cfg.Merge.JoinPolicy)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MUSICETL_MERGE_SCORE_CUTOFF", "85")
	t.Setenv("MUSICETL_MERGE_JOIN_POLICY", "outer")
	t.Setenv("MUSICETL_AWARDS_DATABASE_URL", "postgres://localhost/test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 85, cfg.Merge.ScoreCutoff)
	assert.Equal(t, "outer", cfg.Merge.JoinPolicy)
	assert.Equal(t, "postgres://localhost/test", cfg.Awards.DatabaseURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("config.yaml", []byte(`
merge:
  score_cutoff: 95
catalog:
  path: /data/catalog.csv
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 95, cfg.Merge.ScoreCutoff)
	assert.Equal(t, "/data/catalog.csv", cfg.Catalog.Path)
	// Untouched keys keep defaults.
	assert.Equal(t, "inner", cfg.Merge.JoinPolicy)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
