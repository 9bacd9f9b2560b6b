package clean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreCategory(t *testing.T) {
	rules := DefaultGenreRules()

	tests := []struct {
		genre string
		want  string
	}{
		{"rock", "Rock"},
		{"alt-rock", "Rock"},
		{"k-pop", "Pop"},
		{"reggaeton", "Latin"},
		{"reggae", "Reggae"},
		{"death-metal", "Metal"},
		{"chill", "Moods"},
		{"anime", "Other"},
		{"", "Unknown"},
		{"  ", "Unknown"},
		{"gregorian-chant", "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.genre, func(t *testing.T) {
			assert.Equal(t, tt.want, genreCategory(rules, tt.genre))
		})
	}
}

func TestGenreCategory_OrderMatters(t *testing.T) {
	// "reggaeton" contains "reggae"; the more specific rule is listed first
	// and must win.
	assert.Equal(t, "Latin", genreCategory(DefaultGenreRules(), "reggaeton"))
}

func TestLoadGenreRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- match: cumbia
  category: Latin
- match: rock
  category: Rock
`), 0o644))

	rules, err := LoadGenreRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Latin", genreCategory(rules, "cumbia-pop"))
}

func TestLoadGenreRules_Missing(t *testing.T) {
	_, err := LoadGenreRules(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadGenreRules_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0o644))

	_, err := LoadGenreRules(path)
	assert.Error(t, err)
}
