package clean

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// GenreRule maps a genre substring to a coarse category. Rules are applied
// in order; the first case-insensitive substring match wins.
type GenreRule struct {
	Match    string `yaml:"match"`
	Category string `yaml:"category"`
}

// DefaultGenreRules returns the built-in genre→category table. Order matters:
// "reggaeton" must be checked before "reggae".
func DefaultGenreRules() []GenreRule {
	return []GenreRule{
		{"rock", "Rock"},
		{"pop", "Pop"},
		{"j-pop", "Pop"},
		{"k-pop", "Pop"},
		{"electronic", "Electronic"},
		{"edm", "Electronic"},
		{"techno", "Electronic"},
		{"classical", "Classical"},
		{"opera", "Classical"},
		{"folk", "Folk"},
		{"acoustic", "Folk"},
		{"country", "Folk"},
		{"jazz", "Jazz/Blues"},
		{"blues", "Jazz/Blues"},
		{"soul", "Jazz/Blues"},
		{"latin", "Latin"},
		{"reggaeton", "Latin"},
		{"hip-hop", "Hip-Hop"},
		{"afrobeat", "Hip-Hop"},
		{"metal", "Metal"},
		{"death-metal", "Metal"},
		{"punk", "Punk"},
		{"ska", "Punk"},
		{"reggae", "Reggae"},
		{"happy", "Moods"},
		{"chill", "Moods"},
		{"sad", "Moods"},
		{"french", "Regional"},
		{"german", "Regional"},
		{"spanish", "Regional"},
		{"anime", "Other"},
		{"comedy", "Other"},
		{"disney", "Other"},
	}
}

// LoadGenreRules reads a genre rule table from a YAML file.
func LoadGenreRules(path string) ([]GenreRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "clean: read genre map %s", path)
	}
	var rules []GenreRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, eris.Wrapf(err, "clean: parse genre map %s", path)
	}
	if len(rules) == 0 {
		return nil, eris.Errorf("clean: genre map %s is empty", path)
	}
	return rules, nil
}

// genreCategory maps a raw genre to its coarse category. Empty genre is
// "Unknown"; a genre matching no rule is "Other".
func genreCategory(rules []GenreRule, genre string) string {
	if strings.TrimSpace(genre) == "" {
		return "Unknown"
	}
	lower := strings.ToLower(genre)
	for _, r := range rules {
		if strings.Contains(lower, r.Match) {
			return r.Category
		}
	}
	return "Other"
}
