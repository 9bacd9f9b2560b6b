package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Awards   AwardsConfig   `yaml:"awards" mapstructure:"awards"`
	Wikidata WikidataConfig `yaml:"wikidata" mapstructure:"wikidata"`
	Merge    MergeConfig    `yaml:"merge" mapstructure:"merge"`
	Load     LoadConfig     `yaml:"load" mapstructure:"load"`
	Share    ShareConfig    `yaml:"share" mapstructure:"share"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	TempDir  string         `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// StoreConfig configures the run-history store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CatalogConfig configures the streaming-catalog source.
type CatalogConfig struct {
	// Path is a local CSV or XLSX export. URL is used when Path is empty.
	Path string `yaml:"path" mapstructure:"path"`
	URL  string `yaml:"url" mapstructure:"url"`
	// GenreMapFile optionally overrides the built-in genre→category table.
	GenreMapFile string `yaml:"genre_map_file" mapstructure:"genre_map_file"`
}

// AwardsConfig configures the awards source database.
type AwardsConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Table       string `yaml:"table" mapstructure:"table"`
}

// WikidataConfig configures the biographical SPARQL source.
type WikidataConfig struct {
	Endpoint      string  `yaml:"endpoint" mapstructure:"endpoint"`
	UserAgent     string  `yaml:"user_agent" mapstructure:"user_agent"`
	ArtistsPath   string  `yaml:"artists_path" mapstructure:"artists_path"`
	BatchSize     int     `yaml:"batch_size" mapstructure:"batch_size"`
	MaxQueryBytes int     `yaml:"max_query_bytes" mapstructure:"max_query_bytes"`
	RatePerSec    float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// MergeConfig configures the fuzzy merge stage.
type MergeConfig struct {
	ScoreCutoff int    `yaml:"score_cutoff" mapstructure:"score_cutoff"`
	JoinPolicy  string `yaml:"join_policy" mapstructure:"join_policy"`
	Workers     int    `yaml:"workers" mapstructure:"workers"`
}

// LoadConfig configures the relational sink.
type LoadConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Table       string `yaml:"table" mapstructure:"table"`
}

// ShareConfig configures the file-sharing sink.
type ShareConfig struct {
	FTPAddr  string `yaml:"ftp_addr" mapstructure:"ftp_addr"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Dir      string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MUSICETL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys without a meaningful default still get an empty one so
	// AutomaticEnv picks them up during Unmarshal.
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.genre_map_file", "")
	v.SetDefault("awards.database_url", "")
	v.SetDefault("load.database_url", "")
	v.SetDefault("wikidata.artists_path", "")
	v.SetDefault("share.ftp_addr", "")
	v.SetDefault("share.user", "")
	v.SetDefault("share.password", "")
	v.SetDefault("share.dir", "")
	v.SetDefault("store.path", "music-etl.db")
	v.SetDefault("temp_dir", "data_temp")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("awards.table", "raw_grammy")
	v.SetDefault("load.table", "artists_data")
	v.SetDefault("wikidata.endpoint", "https://query.wikidata.org/sparql")
	v.SetDefault("wikidata.user_agent", "music-etl/1.0 (data@chordline.dev)")
	v.SetDefault("wikidata.batch_size", 80)
	v.SetDefault("wikidata.max_query_bytes", 60000)
	v.SetDefault("wikidata.rate_per_sec", 1.2)
	v.SetDefault("merge.score_cutoff", 90)
	v.SetDefault("merge.join_policy", "inner")
	v.SetDefault("merge.workers", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
