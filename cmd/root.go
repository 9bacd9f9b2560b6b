package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "music-etl",
	Short: "Music metadata merge pipeline",
	Long:  "Extracts a streaming catalog, an awards table, and knowledge-graph biographies, cleans each source, fuzzy-joins them per artist, and loads the merged table.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
