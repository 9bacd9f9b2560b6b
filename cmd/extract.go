package main

import (
	"github.com/spf13/cobra"

	"github.com/chordline/music-etl/internal/artifact"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one source into a raw CSV artifact",
	Long:  "Each subcommand pulls one source and writes its raw rows into the temp directory, for staged runs and debugging.",
}

var extractCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Extract the streaming-catalog export",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := newPipeline(nil).ExtractCatalog(cmd.Context())
		if err != nil {
			return err
		}
		return artifact.Write(tempPath(rawCatalogArtifact), rows)
	},
}

var extractAwardsCmd = &cobra.Command{
	Use:   "awards",
	Short: "Extract the raw awards table",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := newPipeline(nil).ExtractAwards(cmd.Context())
		if err != nil {
			return err
		}
		return artifact.Write(tempPath(rawAwardsArtifact), rows)
	},
}

var extractBioCmd = &cobra.Command{
	Use:   "biographical",
	Short: "Extract artist biographies from the knowledge graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := newPipeline(nil).ExtractBiographical(cmd.Context())
		if err != nil {
			return err
		}
		return artifact.Write(tempPath(rawBioArtifact), rows)
	},
}

func init() {
	extractCmd.AddCommand(extractCatalogCmd, extractAwardsCmd, extractBioCmd)
	rootCmd.AddCommand(extractCmd)
}
