package main

import (
	"github.com/spf13/cobra"

	"github.com/chordline/music-etl/internal/artifact"
	"github.com/chordline/music-etl/internal/clean"
	"github.com/chordline/music-etl/internal/model"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Clean one extracted source artifact",
	Long:  "Each subcommand reads the raw artifact written by extract and writes the cleaned rows next to it.",
}

var transformCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Clean the extracted catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := artifact.Read[model.CatalogRow](tempPath(rawCatalogArtifact))
		if err != nil {
			return err
		}
		rules, err := newPipeline(nil).GenreRules()
		if err != nil {
			return err
		}
		tracks := clean.CleanCatalog(rows, rules)
		if len(tracks) == 0 {
			return &model.EmptyResultError{Stage: "clean catalog"}
		}
		return artifact.Write(tempPath(cleanCatalogArtifact), tracks)
	},
}

var transformAwardsCmd = &cobra.Command{
	Use:   "awards",
	Short: "Clean the extracted awards table",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := artifact.Read[model.AwardRow](tempPath(rawAwardsArtifact))
		if err != nil {
			return err
		}
		records := clean.CleanAwards(rows)
		if len(records) == 0 {
			return &model.EmptyResultError{Stage: "clean awards"}
		}
		return artifact.Write(tempPath(cleanAwardsArtifact), records)
	},
}

var transformBioCmd = &cobra.Command{
	Use:   "biographical",
	Short: "Clean and aggregate the extracted biographies",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := artifact.Read[model.BiographicalRow](tempPath(rawBioArtifact))
		if err != nil {
			return err
		}
		profiles := clean.CleanBiographical(rows, clean.NewLanguageFilter())
		if len(profiles) == 0 {
			return &model.EmptyResultError{Stage: "clean biographical"}
		}
		return artifact.Write(tempPath(cleanBioArtifact), profiles)
	},
}

func init() {
	transformCmd.AddCommand(transformCatalogCmd, transformAwardsCmd, transformBioCmd)
	rootCmd.AddCommand(transformCmd)
}
