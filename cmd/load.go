package main

import (
	"github.com/spf13/cobra"

	"github.com/chordline/music-etl/internal/artifact"
	"github.com/chordline/music-etl/internal/model"
	"github.com/chordline/music-etl/internal/pipeline"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the merged CSV into the warehouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		merged, err := artifact.Read[model.MergedRecord](tempPath(pipeline.MergedArtifact))
		if err != nil {
			return err
		}
		return newPipeline(nil).Load(cmd.Context(), merged)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
