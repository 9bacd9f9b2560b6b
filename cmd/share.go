package main

import (
	"github.com/spf13/cobra"

	"github.com/chordline/music-etl/internal/pipeline"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Upload the merged CSV to the FTP drop",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newPipeline(nil).Share(cmd.Context(), tempPath(pipeline.MergedArtifact))
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
}
