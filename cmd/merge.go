package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chordline/music-etl/internal/artifact"
	"github.com/chordline/music-etl/internal/merge"
	"github.com/chordline/music-etl/internal/model"
	"github.com/chordline/music-etl/internal/pipeline"
)

var (
	mergeCutoff int
	mergePolicy string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Clean and merge the extracted raw artifacts",
	Long:  "Reads the three raw artifacts written by extract, runs the cleaners and the fuzzy joins, and writes the merged CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := artifact.Read[model.CatalogRow](tempPath(rawCatalogArtifact))
		if err != nil {
			return err
		}
		awards, err := artifact.Read[model.AwardRow](tempPath(rawAwardsArtifact))
		if err != nil {
			return err
		}
		bio, err := artifact.Read[model.BiographicalRow](tempPath(rawBioArtifact))
		if err != nil {
			return err
		}

		cutoff := mergeCutoff
		if cutoff == 0 {
			cutoff = cfg.Merge.ScoreCutoff
		}
		policyStr := mergePolicy
		if policyStr == "" {
			policyStr = cfg.Merge.JoinPolicy
		}
		policy, err := merge.ParsePolicy(policyStr)
		if err != nil {
			return err
		}
		rules, err := newPipeline(nil).GenreRules()
		if err != nil {
			return err
		}

		merged, err := merge.All(catalog, awards, bio, merge.Options{
			Cutoff:     cutoff,
			Policy:     policy,
			Workers:    cfg.Merge.Workers,
			GenreRules: rules,
		})
		if err != nil {
			return err
		}

		zap.L().Info("merge complete", zap.Int("rows", len(merged)))
		return artifact.Write(tempPath(pipeline.MergedArtifact), merged)
	},
}

func init() {
	mergeCmd.Flags().IntVar(&mergeCutoff, "cutoff", 0, "fuzzy match score cutoff (default from config)")
	mergeCmd.Flags().StringVar(&mergePolicy, "policy", "", "join policy for unmatched rows, inner or outer (default from config)")
	rootCmd.AddCommand(mergeCmd)
}
