package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rock-salt/match-cli/internal/compat"
	"github.com/rock-salt/match-cli/internal/store"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Evaluate compatibility between one rider and one venue",
	Long: `Runs the five compatibility factors (financial, stage size, input
channels, house drums, age restriction) for a single rider/venue pair and
prints the factor breakdown.

Examples:
  # Evaluate from JSON files
  match --rider rider.json --venue venue.json

  # Evaluate stored records
  match --rider-id 8f14e45f --venue-id c9f0f895 --format json

  # Custom weighting
  match --rider rider.json --venue venue.json --weight-financial 50`,
	RunE: runMatch,
}

func init() {
	f := matchCmd.Flags()
	f.String("rider", "", "path to a rider JSON file")
	f.String("rider-id", "", "ID of a stored rider")
	f.String("venue", "", "path to a venue JSON file")
	f.String("venue-id", "", "ID of a stored venue")
	f.String("format", "table", "output format: table or json")
	f.String("output", "", "output file path (default: stdout)")
	registerWeightFlags(matchCmd)

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	weights, err := loadWeights(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("match: --format must be table or json (got %q)", format)
	}

	riderPath, _ := cmd.Flags().GetString("rider")
	riderID, _ := cmd.Flags().GetString("rider-id")
	venuePath, _ := cmd.Flags().GetString("venue")
	venueID, _ := cmd.Flags().GetString("venue-id")

	var s store.Store
	if riderID != "" || venueID != "" {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		s = st
	}

	rider, err := loadRider(ctx, s, riderPath, riderID)
	if err != nil {
		return eris.Wrap(err, "match")
	}
	venue, err := loadVenue(ctx, s, venuePath, venueID)
	if err != nil {
		return eris.Wrap(err, "match")
	}

	result := compat.Evaluate(rider, venue, weights)

	zap.L().Debug("pair evaluated",
		zap.String("rider", rider.ID),
		zap.String("venue", venue.ID),
		zap.Int("score", result.OverallScore),
		zap.String("status", string(result.Status)),
	)

	outputPath, _ := cmd.Flags().GetString("output")
	return outputResult(result, format, outputPath)
}
