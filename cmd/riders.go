package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rock-salt/match-cli/internal/compat"
	"github.com/rock-salt/match-cli/internal/store"
)

var ridersCmd = &cobra.Command{
	Use:   "riders",
	Short: "Rank stored riders against a venue",
	Long: `Evaluates every stored rider against the given venue and prints them
best-first. Incompatible riders are excluded unless --all is set.

Examples:
  # Which acts fit this room?
  riders --venue venue.json

  # Full ranking for a stored venue
  riders --venue-id c9f0f895 --all --format json`,
	RunE: runRiders,
}

func init() {
	f := ridersCmd.Flags()
	f.String("venue", "", "path to a venue JSON file")
	f.String("venue-id", "", "ID of a stored venue")
	f.Int("limit", 0, "maximum number of results (0=use config default)")
	f.Bool("all", false, "include incompatible riders")
	f.String("format", "table", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")
	registerWeightFlags(ridersCmd)

	rootCmd.AddCommand(ridersCmd)
}

func runRiders(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	weights, err := loadWeights(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" && format != "json" {
		return eris.Errorf("riders: --format must be table, csv, or json (got %q)", format)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	venuePath, _ := cmd.Flags().GetString("venue")
	venueID, _ := cmd.Flags().GetString("venue-id")
	venue, err := loadVenue(ctx, s, venuePath, venueID)
	if err != nil {
		return eris.Wrap(err, "riders")
	}

	riders, err := s.ListRiders(ctx, store.ListFilter{})
	if err != nil {
		return eris.Wrap(err, "riders: list riders")
	}

	matches, err := compat.RankRiders(ctx, venue, riders, weights, cfg.Match.Concurrency)
	if err != nil {
		return eris.Wrap(err, "riders: rank")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Match.Limit
	}
	all, _ := cmd.Flags().GetBool("all")
	if all {
		if limit > 0 && len(matches) > limit {
			matches = matches[:limit]
		}
	} else {
		matches = compat.TopRiders(matches, limit)
	}

	zap.L().Info("riders ranked",
		zap.String("venue", venue.ID),
		zap.Int("candidates", len(riders)),
		zap.Int("returned", len(matches)),
	)

	outputPath, _ := cmd.Flags().GetString("output")
	return outputRiderMatches(matches, format, outputPath)
}
