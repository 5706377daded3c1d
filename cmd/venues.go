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

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Rank stored venues against a rider",
	Long: `Evaluates every stored venue against the given rider and prints them
best-first. Incompatible venues are excluded unless --all is set.

Examples:
  # Top matches for a rider file
  venues --rider rider.json

  # Full ranking for a stored rider, as CSV
  venues --rider-id 8f14e45f --all --format csv --output ranking.csv`,
	RunE: runVenues,
}

func init() {
	f := venuesCmd.Flags()
	f.String("rider", "", "path to a rider JSON file")
	f.String("rider-id", "", "ID of a stored rider")
	f.Int("limit", 0, "maximum number of results (0=use config default)")
	f.Bool("all", false, "include incompatible venues")
	f.String("format", "table", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")
	registerWeightFlags(venuesCmd)

	rootCmd.AddCommand(venuesCmd)
}

func runVenues(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	weights, err := loadWeights(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" && format != "json" {
		return eris.Errorf("venues: --format must be table, csv, or json (got %q)", format)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	riderPath, _ := cmd.Flags().GetString("rider")
	riderID, _ := cmd.Flags().GetString("rider-id")
	rider, err := loadRider(ctx, s, riderPath, riderID)
	if err != nil {
		return eris.Wrap(err, "venues")
	}

	venues, err := s.ListVenues(ctx, store.ListFilter{})
	if err != nil {
		return eris.Wrap(err, "venues: list venues")
	}

	matches, err := compat.RankVenues(ctx, rider, venues, weights, cfg.Match.Concurrency)
	if err != nil {
		return eris.Wrap(err, "venues: rank")
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
		matches = compat.TopVenues(matches, limit)
	}

	zap.L().Info("venues ranked",
		zap.String("rider", rider.ID),
		zap.Int("candidates", len(venues)),
		zap.Int("returned", len(matches)),
	)

	outputPath, _ := cmd.Flags().GetString("output")
	return outputVenueMatches(matches, format, outputPath)
}
