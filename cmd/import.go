package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rock-salt/match-cli/internal/ingest"
)

var (
	importRidersPath string
	importVenuesPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import rider and venue records into the store",
	Long: `Loads records from JSON, CSV, or XLSX files and upserts them into the
configured store. Records without an ID get one minted; records with an ID
are updated in place.

Examples:
  import --venues venues.csv
  import --riders roster.xlsx --venues venues.json`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importRidersPath, "riders", "", "path to a riders file (.json, .csv, or .xlsx)")
	importCmd.Flags().StringVar(&importVenuesPath, "venues", "", "path to a venues file (.json, .csv, or .xlsx)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if importRidersPath == "" && importVenuesPath == "" {
		return eris.New("import: at least one of --riders or --venues is required")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if importRidersPath != "" {
		riders, err := ingest.ReadRiders(importRidersPath)
		if err != nil {
			return err
		}
		for _, r := range riders {
			if _, err := s.PutRider(ctx, r); err != nil {
				return eris.Wrapf(err, "import: rider %q", r.ActName)
			}
		}
		zap.L().Info("riders imported",
			zap.Int("count", len(riders)),
			zap.String("file", importRidersPath),
		)
	}

	if importVenuesPath != "" {
		venues, err := ingest.ReadVenues(importVenuesPath)
		if err != nil {
			return err
		}
		for _, v := range venues {
			if _, err := s.PutVenue(ctx, v); err != nil {
				return eris.Wrapf(err, "import: venue %q", v.Name)
			}
		}
		zap.L().Info("venues imported",
			zap.Int("count", len(venues)),
			zap.String("file", importVenuesPath),
		)
	}

	return nil
}
