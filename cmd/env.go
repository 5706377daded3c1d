package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rock-salt/match-cli/internal/compat"
	"github.com/rock-salt/match-cli/internal/config"
	"github.com/rock-salt/match-cli/internal/model"
	"github.com/rock-salt/match-cli/internal/store"
)

// openStore opens the configured record store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// registerWeightFlags adds the shared weight override flags to a command.
func registerWeightFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("weights", "", "path to a YAML weights file (overrides config)")
	f.Float64("weight-financial", 0, "weight for the financial factor")
	f.Float64("weight-stage-size", 0, "weight for the stage size factor")
	f.Float64("weight-input-channels", 0, "weight for the input channels factor")
	f.Float64("weight-house-drums", 0, "weight for the house drums factor")
	f.Float64("weight-age-restriction", 0, "weight for the age restriction factor")
}

// loadWeights builds the effective weights: config defaults, then an optional
// weights file, then per-factor flag overrides.
func loadWeights(cmd *cobra.Command) (config.MatchWeights, error) {
	w := cfg.Match.Weights

	if path, _ := cmd.Flags().GetString("weights"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return w, eris.Wrapf(err, "read weights file %s", path)
		}
		if err := yaml.Unmarshal(data, &w); err != nil {
			return w, eris.Wrapf(err, "parse weights file %s", path)
		}
	}

	overrides := map[string]*float64{
		"weight-financial":       &w.Financial,
		"weight-stage-size":      &w.StageSize,
		"weight-input-channels":  &w.InputChannels,
		"weight-house-drums":     &w.HouseDrums,
		"weight-age-restriction": &w.AgeRestriction,
	}
	for flag, dest := range overrides {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetFloat64(flag)
			*dest = v
		}
	}

	if err := compat.ValidateWeights(w); err != nil {
		return w, err
	}
	return w, nil
}

// loadRider resolves a rider from a JSON file or a store ID. Exactly one of
// path and id must be set.
func loadRider(ctx context.Context, s store.Store, path, id string) (model.Rider, error) {
	switch {
	case path != "" && id != "":
		return model.Rider{}, eris.New("specify either a rider file or a rider ID, not both")
	case path != "":
		var r model.Rider
		if err := readJSONFile(path, &r); err != nil {
			return model.Rider{}, err
		}
		return r, r.Validate()
	case id != "":
		r, err := s.GetRider(ctx, id)
		if err != nil {
			return model.Rider{}, eris.Wrapf(err, "load rider %s", id)
		}
		return *r, nil
	default:
		return model.Rider{}, eris.New("a rider file or rider ID is required")
	}
}

// loadVenue resolves a venue from a JSON file or a store ID.
func loadVenue(ctx context.Context, s store.Store, path, id string) (model.Venue, error) {
	switch {
	case path != "" && id != "":
		return model.Venue{}, eris.New("specify either a venue file or a venue ID, not both")
	case path != "":
		var v model.Venue
		if err := readJSONFile(path, &v); err != nil {
			return model.Venue{}, err
		}
		return v, v.Validate()
	case id != "":
		v, err := s.GetVenue(ctx, id)
		if err != nil {
			return model.Venue{}, eris.Wrapf(err, "load venue %s", id)
		}
		return *v, nil
	default:
		return model.Venue{}, eris.New("a venue file or venue ID is required")
	}
}

func readJSONFile(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return eris.Wrapf(err, "parse %s", path)
	}
	return nil
}
