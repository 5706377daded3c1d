package compat

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/rock-salt/match-cli/internal/config"
)

// DefaultWeights returns the stock weight table. Financial fit carries the
// most emphasis; callers tune per deployment (e.g. budget-constrained rooms
// weight financial higher).
func DefaultWeights() config.MatchWeights {
	return config.MatchWeights{
		Financial:      30,
		StageSize:      20,
		InputChannels:  15,
		HouseDrums:     20,
		AgeRestriction: 15,
	}
}

// WeightSum returns the sum of all factor weights.
func WeightSum(w config.MatchWeights) float64 {
	return w.Financial + w.StageSize + w.InputChannels + w.HouseDrums + w.AgeRestriction
}

// ValidateWeights checks that a weight table is usable: every weight
// non-negative and at least one positive. The table is normalized at
// aggregation time, so no particular sum is required.
func ValidateWeights(w config.MatchWeights) error {
	var errs []string

	named := map[string]float64{
		FactorFinancial:      w.Financial,
		FactorStageSize:      w.StageSize,
		FactorInputChannels:  w.InputChannels,
		FactorHouseDrums:     w.HouseDrums,
		FactorAgeRestriction: w.AgeRestriction,
	}
	for name, v := range named {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s weight must be >= 0", name))
		}
	}

	if WeightSum(w) <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("compat: weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// factorWeight looks up the weight for a factor identifier.
// Unrecognized factors carry zero weight.
func factorWeight(w config.MatchWeights, factor string) float64 {
	switch factor {
	case FactorFinancial:
		return w.Financial
	case FactorStageSize:
		return w.StageSize
	case FactorInputChannels:
		return w.InputChannels
	case FactorHouseDrums:
		return w.HouseDrums
	case FactorAgeRestriction:
		return w.AgeRestriction
	default:
		return 0
	}
}
