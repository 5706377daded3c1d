package compat

import (
	"github.com/rock-salt/match-cli/internal/config"
	"github.com/rock-salt/match-cli/internal/model"
)

// Checks runs every factor checker against one rider/venue pair. The order
// is fixed so serialized results are stable; each checker is independent
// and total, returning unknown rather than erroring on missing data.
func Checks(rider model.Rider, venue model.Venue) []Check {
	return []Check{
		checkFinancial(rider, venue),
		checkStageSize(rider, venue),
		checkInputChannels(rider, venue),
		checkHouseDrums(rider, venue),
		checkAgeRestriction(rider, venue),
	}
}

// Evaluate scores a single rider/venue pair under the given weight table.
// It is deterministic and side-effect-free; identical inputs always produce
// identical results.
func Evaluate(rider model.Rider, venue model.Venue, weights config.MatchWeights) Result {
	return Aggregate(Checks(rider, venue), weights)
}
