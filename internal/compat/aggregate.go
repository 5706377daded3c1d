package compat

import (
	"math"

	"github.com/rock-salt/match-cli/internal/config"
)

// Aggregate folds factor checks into a single result using the injected
// weight table. Unknown factors are excluded from both the numerator and
// the denominator, so their weight redistributes proportionally among the
// known factors and the score is always a valid 0-100 integer.
func Aggregate(checks []Check, weights config.MatchWeights) Result {
	var weightSum, weighted float64
	known := 0
	dealBreakers := []string{}

	for _, c := range checks {
		if c.dealBreaker {
			dealBreakers = append(dealBreakers, c.Message)
		}
		if c.Status == StatusUnknown {
			continue
		}
		w := factorWeight(weights, c.Factor)
		weightSum += w
		weighted += w * float64(c.Score)
		known++
	}

	overall := 0
	if known > 0 && weightSum > 0 {
		overall = int(math.Round(weighted / weightSum))
	}

	return Result{
		OverallScore: overall,
		Status:       classify(overall, known, len(dealBreakers)),
		Checks:       checks,
		DealBreakers: dealBreakers,
	}
}

// classify applies the status tiers in precedence order. Deal-breakers
// dominate any score; with zero known factors compatibility cannot be
// certified at all.
func classify(overall, known, dealBreakers int) MatchStatus {
	switch {
	case dealBreakers > 0:
		return MatchIncompatible
	case known == 0:
		return MatchIncompatible
	case overall >= 90:
		return MatchExcellent
	case overall >= 70:
		return MatchGood
	case overall >= 40:
		return MatchPartial
	default:
		return MatchIncompatible
	}
}
