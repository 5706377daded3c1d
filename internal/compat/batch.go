package compat

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/rock-salt/match-cli/internal/config"
	"github.com/rock-salt/match-cli/internal/model"
)

const defaultConcurrency = 8

// VenueMatch pairs a candidate venue with its evaluation result.
type VenueMatch struct {
	Venue  model.Venue `json:"venue"`
	Result Result      `json:"result"`
}

// RiderMatch pairs a candidate rider with its evaluation result.
type RiderMatch struct {
	Rider  model.Rider `json:"rider"`
	Result Result      `json:"result"`
}

// RankVenues evaluates one rider against many venues on a bounded worker
// pool and returns all matches sorted by score descending. Incompatible
// entries stay in the list for transparency; use TopVenues to truncate a
// recommendation surface.
func RankVenues(ctx context.Context, rider model.Rider, venues []model.Venue, weights config.MatchWeights, concurrency int) ([]VenueMatch, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	matches := make([]VenueMatch, len(venues))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range venues {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = VenueMatch{Venue: venues[i], Result: Evaluate(rider, venues[i], weights)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "compat: rank venues")
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.OverallScore > matches[j].Result.OverallScore
	})
	return matches, nil
}

// RankRiders is the symmetric counterpart: one venue against many riders.
func RankRiders(ctx context.Context, venue model.Venue, riders []model.Rider, weights config.MatchWeights, concurrency int) ([]RiderMatch, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	matches := make([]RiderMatch, len(riders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range riders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = RiderMatch{Rider: riders[i], Result: Evaluate(riders[i], venue, weights)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "compat: rank riders")
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.OverallScore > matches[j].Result.OverallScore
	})
	return matches, nil
}

// TopVenues returns up to n matches suitable for a recommendation surface,
// skipping incompatible entries. n <= 0 means no limit.
func TopVenues(matches []VenueMatch, n int) []VenueMatch {
	var top []VenueMatch
	for _, m := range matches {
		if m.Result.Status == MatchIncompatible {
			continue
		}
		top = append(top, m)
		if n > 0 && len(top) == n {
			break
		}
	}
	return top
}

// TopRiders returns up to n compatible rider matches.
func TopRiders(matches []RiderMatch, n int) []RiderMatch {
	var top []RiderMatch
	for _, m := range matches {
		if m.Result.Status == MatchIncompatible {
			continue
		}
		top = append(top, m)
		if n > 0 && len(top) == n {
			break
		}
	}
	return top
}
