package compat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rock-salt/match-cli/internal/model"
)

func TestRankVenues_SortsByScoreDescending(t *testing.T) {
	rider := demandingRider()

	great := wellEquippedVenue()
	great.ID = "great"

	tight := wellEquippedVenue()
	tight.ID = "tight"
	tight.StageWidthFeet = ptrFloat64(20)
	tight.StageDepthFeet = ptrFloat64(16)
	tight.InputChannels = ptrInt(8)

	tiny := wellEquippedVenue()
	tiny.ID = "tiny"
	tiny.StageWidthFeet = ptrFloat64(10)
	tiny.StageDepthFeet = ptrFloat64(10)

	matches, err := RankVenues(context.Background(), rider, []model.Venue{tiny, tight, great}, DefaultWeights(), 2)
	require.NoError(t, err)
	require.Len(t, matches, 3, "incompatible entries stay in the full list")

	assert.Equal(t, "great", matches[0].Venue.ID)
	assert.Equal(t, "tight", matches[1].Venue.ID)
	assert.Equal(t, "tiny", matches[2].Venue.ID)
	assert.Equal(t, MatchIncompatible, matches[2].Result.Status)
}

func TestRankVenues_StableOnTies(t *testing.T) {
	rider := model.Rider{AgeRestriction: ptrAge(model.Age18Plus)}

	var venues []model.Venue
	for i := 0; i < 10; i++ {
		venues = append(venues, model.Venue{
			ID:              fmt.Sprintf("v%d", i),
			AgeRestrictions: ptrAge(model.Age18Plus),
		})
	}

	matches, err := RankVenues(context.Background(), rider, venues, DefaultWeights(), 4)
	require.NoError(t, err)
	for i, m := range matches {
		assert.Equal(t, fmt.Sprintf("v%d", i), m.Venue.ID)
	}
}

func TestRankVenues_Empty(t *testing.T) {
	matches, err := RankVenues(context.Background(), demandingRider(), nil, DefaultWeights(), 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTopVenues_ExcludesIncompatible(t *testing.T) {
	matches := []VenueMatch{
		{Venue: model.Venue{ID: "a"}, Result: Result{OverallScore: 95, Status: MatchExcellent}},
		{Venue: model.Venue{ID: "b"}, Result: Result{OverallScore: 92, Status: MatchIncompatible}},
		{Venue: model.Venue{ID: "c"}, Result: Result{OverallScore: 75, Status: MatchGood}},
		{Venue: model.Venue{ID: "d"}, Result: Result{OverallScore: 50, Status: MatchPartial}},
	}

	top := TopVenues(matches, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Venue.ID)
	assert.Equal(t, "c", top[1].Venue.ID)

	all := TopVenues(matches, 0)
	assert.Len(t, all, 3, "no limit still drops incompatible entries")
}

func TestRankRiders_SymmetricRanking(t *testing.T) {
	venue := wellEquippedVenue()

	easy := model.Rider{ID: "easy", AgeRestriction: ptrAge(model.Age21Plus)}
	demanding := demandingRider()
	demanding.ID = "demanding"
	blocked := demandingRider()
	blocked.ID = "blocked"
	blocked.MinStageWidthFeet = ptrFloat64(40)

	matches, err := RankRiders(context.Background(), venue, []model.Rider{blocked, demanding, easy}, DefaultWeights(), 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, MatchIncompatible, matches[2].Result.Status)
	assert.Equal(t, "blocked", matches[2].Rider.ID)

	top := TopRiders(matches, 10)
	assert.Len(t, top, 2)
}

func TestRankVenues_MatchesPairwiseEvaluation(t *testing.T) {
	rider := demandingRider()
	venues := []model.Venue{wellEquippedVenue(), {}, {InputChannels: ptrInt(4)}}

	matches, err := RankVenues(context.Background(), rider, venues, DefaultWeights(), 1)
	require.NoError(t, err)

	for _, m := range matches {
		assert.Equal(t, Evaluate(rider, m.Venue, DefaultWeights()), m.Result)
	}
}
