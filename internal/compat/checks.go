package compat

import (
	"fmt"
	"math"

	"github.com/rock-salt/match-cli/internal/model"
)

// checkFinancial compares the rider's guarantee range against the venue's
// typical range. A missing max on either side collapses that side to a
// point. No overlap is a fail only when the rider asks for more than the
// venue's ceiling; negotiation is still possible, so it is not a
// deal-breaker.
func checkFinancial(r model.Rider, v model.Venue) Check {
	if (r.GuaranteeMin == nil && r.GuaranteeMax == nil) ||
		(v.TypicalGuaranteeMin == nil && v.TypicalGuaranteeMax == nil) {
		return unknown(FactorFinancial, "Guarantee range not stated on both sides")
	}

	riderLo, riderHi := interval(r.GuaranteeMin, r.GuaranteeMax)
	venueLo, venueHi := interval(v.TypicalGuaranteeMin, v.TypicalGuaranteeMax)

	overlapLo := max(riderLo, venueLo)
	overlapHi := min(riderHi, venueHi)

	if overlapHi < overlapLo {
		if riderLo > venueHi {
			return Check{
				Factor:  FactorFinancial,
				Status:  StatusFail,
				Score:   0,
				Message: fmt.Sprintf("Rider minimum %s exceeds venue typical maximum %s", money(riderLo), money(venueHi)),
			}
		}
		// Venue's typical floor is above the rider's ask; the ask is covered.
		return Check{
			Factor:  FactorFinancial,
			Status:  StatusPass,
			Score:   100,
			Message: fmt.Sprintf("Venue typical range starts at %s, above rider ask %s", money(venueLo), money(riderHi)),
		}
	}

	riderWidth := riderHi - riderLo
	score := 100
	if riderWidth > 0 {
		overlap := overlapHi - overlapLo
		score = int(math.Round(100 * float64(overlap) / float64(riderWidth)))
		if score < 50 {
			score = 50
		}
		if score > 100 {
			score = 100
		}
	}

	return Check{
		Factor:  FactorFinancial,
		Status:  StatusPass,
		Score:   score,
		Message: fmt.Sprintf("Guarantee ranges overlap %s-%s", money(overlapLo), money(overlapHi)),
	}
}

// checkStageSize is binary: the stage fits with some margin, or it is a
// deal-breaker. A rider may state one or both dimensions; every stated
// dimension must be answered by the venue or the factor is unknown.
func checkStageSize(r model.Rider, v model.Venue) Check {
	if r.MinStageWidthFeet == nil && r.MinStageDepthFeet == nil {
		return unknown(FactorStageSize, "Rider states no stage size requirement")
	}

	ratio := math.MaxFloat64
	fits := true

	if r.MinStageWidthFeet != nil {
		if v.StageWidthFeet == nil {
			return unknown(FactorStageSize, "Venue stage width not stated")
		}
		if *v.StageWidthFeet < *r.MinStageWidthFeet {
			fits = false
		}
		ratio = math.Min(ratio, *v.StageWidthFeet / *r.MinStageWidthFeet)
	}
	if r.MinStageDepthFeet != nil {
		if v.StageDepthFeet == nil {
			return unknown(FactorStageSize, "Venue stage depth not stated")
		}
		if *v.StageDepthFeet < *r.MinStageDepthFeet {
			fits = false
		}
		ratio = math.Min(ratio, *v.StageDepthFeet / *r.MinStageDepthFeet)
	}

	if !fits {
		return Check{
			Factor: FactorStageSize,
			Status: StatusFail,
			Score:  0,
			Message: fmt.Sprintf("Stage too small: needs %sx%sft, venue offers %sx%sft",
				feet(r.MinStageWidthFeet), feet(r.MinStageDepthFeet),
				feet(v.StageWidthFeet), feet(v.StageDepthFeet)),
			dealBreaker: true,
		}
	}

	score := 100
	if ratio < 1.5 {
		// Linear 80-100 as the tightest dimension's margin grows from 1.0x to 1.5x.
		score = int(math.Round(80 + (ratio-1.0)/0.5*20))
	}

	return Check{
		Factor: FactorStageSize,
		Status: StatusPass,
		Score:  score,
		Message: fmt.Sprintf("Stage %sx%sft meets %sx%sft requirement",
			feet(v.StageWidthFeet), feet(v.StageDepthFeet),
			feet(r.MinStageWidthFeet), feet(r.MinStageDepthFeet)),
	}
}

// checkInputChannels scores console capacity. A shortfall fails but is not
// a deal-breaker; sound can sometimes be worked around.
func checkInputChannels(r model.Rider, v model.Venue) Check {
	if r.MinInputChannels == nil || v.InputChannels == nil {
		return unknown(FactorInputChannels, "Input channel counts not stated on both sides")
	}

	required := *r.MinInputChannels
	available := *v.InputChannels

	if available < required {
		return Check{
			Factor:  FactorInputChannels,
			Status:  StatusFail,
			Score:   0,
			Message: fmt.Sprintf("Venue console has %d input channels, rider needs %d", available, required),
		}
	}

	if required == 0 {
		return Check{
			Factor:  FactorInputChannels,
			Status:  StatusPass,
			Score:   100,
			Message: "Rider requires no input channels",
		}
	}

	// 80 at an exact match, scaling to 100 at 2x headroom.
	surplus := float64(available-required) / float64(required)
	score := int(math.Round(80 + math.Min(surplus, 1.0)*20))

	return Check{
		Factor:  FactorInputChannels,
		Status:  StatusPass,
		Score:   score,
		Message: fmt.Sprintf("%d input channels available for %d required", available, required),
	}
}

// checkHouseDrums resolves the house drum requirement. A venue-provided
// backline downgrades a missing kit to partial; neither is a deal-breaker
// failure. An unstated requirement leaves the factor unknown so a sparse
// rider contributes no known factors.
func checkHouseDrums(r model.Rider, v model.Venue) Check {
	if r.RequiresHouseDrums == nil {
		return unknown(FactorHouseDrums, "House drum requirement not stated")
	}
	if !*r.RequiresHouseDrums {
		return Check{
			Factor:  FactorHouseDrums,
			Status:  StatusPass,
			Score:   100,
			Message: "House drums not required",
		}
	}
	if v.HasHouseDrums {
		return Check{
			Factor:  FactorHouseDrums,
			Status:  StatusPass,
			Score:   100,
			Message: "Venue provides house drums",
		}
	}
	if v.HasBackline {
		return Check{
			Factor:  FactorHouseDrums,
			Status:  StatusPartial,
			Score:   60,
			Message: "Backline available, confirm drum kit separately",
		}
	}
	return Check{
		Factor:      FactorHouseDrums,
		Status:      StatusFail,
		Score:       0,
		Message:     "House drums required but venue has no drums or backline",
		dealBreaker: true,
	}
}

// checkAgeRestriction compares door policies on the all_ages < 18+ < 21+
// strictness ordering. A venue looser than the rider's requirement can
// usually run a restricted event if asked, so that mismatch is partial;
// a venue locked to a stricter policy than the act allows is a deal-breaker.
func checkAgeRestriction(r model.Rider, v model.Venue) Check {
	if r.AgeRestriction == nil || v.AgeRestrictions == nil {
		return unknown(FactorAgeRestriction, "Age policy not stated on both sides")
	}

	rider := *r.AgeRestriction
	venue := *v.AgeRestrictions

	switch {
	case venue.Strictness() == rider.Strictness():
		return Check{
			Factor:  FactorAgeRestriction,
			Status:  StatusPass,
			Score:   100,
			Message: fmt.Sprintf("Venue policy matches rider requirement (%s)", rider),
		}
	case venue.Strictness() < rider.Strictness():
		return Check{
			Factor:  FactorAgeRestriction,
			Status:  StatusPartial,
			Score:   70,
			Message: fmt.Sprintf("Venue runs %s shows; confirm it can host a %s event", venue, rider),
		}
	default:
		return Check{
			Factor:      FactorAgeRestriction,
			Status:      StatusFail,
			Score:       0,
			Message:     fmt.Sprintf("Venue is %s only; rider requires %s", venue, rider),
			dealBreaker: true,
		}
	}
}

func unknown(factor, msg string) Check {
	return Check{Factor: factor, Status: StatusUnknown, Score: 0, Message: msg}
}

// interval collapses a possibly half-stated monetary range to concrete
// bounds, treating a missing endpoint as equal to the stated one.
func interval(lo, hi *int64) (int64, int64) {
	switch {
	case lo != nil && hi != nil:
		return *lo, *hi
	case lo != nil:
		return *lo, *lo
	default:
		return *hi, *hi
	}
}

func money(cents int64) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func feet(v *float64) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%g", *v)
}
