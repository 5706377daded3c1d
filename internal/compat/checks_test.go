package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rock-salt/match-cli/internal/model"
)

func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }

func ptrAge(v model.AgeRestriction) *model.AgeRestriction { return &v }

func TestCheckFinancial(t *testing.T) {
	tests := []struct {
		name       string
		rider      model.Rider
		venue      model.Venue
		wantStatus CheckStatus
		wantScore  int
	}{
		{
			"rider bounds absent",
			model.Rider{},
			model.Venue{TypicalGuaranteeMin: ptrInt64(20_000), TypicalGuaranteeMax: ptrInt64(50_000)},
			StatusUnknown, 0,
		},
		{
			"venue bounds absent",
			model.Rider{GuaranteeMin: ptrInt64(50_000)},
			model.Venue{},
			StatusUnknown, 0,
		},
		{
			"full containment",
			model.Rider{GuaranteeMin: ptrInt64(50_000), GuaranteeMax: ptrInt64(80_000)},
			model.Venue{TypicalGuaranteeMin: ptrInt64(40_000), TypicalGuaranteeMax: ptrInt64(100_000)},
			StatusPass, 100,
		},
		{
			"half overlap floors at 50",
			model.Rider{GuaranteeMin: ptrInt64(50_000), GuaranteeMax: ptrInt64(90_000)},
			model.Venue{TypicalGuaranteeMin: ptrInt64(20_000), TypicalGuaranteeMax: ptrInt64(60_000)},
			StatusPass, 50,
		},
		{
			"point rider ask inside venue range",
			model.Rider{GuaranteeMin: ptrInt64(50_000)},
			model.Venue{TypicalGuaranteeMin: ptrInt64(40_000), TypicalGuaranteeMax: ptrInt64(100_000)},
			StatusPass, 100,
		},
		{
			"rider min above venue max",
			model.Rider{GuaranteeMin: ptrInt64(100_000), GuaranteeMax: ptrInt64(120_000)},
			model.Venue{TypicalGuaranteeMin: ptrInt64(20_000), TypicalGuaranteeMax: ptrInt64(50_000)},
			StatusFail, 0,
		},
		{
			"venue floor above rider ask",
			model.Rider{GuaranteeMin: ptrInt64(30_000), GuaranteeMax: ptrInt64(40_000)},
			model.Venue{TypicalGuaranteeMin: ptrInt64(80_000), TypicalGuaranteeMax: ptrInt64(120_000)},
			StatusPass, 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkFinancial(tt.rider, tt.venue)
			assert.Equal(t, FactorFinancial, got.Factor)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.False(t, got.DealBreaker(), "financial shortfalls are negotiable")
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestCheckStageSize(t *testing.T) {
	tests := []struct {
		name            string
		rider           model.Rider
		venue           model.Venue
		wantStatus      CheckStatus
		wantScore       int
		wantDealBreaker bool
	}{
		{
			"no rider requirement",
			model.Rider{},
			model.Venue{StageWidthFeet: ptrFloat64(24), StageDepthFeet: ptrFloat64(18)},
			StatusUnknown, 0, false,
		},
		{
			"venue dimensions unstated",
			model.Rider{MinStageWidthFeet: ptrFloat64(20), MinStageDepthFeet: ptrFloat64(16)},
			model.Venue{},
			StatusUnknown, 0, false,
		},
		{
			"too small is a deal-breaker",
			model.Rider{MinStageWidthFeet: ptrFloat64(20), MinStageDepthFeet: ptrFloat64(16)},
			model.Venue{StageWidthFeet: ptrFloat64(10), StageDepthFeet: ptrFloat64(10)},
			StatusFail, 0, true,
		},
		{
			"exact fit scores 80",
			model.Rider{MinStageWidthFeet: ptrFloat64(20), MinStageDepthFeet: ptrFloat64(16)},
			model.Venue{StageWidthFeet: ptrFloat64(20), StageDepthFeet: ptrFloat64(16)},
			StatusPass, 80, false,
		},
		{
			"tight margin scales linearly",
			model.Rider{MinStageWidthFeet: ptrFloat64(20), MinStageDepthFeet: ptrFloat64(16)},
			model.Venue{StageWidthFeet: ptrFloat64(24), StageDepthFeet: ptrFloat64(18)},
			StatusPass, 85, false,
		},
		{
			"generous margin caps at 100",
			model.Rider{MinStageWidthFeet: ptrFloat64(20), MinStageDepthFeet: ptrFloat64(16)},
			model.Venue{StageWidthFeet: ptrFloat64(40), StageDepthFeet: ptrFloat64(30)},
			StatusPass, 100, false,
		},
		{
			"width-only requirement",
			model.Rider{MinStageWidthFeet: ptrFloat64(20)},
			model.Venue{StageWidthFeet: ptrFloat64(30)},
			StatusPass, 100, false,
		},
		{
			"one short dimension fails",
			model.Rider{MinStageWidthFeet: ptrFloat64(20), MinStageDepthFeet: ptrFloat64(16)},
			model.Venue{StageWidthFeet: ptrFloat64(30), StageDepthFeet: ptrFloat64(12)},
			StatusFail, 0, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkStageSize(tt.rider, tt.venue)
			assert.Equal(t, FactorStageSize, got.Factor)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantDealBreaker, got.DealBreaker())
		})
	}
}

func TestCheckStageSize_NeverPartial(t *testing.T) {
	// Stage size is binary: it fits or it is a deal-breaker.
	rider := model.Rider{MinStageWidthFeet: ptrFloat64(20), MinStageDepthFeet: ptrFloat64(16)}
	for w := 5.0; w <= 60; w += 2.5 {
		for d := 5.0; d <= 60; d += 2.5 {
			got := checkStageSize(rider, model.Venue{StageWidthFeet: &w, StageDepthFeet: &d})
			assert.NotEqual(t, StatusPartial, got.Status)
		}
	}
}

func TestCheckInputChannels(t *testing.T) {
	tests := []struct {
		name       string
		rider      model.Rider
		venue      model.Venue
		wantStatus CheckStatus
		wantScore  int
	}{
		{"rider unstated", model.Rider{}, model.Venue{InputChannels: ptrInt(16)}, StatusUnknown, 0},
		{"venue unstated", model.Rider{MinInputChannels: ptrInt(8)}, model.Venue{}, StatusUnknown, 0},
		{"shortfall fails", model.Rider{MinInputChannels: ptrInt(16)}, model.Venue{InputChannels: ptrInt(8)}, StatusFail, 0},
		{"exact match", model.Rider{MinInputChannels: ptrInt(8)}, model.Venue{InputChannels: ptrInt(8)}, StatusPass, 80},
		{"half surplus", model.Rider{MinInputChannels: ptrInt(8)}, model.Venue{InputChannels: ptrInt(12)}, StatusPass, 90},
		{"surplus capped", model.Rider{MinInputChannels: ptrInt(8)}, model.Venue{InputChannels: ptrInt(64)}, StatusPass, 100},
		{"zero is a real requirement", model.Rider{MinInputChannels: ptrInt(0)}, model.Venue{InputChannels: ptrInt(4)}, StatusPass, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkInputChannels(tt.rider, tt.venue)
			assert.Equal(t, FactorInputChannels, got.Factor)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.False(t, got.DealBreaker())
		})
	}
}

func TestCheckHouseDrums(t *testing.T) {
	tests := []struct {
		name            string
		rider           model.Rider
		venue           model.Venue
		wantStatus      CheckStatus
		wantScore       int
		wantDealBreaker bool
	}{
		{"requirement unstated", model.Rider{}, model.Venue{HasHouseDrums: true}, StatusUnknown, 0, false},
		{"not required", model.Rider{RequiresHouseDrums: ptrBool(false)}, model.Venue{}, StatusPass, 100, false},
		{"required and provided", model.Rider{RequiresHouseDrums: ptrBool(true)}, model.Venue{HasHouseDrums: true}, StatusPass, 100, false},
		{"backline fallback", model.Rider{RequiresHouseDrums: ptrBool(true)}, model.Venue{HasBackline: true}, StatusPartial, 60, false},
		{"neither is a deal-breaker", model.Rider{RequiresHouseDrums: ptrBool(true)}, model.Venue{}, StatusFail, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkHouseDrums(tt.rider, tt.venue)
			assert.Equal(t, FactorHouseDrums, got.Factor)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantDealBreaker, got.DealBreaker())
		})
	}
}

func TestCheckAgeRestriction(t *testing.T) {
	tests := []struct {
		name            string
		rider           *model.AgeRestriction
		venue           *model.AgeRestriction
		wantStatus      CheckStatus
		wantScore       int
		wantDealBreaker bool
	}{
		{"rider unstated", nil, ptrAge(model.Age21Plus), StatusUnknown, 0, false},
		{"venue unstated", ptrAge(model.Age18Plus), nil, StatusUnknown, 0, false},
		{"exact match", ptrAge(model.Age21Plus), ptrAge(model.Age21Plus), StatusPass, 100, false},
		{"all ages both", ptrAge(model.AgeAllAges), ptrAge(model.AgeAllAges), StatusPass, 100, false},
		{"venue looser than required", ptrAge(model.Age21Plus), ptrAge(model.AgeAllAges), StatusPartial, 70, false},
		{"venue slightly looser", ptrAge(model.Age21Plus), ptrAge(model.Age18Plus), StatusPartial, 70, false},
		{"venue stricter than act allows", ptrAge(model.AgeAllAges), ptrAge(model.Age21Plus), StatusFail, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkAgeRestriction(
				model.Rider{AgeRestriction: tt.rider},
				model.Venue{AgeRestrictions: tt.venue},
			)
			assert.Equal(t, FactorAgeRestriction, got.Factor)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantDealBreaker, got.DealBreaker())
		})
	}
}

func TestEstimateGuaranteeByCapacity(t *testing.T) {
	assert.Equal(t, int64(25_000), EstimateGuaranteeByCapacity(nil))
	assert.Equal(t, int64(25_000), EstimateGuaranteeByCapacity(ptrInt(0)))
	assert.Equal(t, int64(25_000), EstimateGuaranteeByCapacity(ptrInt(150)))
	assert.Equal(t, int64(50_000), EstimateGuaranteeByCapacity(ptrInt(200)))
	assert.Equal(t, int64(120_000), EstimateGuaranteeByCapacity(ptrInt(500)))
	assert.Equal(t, int64(250_000), EstimateGuaranteeByCapacity(ptrInt(1500)))
}
