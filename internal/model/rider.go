// Package model defines the rider and venue records the matching engine consumes.
package model

import (
	"github.com/rotisserie/eris"
)

// AgeRestriction is a door policy, ordered by strictness.
type AgeRestriction string

const (
	AgeAllAges AgeRestriction = "all_ages"
	Age18Plus  AgeRestriction = "18+"
	Age21Plus  AgeRestriction = "21+"
)

// Strictness returns the policy's position in the all_ages < 18+ < 21+
// ordering. Unrecognized values sort below all_ages.
func (a AgeRestriction) Strictness() int {
	switch a {
	case AgeAllAges:
		return 0
	case Age18Plus:
		return 1
	case Age21Plus:
		return 2
	default:
		return -1
	}
}

// Valid reports whether a is one of the recognized policies.
func (a AgeRestriction) Valid() bool {
	return a.Strictness() >= 0
}

// Rider is a performing act's published touring terms, snapshotted at
// evaluation time. Monetary amounts are in cents; stage dimensions in feet.
// Pointer fields distinguish "not stated" from a real zero requirement.
type Rider struct {
	ID      string `json:"id,omitempty"`
	ActName string `json:"act_name,omitempty"`

	GuaranteeMin *int64 `json:"guarantee_min,omitempty"`
	GuaranteeMax *int64 `json:"guarantee_max,omitempty"`

	MinStageWidthFeet *float64 `json:"min_stage_width_feet,omitempty"`
	MinStageDepthFeet *float64 `json:"min_stage_depth_feet,omitempty"`

	MinInputChannels   *int  `json:"min_input_channels,omitempty"`
	RequiresHouseDrums *bool `json:"requires_house_drums,omitempty"`

	AgeRestriction *AgeRestriction `json:"age_restriction,omitempty"`
}

// Validate checks internal consistency of an authored rider record.
// The engine itself never validates; this guards the import and HTTP paths.
func (r Rider) Validate() error {
	if r.GuaranteeMin != nil && *r.GuaranteeMin < 0 {
		return eris.New("model: rider guarantee_min must be >= 0")
	}
	if r.GuaranteeMax != nil {
		if *r.GuaranteeMax < 0 {
			return eris.New("model: rider guarantee_max must be >= 0")
		}
		if r.GuaranteeMin != nil && *r.GuaranteeMax < *r.GuaranteeMin {
			return eris.New("model: rider guarantee_max must be >= guarantee_min")
		}
	}
	if r.MinStageWidthFeet != nil && *r.MinStageWidthFeet <= 0 {
		return eris.New("model: rider min_stage_width_feet must be > 0")
	}
	if r.MinStageDepthFeet != nil && *r.MinStageDepthFeet <= 0 {
		return eris.New("model: rider min_stage_depth_feet must be > 0")
	}
	if r.MinInputChannels != nil && *r.MinInputChannels < 0 {
		return eris.New("model: rider min_input_channels must be >= 0")
	}
	if r.AgeRestriction != nil && !r.AgeRestriction.Valid() {
		return eris.Errorf("model: rider age_restriction %q not recognized", *r.AgeRestriction)
	}
	return nil
}
