package model

import (
	"github.com/rotisserie/eris"
)

// Venue is a venue's published physical and financial capabilities,
// snapshotted at evaluation time. Monetary amounts are in cents; stage
// dimensions in feet.
type Venue struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	Capacity *int `json:"capacity,omitempty"`

	StageWidthFeet *float64 `json:"stage_width_feet,omitempty"`
	StageDepthFeet *float64 `json:"stage_depth_feet,omitempty"`

	InputChannels *int `json:"input_channels,omitempty"`
	HasHouseDrums bool `json:"has_house_drums"`
	HasBackline   bool `json:"has_backline"`

	TypicalGuaranteeMin *int64 `json:"typical_guarantee_min,omitempty"`
	TypicalGuaranteeMax *int64 `json:"typical_guarantee_max,omitempty"`

	AgeRestrictions *AgeRestriction `json:"age_restrictions,omitempty"`
}

// Validate checks internal consistency of an authored venue record.
func (v Venue) Validate() error {
	if v.Capacity != nil && *v.Capacity <= 0 {
		return eris.New("model: venue capacity must be > 0")
	}
	if v.StageWidthFeet != nil && *v.StageWidthFeet <= 0 {
		return eris.New("model: venue stage_width_feet must be > 0")
	}
	if v.StageDepthFeet != nil && *v.StageDepthFeet <= 0 {
		return eris.New("model: venue stage_depth_feet must be > 0")
	}
	if v.InputChannels != nil && *v.InputChannels < 0 {
		return eris.New("model: venue input_channels must be >= 0")
	}
	if v.TypicalGuaranteeMin != nil && *v.TypicalGuaranteeMin < 0 {
		return eris.New("model: venue typical_guarantee_min must be >= 0")
	}
	if v.TypicalGuaranteeMax != nil {
		if *v.TypicalGuaranteeMax < 0 {
			return eris.New("model: venue typical_guarantee_max must be >= 0")
		}
		if v.TypicalGuaranteeMin != nil && *v.TypicalGuaranteeMax < *v.TypicalGuaranteeMin {
			return eris.New("model: venue typical_guarantee_max must be >= typical_guarantee_min")
		}
	}
	if v.AgeRestrictions != nil && !v.AgeRestrictions.Valid() {
		return eris.Errorf("model: venue age_restrictions %q not recognized", *v.AgeRestrictions)
	}
	return nil
}
