// Package compat decides whether a rider's published requirements are
// satisfiable by a venue's published capabilities, and quantifies the fit.
// Every function here is pure: missing data degrades a factor to unknown
// instead of failing the evaluation.
package compat

// Factor identifiers. These double as the keys callers use when overriding
// weights and as the stable `factor` values on the wire.
const (
	FactorFinancial      = "financial"
	FactorStageSize      = "stage_size"
	FactorInputChannels  = "input_channels"
	FactorHouseDrums     = "house_drums"
	FactorAgeRestriction = "age_restriction"
)

// CheckStatus is the outcome of a single factor evaluation.
type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusPartial CheckStatus = "partial"
	StatusFail    CheckStatus = "fail"
	StatusUnknown CheckStatus = "unknown"
)

// MatchStatus classifies the aggregate outcome for a rider/venue pair.
type MatchStatus string

const (
	MatchExcellent    MatchStatus = "excellent"
	MatchGood         MatchStatus = "good"
	MatchPartial      MatchStatus = "partial"
	MatchIncompatible MatchStatus = "incompatible"
)

// Check is the per-factor evaluation outcome.
type Check struct {
	Factor  string      `json:"factor"`
	Status  CheckStatus `json:"status"`
	Score   int         `json:"score"`
	Message string      `json:"message"`

	// dealBreaker marks a failure that alone forces incompatibility.
	// Carried internally; the aggregate exposes it via Result.DealBreakers.
	dealBreaker bool
}

// DealBreaker reports whether this check alone forces incompatibility.
func (c Check) DealBreaker() bool {
	return c.dealBreaker
}

// Result is the aggregate outcome of all checks for one rider/venue pair.
// It is a value object: derived entirely from the checks and the injected
// weight table, created fresh per evaluation, never persisted by the engine.
type Result struct {
	OverallScore int         `json:"overallScore"`
	Status       MatchStatus `json:"status"`
	Checks       []Check     `json:"checks"`
	DealBreakers []string    `json:"dealBreakers"`
}
