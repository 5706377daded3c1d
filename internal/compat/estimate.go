package compat

// EstimateGuaranteeByCapacity estimates the typical maximum guarantee (in
// cents) a venue of the given capacity pays. Listing surfaces use it to
// annotate venues that have not published a guarantee range; it never feeds
// the financial checker, which treats unpublished ranges as unknown.
func EstimateGuaranteeByCapacity(capacity *int) int64 {
	if capacity == nil || *capacity <= 0 {
		return 25_000
	}
	switch c := *capacity; {
	case c >= 1000:
		return 250_000
	case c >= 500:
		return 120_000
	case c >= 200:
		return 50_000
	default:
		return 25_000
	}
}
