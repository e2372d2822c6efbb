package bloom

import "time"

// SeasonalRecommendations keys on the calendar quarter of the given month and
// a single NDVI threshold within it.
func SeasonalRecommendations(month time.Month, ndvi float64) []string {
	switch month {
	case time.December, time.January, time.February:
		if ndvi < 0.3 {
			return []string{"Winter dormancy - normal for most plants"}
		}
		return []string{"Unusual winter growth - check for evergreen species"}
	case time.March, time.April, time.May:
		if ndvi < 0.4 {
			return []string{"Early spring - plants may be starting to grow"}
		}
		return []string{"Active spring growth - good time for planting"}
	case time.June, time.July, time.August:
		if ndvi < 0.5 {
			return []string{"Summer stress - may need irrigation"}
		}
		return []string{"Peak summer growth - monitor for drought"}
	default:
		if ndvi < 0.4 {
			return []string{"Fall dormancy - normal seasonal decline"}
		}
		return []string{"Extended growing season - monitor for frost"}
	}
}

// ManagementRecommendations selects base actions from the NDVI band and then
// always evaluates the independent trend rule on top; the two are
// concatenated, never mutually exclusive.
func ManagementRecommendations(ndvi, trend float64) []string {
	var recs []string
	switch {
	case ndvi < 0.2:
		recs = append(recs,
			"Consider soil improvement or irrigation",
			"Check for pest or disease issues")
	case ndvi < 0.4:
		recs = append(recs,
			"Monitor plant health closely",
			"Consider fertilization if appropriate")
	case ndvi < 0.6:
		recs = append(recs,
			"Good plant health - maintain current practices",
			"Monitor for any changes")
	default:
		recs = append(recs,
			"Excellent plant health - continue current management",
			"Consider harvesting if crops are ready")
	}

	if trend < trendUrgent {
		recs = append(recs, "URGENT: Vegetation health declining - investigate causes")
	} else if trend > trendPositive {
		recs = append(recs, "Positive trend - continue current management")
	}
	return recs
}
