package bloom

// InterpretValue maps an NDVI value onto one of seven vegetation types.
// Bands are half-open and evaluated low to high with strict "<", so a value
// sitting exactly on a bound resolves to the higher band.
func InterpretValue(ndvi float64) (vegetationType, description string) {
	switch {
	case ndvi < -0.1:
		return "Water Body", "This area is water (ocean, lake, river)"
	case ndvi < 0.1:
		return "Bare Soil", "Desert, sand, or areas with almost no vegetation"
	case ndvi < 0.2:
		return "Sparse Vegetation", "Very little plant life, possibly drought or early growth"
	case ndvi < 0.4:
		return "Moderate Vegetation", "Grasslands, shrubs, or crops in early growth stage"
	case ndvi < 0.6:
		return "Healthy Vegetation", "Good plant health, crops in growth phase"
	case ndvi < 0.8:
		return "Dense Vegetation", "Very healthy plants, forests or mature crops"
	default:
		return "Very Dense Vegetation", "Extremely healthy vegetation, likely forests"
	}
}

// HealthStatus maps (mean NDVI, trend) onto a health state.
// The lowest mean band is unconditional; the others branch on the shared
// ±0.01 trend bands.
func HealthStatus(meanNDVI, trend float64) (status, description string) {
	switch {
	case meanNDVI < 0.1:
		return "Non-vegetated/Bare Area", "Very low NDVI suggests desert, sand, rock, or water"
	case meanNDVI < 0.3:
		switch {
		case trend > trendImproving:
			return "Improving", "Vegetation is getting healthier over time"
		case trend < trendDeclining:
			return "Declining", "Vegetation health is decreasing"
		default:
			return "Stable", "Vegetation health is consistent"
		}
	case meanNDVI < 0.6:
		switch {
		case trend > trendImproving:
			return "Growing", "Vegetation is actively growing"
		case trend < trendDeclining:
			return "Stressed", "Vegetation may be under stress"
		default:
			return "Healthy", "Vegetation is in good condition"
		}
	default:
		switch {
		case trend > trendImproving:
			return "Thriving", "Vegetation is thriving and very healthy"
		case trend < trendDeclining:
			return "Peak Declining", "Vegetation may be past peak health"
		default:
			return "Peak Health", "Vegetation is at peak health"
		}
	}
}
