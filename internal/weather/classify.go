package weather

// ClassifyCondition maps an OpenWeatherMap condition code to a label.
// Ranges are inclusive-lower, exclusive-upper.
func ClassifyCondition(code int) Condition {
	switch {
	case code >= 200 && code < 300:
		return ConditionStormy
	case code >= 300 && code < 600:
		return ConditionRainy
	case code >= 600 && code < 700:
		return ConditionSnowy
	case code >= 700 && code < 800:
		return ConditionFoggy
	case code == 800:
		return ConditionClear
	default:
		return ConditionCloudy
	}
}

// SeasonForMonth returns the (northern hemisphere) season for month 1-12.
// Anything outside March-November is winter.
func SeasonForMonth(month int) Season {
	switch {
	case month >= 3 && month <= 5:
		return SeasonSpring
	case month >= 6 && month <= 8:
		return SeasonSummer
	case month >= 9 && month <= 11:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
