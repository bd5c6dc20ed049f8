package catalog

// TimeRecommendation is a display hint for the captain screen, keyed off the
// hour of day.
type TimeRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func TimeBasedRecommendations(hour int) []TimeRecommendation {
	switch {
	case hour >= 6 && hour < 11:
		return []TimeRecommendation{
			{Title: "Breakfast Specials", Description: "Start your day with our fresh breakfast menu", Icon: "sunrise"},
			{Title: "Morning Coffee", Description: "Freshly brewed coffee to kickstart your day", Icon: "coffee"},
		}
	case hour >= 11 && hour < 15:
		return []TimeRecommendation{
			{Title: "Lunch Combos", Description: "Perfect lunch combinations for your midday break", Icon: "sun"},
		}
	case hour >= 15 && hour < 19:
		return []TimeRecommendation{
			{Title: "Evening Snacks", Description: "Light bites and refreshing beverages", Icon: "sun"},
		}
	default:
		return []TimeRecommendation{
			{Title: "Dinner Specials", Description: "End your day with our chef's special dinner menu", Icon: "moon"},
		}
	}
}
