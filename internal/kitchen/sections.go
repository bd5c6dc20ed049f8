package kitchen

import "restaurant-pos/internal/domain"

const (
	SectionHotBeverages  = "hot-beverages"
	SectionColdBeverages = "cold-beverages"
	SectionQuickBites    = "quick-bites"
	SectionDesserts      = "desserts-sweets"

	// FallbackSection catches items whose category has no station mapping.
	FallbackSection = SectionQuickBites
)

var sectionByCategory = map[string]string{
	"Coffee":    SectionHotBeverages,
	"Tea":       SectionHotBeverages,
	"Beverages": SectionColdBeverages,
	"Snacks":    SectionQuickBites,
	"Desserts":  SectionDesserts,
}

// SectionFor classifies an item category into exactly one kitchen station.
func SectionFor(category string) string {
	if s, ok := sectionByCategory[category]; ok {
		return s
	}
	return FallbackSection
}

func defaultSections() []domain.KitchenSection {
	return []domain.KitchenSection{
		{ID: SectionHotBeverages, Name: "Hot Beverages", Cuisine: "cafe", Status: "active"},
		{ID: SectionColdBeverages, Name: "Cold Beverages & Shakes", Cuisine: "cafe", Status: "active"},
		{ID: SectionQuickBites, Name: "Quick Bites & Snacks", Cuisine: "cafe", Status: "active"},
		{ID: SectionDesserts, Name: "Desserts & Sweets", Cuisine: "cafe", Status: "active"},
	}
}
