package catalog

import (
	"strings"
	"testing"

	"restaurant-pos/internal/connections/masterdb"
	"restaurant-pos/internal/domain"
)

func testService(t *testing.T) *Service {
	t.Helper()
	db, err := masterdb.Open(":memory:")
	if err != nil {
		t.Fatalf("open masters db: %v", err)
	}
	return New(db)
}

func TestSeed_PopulatesOnceAndOnlyOnce(t *testing.T) {
	s := testService(t)
	if err := s.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	items, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 25 {
		t.Fatalf("expected 25 seeded items, got %d", len(items))
	}

	// idempotent on a populated catalog
	if err := s.Seed(); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	items, _ = s.List()
	if len(items) != 25 {
		t.Fatalf("second seed duplicated items: %d", len(items))
	}

	categories := make(map[string]int)
	for _, it := range items {
		categories[it.Category]++
	}
	for _, cat := range []string{"Coffee", "Tea", "Snacks", "Desserts", "Beverages"} {
		if categories[cat] != 5 {
			t.Fatalf("category %s: expected 5 items, got %d", cat, categories[cat])
		}
	}
}

func TestGet_UnknownItem(t *testing.T) {
	s := testService(t)
	if _, err := s.Get("ghost"); err != ErrMenuItemNotFound {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestAddCustomItem_TaggedCustom(t *testing.T) {
	s := testService(t)
	item, err := s.AddCustomItem(domain.AddMenuItemRequest{
		Name:     "Chef Special",
		Price:    250,
		Category: "Specials",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.IsCustom || item.ID == "" {
		t.Fatalf("custom item not tagged: %+v", item)
	}
	got, err := s.Get(item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Chef Special" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestSuggestions_ExcludePresentCategoriesCapAtFour(t *testing.T) {
	s := testService(t)
	if err := s.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	order := []domain.OrderItem{{Name: "Espresso", Category: "Coffee"}}
	got, err := s.Suggestions(order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 suggestions, got %d", len(got))
	}
	for _, m := range got {
		if m.Category == "Coffee" {
			t.Fatalf("suggested an already-present category: %+v", m)
		}
	}
}

func TestImportCSV_SkipsHeaderShortAndIncompleteRows(t *testing.T) {
	s := testService(t)
	csv := strings.Join([]string{
		"name,category,subCategory,tax,packagingCharge,productCost",
		"Masala Chai,Tea,Hot,5,2,18.50",
		"short,row", // fewer than six columns
		",Tea,Hot,5,2,10", // missing name
		"Filter Coffee,Coffee,Hot,5,2,22",
	}, "\n")

	items, err := s.ImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 imported items, got %d", len(items))
	}
	if items[0].Name != "Masala Chai" || items[0].ProductCost != 18.5 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}

	listed, _ := s.List()
	if len(listed) != 2 {
		t.Fatalf("imported items not persisted: %d", len(listed))
	}
}

func TestTimeBasedRecommendations_Dayparts(t *testing.T) {
	tests := []struct {
		hour  int
		title string
	}{
		{8, "Breakfast Specials"},
		{12, "Lunch Combos"},
		{17, "Evening Snacks"},
		{21, "Dinner Specials"},
	}
	for _, tt := range tests {
		got := TimeBasedRecommendations(tt.hour)
		if len(got) == 0 || got[0].Title != tt.title {
			t.Fatalf("hour %d: expected %q, got %+v", tt.hour, tt.title, got)
		}
	}
}
