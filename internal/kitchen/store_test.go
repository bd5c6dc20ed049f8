package kitchen

import (
	"testing"
	"time"

	"restaurant-pos/internal/domain"
)

type captureEmitter struct {
	notifications []domain.Notification
}

func (c *captureEmitter) OrderReady(n domain.Notification) {
	c.notifications = append(c.notifications, n)
}

func newOrder(id string, items ...domain.OrderItem) domain.Order {
	return domain.Order{
		ID:      id,
		TableID: 4,
		Items:   items,
		Status:  domain.OrderPending,
	}
}

func item(id, name, category string, prep int) domain.OrderItem {
	return domain.OrderItem{
		ID:              id,
		Name:            name,
		Quantity:        1,
		Price:           100,
		Category:        category,
		PreparationTime: prep,
		Status:          domain.ItemPending,
	}
}

func TestAddOrder_RoutesItemsToSections(t *testing.T) {
	s := NewStore(nil)
	s.AddOrder(newOrder("o1",
		item("i1", "Espresso", "Coffee", 3),
		item("i2", "Iced Latte", "Beverages", 4),
		item("i3", "Tiramisu", "Desserts", 5),
		item("i4", "Mystery Dish", "Specials", 10), // unmapped category
	))

	tests := []struct {
		section string
		want    int
	}{
		{SectionHotBeverages, 1},
		{SectionColdBeverages, 1},
		{SectionDesserts, 1},
		{SectionQuickBites, 1}, // fallback
	}
	for _, tt := range tests {
		orders := s.SectionOrders(tt.section)
		if len(orders) != 1 {
			t.Fatalf("section %s: expected 1 order, got %d", tt.section, len(orders))
		}
		if got := len(orders[0].Items); got != tt.want {
			t.Fatalf("section %s: expected %d items, got %d", tt.section, tt.want, got)
		}
	}
}

func TestSectionOrders_FilteredViewDoesNotAliasCanonicalOrder(t *testing.T) {
	s := NewStore(nil)
	s.AddOrder(newOrder("o1",
		item("i1", "Espresso", "Coffee", 3),
		item("i2", "Samosa", "Snacks", 6),
	))

	view := s.SectionOrders(SectionHotBeverages)
	view[0].Items[0].Status = domain.ItemReady

	got, err := s.Order("o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Items[0].Status != domain.ItemPending {
		t.Fatalf("canonical order mutated through section view")
	}
}

func TestUpdateItemStatus_StampsCookingAndCompletionTimes(t *testing.T) {
	s := NewStore(nil)
	s.AddOrder(newOrder("o1", item("i1", "Espresso", "Coffee", 3)))

	if err := s.UpdateItemStatus("o1", "i1", domain.ItemPreparing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, _ := s.Order("o1")
	if o.Items[0].StartCookingTime == nil {
		t.Fatalf("expected start cooking time to be stamped")
	}
	if o.Items[0].CompletionTime != nil {
		t.Fatalf("completion time stamped too early")
	}

	if err := s.UpdateItemStatus("o1", "i1", domain.ItemReady); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, _ = s.Order("o1")
	if o.Items[0].CompletionTime == nil {
		t.Fatalf("expected completion time to be stamped")
	}
}

func TestMarkItemDispatched_LastItemServesOrderOnce(t *testing.T) {
	em := &captureEmitter{}
	s := NewStore(em)
	s.AddOrder(newOrder("o1",
		item("i1", "Espresso", "Coffee", 3),
		item("i2", "Brownie", "Desserts", 7),
	))

	if err := s.MarkItemDispatched("o1", "i1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(em.notifications) != 0 {
		t.Fatalf("notification emitted before full dispatch")
	}
	if err := s.MarkItemDispatched("o1", "i2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(em.notifications) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(em.notifications))
	}
	n := em.notifications[0]
	if n.Type != domain.NotifyReady || n.OrderID != "o1" || n.TableID != 4 {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.OrderDetails == nil || len(n.OrderDetails.Items) != 2 || n.OrderDetails.TotalAmount != 200 {
		t.Fatalf("unexpected snapshot: %+v", n.OrderDetails)
	}

	if !s.IsCompleted("o1") {
		t.Fatalf("order not moved to completed")
	}
	if len(s.ActiveOrders()) != 0 {
		t.Fatalf("order still active after serving")
	}
	done, _ := s.Order("o1")
	if done.Status != domain.OrderServed {
		t.Fatalf("expected served, got %s", done.Status)
	}
	if len(s.SectionOrders(SectionHotBeverages)) != 0 {
		t.Fatalf("served order still visible in section queue")
	}
}

func TestMarkOrderDispatched_IdempotentOnServedOrder(t *testing.T) {
	em := &captureEmitter{}
	s := NewStore(em)
	s.AddOrder(newOrder("o1", item("i1", "Espresso", "Coffee", 3)))

	if err := s.MarkOrderDispatched("o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.MarkOrderDispatched("o1"); err != nil {
		t.Fatalf("repeat dispatch should be a no-op, got %v", err)
	}
	if len(em.notifications) != 1 {
		t.Fatalf("expected 1 notification after repeat dispatch, got %d", len(em.notifications))
	}
	if err := s.MarkOrderDispatched("ghost"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateItemStatus_UnknownTargetsReturnErrors(t *testing.T) {
	s := NewStore(nil)
	s.AddOrder(newOrder("o1", item("i1", "Espresso", "Coffee", 3)))

	if err := s.UpdateItemStatus("ghost", "i1", domain.ItemReady); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := s.UpdateItemStatus("o1", "ghost", domain.ItemReady); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSectionManagement(t *testing.T) {
	s := NewStore(nil)
	if got := len(s.Sections()); got != 4 {
		t.Fatalf("expected 4 default sections, got %d", got)
	}
	s.AddSection(domain.KitchenSection{ID: "tandoor", Name: "Tandoor", Status: "active"})
	if err := s.SetSectionStatus("tandoor", "inactive"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetSectionStatus("ghost", "inactive"); err != ErrSectionNotFound {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestAnalytics_AveragePrepAndEfficiency(t *testing.T) {
	s := NewStore(nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	s.AddOrder(newOrder("o1", item("i1", "Espresso", "Coffee", 10)))
	if err := s.UpdateItemStatus("o1", "i1", domain.ItemPreparing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.UpdateItemStatus("o1", "i1", domain.ItemReady); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.MarkItemDispatched("o1", "i1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	avg := s.AveragePreparationTime("Coffee")
	if avg <= 0 || avg > 10 {
		t.Fatalf("unexpected average prep time %v", avg)
	}
	if got := s.Efficiency(); got != 100 {
		t.Fatalf("expected 100%% efficiency, got %v", got)
	}
	if got := s.AveragePreparationTime("Tea"); got != 0 {
		t.Fatalf("expected 0 for category without completions, got %v", got)
	}
}

func TestPendingOrdersCount(t *testing.T) {
	s := NewStore(nil)
	s.AddOrder(newOrder("o1", item("i1", "Espresso", "Coffee", 3)))
	s.AddOrder(newOrder("o2", item("i2", "Samosa", "Snacks", 6)))
	if got := s.PendingOrdersCount(); got != 2 {
		t.Fatalf("expected 2 pending, got %d", got)
	}
	if err := s.MarkOrderDispatched("o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.PendingOrdersCount(); got != 1 {
		t.Fatalf("expected 1 pending after serve, got %d", got)
	}
}
