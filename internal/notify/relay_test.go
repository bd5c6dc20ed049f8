package notify

import (
	"context"
	"testing"

	"restaurant-pos/internal/domain"
)

type countingSink struct{ seen []domain.Notification }

func (c *countingSink) ReadyNotification(n domain.Notification) { c.seen = append(c.seen, n) }

func TestRelay_NilClientStillDeliversLocally(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	r := NewRelay(nil, nil, a, b)

	r.OrderReady(domain.Notification{OrderID: "o1", Type: domain.NotifyReady})
	if len(a.seen) != 1 || len(b.seen) != 1 {
		t.Fatalf("local sinks not fed: %d/%d", len(a.seen), len(b.seen))
	}

	if err := r.OrderConfirmed(context.Background(), domain.OrderConfirmedMessage{OrderID: "o1"}); err != nil {
		t.Fatalf("nil client should degrade silently, got %v", err)
	}
	if err := r.StatusChanged(context.Background(), domain.StatusChangedMessage{OrderID: "o1"}); err != nil {
		t.Fatalf("nil client should degrade silently, got %v", err)
	}
}

func TestStore_ActsAsRelaySink(t *testing.T) {
	s := NewStore()
	r := NewRelay(nil, nil, s)
	r.OrderReady(domain.Notification{OrderID: "o1", Type: domain.NotifyReady})
	if got := len(s.Active()); got != 1 {
		t.Fatalf("expected 1 active notification, got %d", got)
	}
}
