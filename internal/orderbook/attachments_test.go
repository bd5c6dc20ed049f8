package orderbook

import (
	"testing"
	"time"

	"restaurant-pos/internal/domain"
)

func TestSplitPayment_EqualShares(t *testing.T) {
	s := NewStore(nil, nil, nil, nil)
	o := s.Create(3, "")
	if _, err := s.AddItem(o.ID, menuItem("Espresso", "Coffee", 120)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.AddItem(o.ID, menuItem("Brownie", "Desserts", 80)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shares, err := s.SplitPayment(o.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(shares))
	}
	for i, sh := range shares {
		if sh.Amount != 100 {
			t.Fatalf("share %d: expected 100, got %v", i, sh.Amount)
		}
		if sh.Status != "pending" {
			t.Fatalf("share %d: expected pending, got %s", i, sh.Status)
		}
	}
	if shares[0].ID != "split-1" || shares[1].ID != "split-2" {
		t.Fatalf("unexpected share ids: %+v", shares)
	}

	got, _ := s.Get(o.ID)
	if !got.SplitPayment || len(got.SplitDetails) != 2 {
		t.Fatalf("split not recorded on order: %+v", got)
	}
}

func TestAttachments_ApplyToAnyOrderState(t *testing.T) {
	s := NewStore(nil, nil, nil, nil)
	o := s.Create(3, "")
	got, _ := s.AddItem(o.ID, menuItem("Espresso", "Coffee", 120))
	itemID := got.Items[0].ID

	if err := s.UpdateNotes(o.ID, "no sugar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.UpdateCustomerNotes(o.ID, "birthday table"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.UpdatePreference(o.ID, domain.PrefAsReady); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.UpdateDelayInfo(o.ID, "rush hour"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.UpdatePaymentStatus(o.ID, "completed", "card"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddFeedback(o.ID, 5, "great"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eta := time.Now().Add(15 * time.Minute)
	if err := s.UpdateDeliveryTime(o.ID, itemID, eta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final, _ := s.Get(o.ID)
	if final.Notes != "no sugar" || final.CustomerNotes != "birthday table" {
		t.Fatalf("notes not recorded: %+v", final)
	}
	if final.OrderPreference != domain.PrefAsReady || final.DelayReason != "rush hour" {
		t.Fatalf("preference/delay not recorded: %+v", final)
	}
	if final.PaymentStatus != "completed" || final.PaymentMethod != "card" {
		t.Fatalf("payment not recorded: %+v", final)
	}
	if final.Feedback == nil || final.Feedback.Rating != 5 {
		t.Fatalf("feedback not recorded: %+v", final.Feedback)
	}
	if final.Items[0].ExpectedDelivery == nil {
		t.Fatalf("delivery time not recorded")
	}
}

func TestAttachments_UnknownOrder(t *testing.T) {
	s := NewStore(nil, nil, nil, nil)
	if err := s.UpdateNotes("ghost", "x"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := s.SplitPayment("ghost", 2); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
