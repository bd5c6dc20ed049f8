package orderbook

import (
	"fmt"
	"time"

	"restaurant-pos/internal/domain"
)

// Free-form attachments on an order. None of these are gated on order
// status: feedback or payment can land on an order in any state, matching
// how the floor actually uses the terminal.

func (s *Store) UpdateNotes(orderID, notes string) error {
	return s.mutate(orderID, func(o *domain.Order) { o.Notes = notes })
}

func (s *Store) UpdateCustomerNotes(orderID, notes string) error {
	return s.mutate(orderID, func(o *domain.Order) { o.CustomerNotes = notes })
}

func (s *Store) UpdatePreference(orderID string, pref domain.Preference) error {
	return s.mutate(orderID, func(o *domain.Order) { o.OrderPreference = pref })
}

func (s *Store) UpdateDelayInfo(orderID, reason string) error {
	return s.mutate(orderID, func(o *domain.Order) { o.DelayReason = reason })
}

func (s *Store) UpdateDeliveryTime(orderID, itemID string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].ExpectedDelivery = &t
			o.UpdatedAt = s.now()
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *Store) UpdatePaymentStatus(orderID, status, method string) error {
	return s.mutate(orderID, func(o *domain.Order) {
		o.PaymentStatus = status
		if method != "" {
			o.PaymentMethod = method
		}
	})
}

// SplitPayment divides the current bill into count equal shares.
func (s *Store) SplitPayment(orderID string, count int) ([]domain.SplitShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	share := o.Total() / float64(count)
	details := make([]domain.SplitShare, count)
	for i := range details {
		details[i] = domain.SplitShare{
			ID:     fmt.Sprintf("split-%d", i+1),
			Amount: share,
			Status: "pending",
		}
	}
	o.SplitPayment = true
	o.SplitDetails = details
	o.UpdatedAt = s.now()

	out := make([]domain.SplitShare, count)
	copy(out, details)
	return out, nil
}

func (s *Store) AddFeedback(orderID string, rating int, comment string) error {
	return s.mutate(orderID, func(o *domain.Order) {
		o.Feedback = &domain.Feedback{Rating: rating, Comment: comment, CreatedAt: s.now()}
	})
}

func (s *Store) mutate(orderID string, fn func(*domain.Order)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	fn(o)
	o.UpdatedAt = s.now()
	return nil
}
