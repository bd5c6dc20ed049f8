// Package notify carries "order ready" traffic from the kitchen to the
// waiter side: an in-process notification ledger plus an AMQP relay that
// fans the same events out to other processes.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/domain"
)

// defaultDeliveryWindow pads the estimated delivery time when the kitchen
// did not provide one.
const defaultDeliveryWindow = 10 * time.Minute

// Store holds notifications newest-first. Records are never deleted; reading
// or completing one only drops it from the active listing.
type Store struct {
	mu            sync.Mutex
	notifications []domain.Notification
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

// Add registers a notification, filling id, timestamp and the default
// delivery estimate when absent. Returns the stored value.
func (s *Store) Add(n domain.Notification) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now()
	}
	if n.EstimatedDelivery == nil {
		eta := n.Timestamp.Add(defaultDeliveryWindow)
		n.EstimatedDelivery = &eta
	}
	n.IsRead = false
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	return n
}

// Active returns the unread notifications, newest first.
func (s *Store) Active() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) All() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) MarkRead(id string) bool {
	return s.update(id, func(n *domain.Notification) { n.IsRead = true })
}

func (s *Store) MarkAccepted(id string) bool {
	return s.update(id, func(n *domain.Notification) { n.IsAccepted = true })
}

func (s *Store) AssignToWaiter(id, waiterID string) bool {
	return s.update(id, func(n *domain.Notification) { n.AssignedWaiterID = waiterID })
}

func (s *Store) UpdateEstimatedDelivery(id string, t time.Time) bool {
	return s.update(id, func(n *domain.Notification) { n.EstimatedDelivery = &t })
}

// Complete marks the notification read and stamps the delivery time.
func (s *Store) Complete(id string) bool {
	done := s.now()
	return s.update(id, func(n *domain.Notification) {
		n.IsRead = true
		n.CompletionTime = &done
	})
}

// Clear drops everything from the active listing.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}
}

func (s *Store) update(id string, fn func(*domain.Notification)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			fn(&s.notifications[i])
			return true
		}
	}
	return false
}

// ReadyNotification lets the store act as a relay sink.
func (s *Store) ReadyNotification(n domain.Notification) { s.Add(n) }
