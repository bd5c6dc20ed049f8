package kitchen

import "restaurant-pos/internal/domain"

// Point-in-time computations over the current collections. Nothing here is
// maintained incrementally or persisted.

// AveragePreparationTime returns the mean cook time in minutes for completed
// items of a category, measured from startCookingTime to completionTime.
func (s *Store) AveragePreparationTime(category string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	var n int
	for _, o := range s.completed {
		for _, it := range o.Items {
			if it.Category != category || it.CompletionTime == nil || it.StartCookingTime == nil {
				continue
			}
			total += it.CompletionTime.Sub(*it.StartCookingTime).Minutes()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// Efficiency is the share of orders (completed vs all known) whose actual
// slowest cook time stayed within the slowest advertised prep time.
func (s *Store) Efficiency() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.completed) + len(s.orderIDs)
	if total == 0 {
		return 100
	}
	onTime := 0
	for _, o := range s.completed {
		expected := 0.0
		actual := 0.0
		measured := false
		for _, it := range o.Items {
			if float64(it.PreparationTime) > expected {
				expected = float64(it.PreparationTime)
			}
			if it.CompletionTime != nil && it.StartCookingTime != nil {
				m := it.CompletionTime.Sub(*it.StartCookingTime).Minutes()
				if m > actual {
					actual = m
				}
				measured = true
			}
		}
		if measured && actual <= expected {
			onTime++
		}
	}
	return float64(onTime) / float64(total) * 100
}

// PendingOrdersCount counts active orders still waiting or cooking.
func (s *Store) PendingOrdersCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, id := range s.orderIDs {
		switch s.orders[id].order.Status {
		case domain.OrderPending, domain.OrderConfirmed:
			n++
		}
	}
	return n
}
