package kitchen

import (
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/domain"
)

// maybeBatchLocked runs after an admission: if at least two pending items of
// the admitted order's first item's category exist across active orders, they
// are grouped into one batch. Batches are advisory; member items keep moving
// through their own lifecycle and the batch is never auto-reconciled.
func (s *Store) maybeBatchLocked(admitted domain.Order) {
	if len(admitted.Items) == 0 {
		return
	}
	category := admitted.Items[0].Category

	var members []domain.OrderItem
	for _, id := range s.orderIDs {
		for _, it := range s.orders[id].order.Items {
			if it.Status == domain.ItemPending && it.Category == category {
				members = append(members, it)
			}
		}
	}
	if len(members) < 2 {
		return
	}
	s.createBatchLocked(members)
}

// createBatchLocked groups items under a fresh batch id. The completion
// estimate is bounded by the slowest member, not the sum.
func (s *Store) createBatchLocked(items []domain.OrderItem) domain.Batch {
	maxPrep := 0
	for _, it := range items {
		if it.PreparationTime > maxPrep {
			maxPrep = it.PreparationTime
		}
	}
	start := s.now()
	batch := domain.Batch{
		ID:                 uuid.NewString(),
		Items:              cloneItems(items),
		StartTime:          start,
		ExpectedCompletion: start.Add(time.Duration(maxPrep) * time.Minute),
		Status:             domain.BatchPending,
		Priority:           "medium",
	}
	s.batches = append(s.batches, batch)

	member := make(map[string]bool, len(items))
	for _, it := range items {
		member[it.ID] = true
	}
	for _, id := range s.orderIDs {
		ko := s.orders[id]
		for i := range ko.order.Items {
			if member[ko.order.Items[i].ID] {
				ko.order.Items[i].BatchID = batch.ID
			}
		}
	}
	return batch
}

// CreateBatch groups the given items explicitly (KDS manual batching).
func (s *Store) CreateBatch(items []domain.OrderItem) domain.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createBatchLocked(items)
}

func (s *Store) UpdateBatchStatus(batchID string, status domain.BatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.batches {
		if s.batches[i].ID == batchID {
			s.batches[i].Status = status
			return nil
		}
	}
	return ErrBatchNotFound
}

func (s *Store) Batches() []domain.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Batch, len(s.batches))
	for i := range s.batches {
		out[i] = s.batches[i]
		out[i].Items = cloneItems(s.batches[i].Items)
	}
	return out
}
