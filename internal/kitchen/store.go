// Package kitchen is the kitchen display state: canonical admitted orders,
// per-station projections, item/order status lifecycle and opportunistic
// batching. One canonical copy of each order is kept; section queues are
// derived (orderID, itemID) indices, so a status change is a single write.
package kitchen

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/domain"
)

var (
	ErrOrderNotFound   = errors.New("kitchen order not found")
	ErrItemNotFound    = errors.New("order item not found")
	ErrBatchNotFound   = errors.New("batch not found")
	ErrSectionNotFound = errors.New("section not found")
)

// Emitter receives the ready notification produced when an order reaches
// full dispatch. Implementations must tolerate being called from any
// goroutine; the store never calls it while holding its lock.
type Emitter interface {
	OrderReady(n domain.Notification)
}

type itemRef struct {
	orderID string
	itemID  string
}

type kitchenOrder struct {
	order domain.Order
	// undispatched counts items not yet dispatched. The served transition
	// fires exactly when it reaches zero, under the store lock, which
	// replaces the original check-then-act scan over item statuses.
	undispatched int
}

type Store struct {
	mu sync.Mutex

	sections     []domain.KitchenSection
	orders       map[string]*kitchenOrder
	orderIDs     []string // admission order, for FIFO display
	completed    []domain.Order
	batches      []domain.Batch
	sectionIndex map[string][]itemRef

	emitter Emitter
	now     func() time.Time
}

func NewStore(emitter Emitter) *Store {
	return &Store{
		sections:     defaultSections(),
		orders:       make(map[string]*kitchenOrder),
		sectionIndex: make(map[string][]itemRef),
		emitter:      emitter,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// AddOrder admits a confirmed order: assigns every item its section (with the
// quick-bites fallback), indexes the items per station and scans for a batch
// opportunity. The caller's order value is copied, never aliased.
func (s *Store) AddOrder(order domain.Order) {
	s.mu.Lock()

	o := cloneOrder(order)
	for i := range o.Items {
		if o.Items[i].Section == "" || !s.knownSectionLocked(o.Items[i].Section) {
			o.Items[i].Section = SectionFor(o.Items[i].Category)
		}
	}
	ko := &kitchenOrder{order: o, undispatched: 0}
	for i := range o.Items {
		if o.Items[i].Status != domain.ItemDispatched {
			ko.undispatched++
		}
		sec := o.Items[i].Section
		s.sectionIndex[sec] = append(s.sectionIndex[sec], itemRef{orderID: o.ID, itemID: o.Items[i].ID})
	}
	s.orders[o.ID] = ko
	s.orderIDs = append(s.orderIDs, o.ID)

	s.maybeBatchLocked(o)
	s.mu.Unlock()
}

func (s *Store) knownSectionLocked(id string) bool {
	for _, sec := range s.sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

// UpdateItemStatus sets an item's status and stamps startCookingTime on the
// transition into preparing and completionTime on the transition into ready.
// Out-of-order jumps are allowed; discipline belongs to the display. A jump
// straight to dispatched still participates in the served transition.
func (s *Store) UpdateItemStatus(orderID, itemID string, status domain.ItemStatus) error {
	s.mu.Lock()
	n, err := s.setItemStatusLocked(orderID, itemID, status)
	s.mu.Unlock()
	if n != nil {
		s.emit(*n)
	}
	return err
}

// MarkItemDispatched dispatches a single item. When it was the last
// undispatched item of its order, the order atomically becomes served, moves
// to the completed list and a ready notification is emitted exactly once.
func (s *Store) MarkItemDispatched(orderID, itemID string) error {
	return s.UpdateItemStatus(orderID, itemID, domain.ItemDispatched)
}

func (s *Store) setItemStatusLocked(orderID, itemID string, status domain.ItemStatus) (*domain.Notification, error) {
	ko, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	it := findItem(&ko.order, itemID)
	if it == nil {
		return nil, ErrItemNotFound
	}

	was := it.Status
	it.Status = status
	ts := s.now()
	if status == domain.ItemPreparing && was != domain.ItemPreparing {
		it.StartCookingTime = &ts
	}
	if status == domain.ItemReady && was != domain.ItemReady {
		it.CompletionTime = &ts
	}
	ko.order.UpdatedAt = ts

	if was != domain.ItemDispatched && status == domain.ItemDispatched {
		ko.undispatched--
		if ko.undispatched == 0 {
			return s.serveLocked(ko), nil
		}
	}
	if was == domain.ItemDispatched && status != domain.ItemDispatched {
		ko.undispatched++
	}
	return nil, nil
}

// MarkOrderDispatched bulk-dispatches every item and serves the order.
// Idempotent: a second call on an already-served order is a no-op.
func (s *Store) MarkOrderDispatched(orderID string) error {
	s.mu.Lock()
	ko, ok := s.orders[orderID]
	if !ok {
		served := s.isCompletedLocked(orderID)
		s.mu.Unlock()
		if served {
			return nil
		}
		return ErrOrderNotFound
	}
	for i := range ko.order.Items {
		ko.order.Items[i].Status = domain.ItemDispatched
	}
	ko.undispatched = 0
	n := s.serveLocked(ko)
	s.mu.Unlock()
	if n != nil {
		s.emit(*n)
	}
	return nil
}

// serveLocked finishes an order: terminal served status, moved from the
// active set to completed, ready notification built from a frozen snapshot.
func (s *Store) serveLocked(ko *kitchenOrder) *domain.Notification {
	ko.order.Status = domain.OrderServed
	ko.order.UpdatedAt = s.now()

	done := cloneOrder(ko.order)
	s.completed = append(s.completed, done)
	delete(s.orders, ko.order.ID)
	s.orderIDs = removeID(s.orderIDs, ko.order.ID)
	s.dropFromIndexLocked(ko.order.ID)

	snap := cloneItems(done.Items)
	return &domain.Notification{
		ID:               uuid.NewString(),
		OrderID:          done.ID,
		TableID:          done.TableID,
		Message:          readyMessage(done.TableID),
		Type:             domain.NotifyReady,
		Timestamp:        s.now(),
		AssignedWaiterID: done.WaiterID,
		OrderDetails: &domain.OrderSnapshot{
			Items:       snap,
			TotalAmount: done.Total(),
		},
	}
}

// UpdateOrderStatus sets an order-level status directly. Served behaves like
// a full dispatch completion minus the per-item bookkeeping; anything else is
// a plain field write on the canonical order.
func (s *Store) UpdateOrderStatus(orderID string, status domain.OrderStatus) error {
	s.mu.Lock()
	ko, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		if s.IsCompleted(orderID) {
			return nil
		}
		return ErrOrderNotFound
	}
	var n *domain.Notification
	if status == domain.OrderServed {
		n = s.serveLocked(ko)
	} else {
		ko.order.Status = status
		ko.order.UpdatedAt = s.now()
	}
	s.mu.Unlock()
	if n != nil {
		s.emit(*n)
	}
	return nil
}

func (s *Store) emit(n domain.Notification) {
	if s.emitter != nil {
		s.emitter.OrderReady(n)
	}
}

// --- section management ------------------------------------------------

func (s *Store) AddSection(sec domain.KitchenSection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = append(s.sections, sec)
}

func (s *Store) SetSectionStatus(sectionID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sections {
		if s.sections[i].ID == sectionID {
			s.sections[i].Status = status
			return nil
		}
	}
	return ErrSectionNotFound
}

func (s *Store) Sections() []domain.KitchenSection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.KitchenSection, len(s.sections))
	copy(out, s.sections)
	return out
}

// SectionOrders materializes the station's queue: the active orders that
// have at least one item routed to the section, items filtered to that
// section, in admission order. The result is a copy; mutating it does not
// touch the canonical orders.
func (s *Store) SectionOrders(sectionID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	inSection := make(map[string]bool)
	for _, ref := range s.sectionIndex[sectionID] {
		inSection[ref.orderID] = true
	}

	var out []domain.Order
	for _, id := range s.orderIDs {
		if !inSection[id] {
			continue
		}
		ko := s.orders[id]
		view := cloneOrder(ko.order)
		filtered := view.Items[:0]
		for _, it := range view.Items {
			if it.Section == sectionID {
				filtered = append(filtered, it)
			}
		}
		view.Items = filtered
		out = append(out, view)
	}
	return out
}

// --- read side ----------------------------------------------------------

func (s *Store) ActiveOrders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, cloneOrder(s.orders[id].order))
	}
	return out
}

func (s *Store) CompletedOrders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.completed))
	for i := range s.completed {
		out[i] = cloneOrder(s.completed[i])
	}
	return out
}

func (s *Store) Order(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ko, ok := s.orders[orderID]; ok {
		return cloneOrder(ko.order), nil
	}
	for i := range s.completed {
		if s.completed[i].ID == orderID {
			return cloneOrder(s.completed[i]), nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

func (s *Store) IsCompleted(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isCompletedLocked(orderID)
}

func (s *Store) isCompletedLocked(orderID string) bool {
	for i := range s.completed {
		if s.completed[i].ID == orderID {
			return true
		}
	}
	return false
}

// --- internals ----------------------------------------------------------

func (s *Store) dropFromIndexLocked(orderID string) {
	for sec, refs := range s.sectionIndex {
		kept := refs[:0]
		for _, ref := range refs {
			if ref.orderID != orderID {
				kept = append(kept, ref)
			}
		}
		s.sectionIndex[sec] = kept
	}
}

func findItem(o *domain.Order, itemID string) *domain.OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

func removeID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}

func cloneOrder(o domain.Order) domain.Order {
	out := o
	out.Items = cloneItems(o.Items)
	if o.SplitDetails != nil {
		out.SplitDetails = append([]domain.SplitShare(nil), o.SplitDetails...)
	}
	return out
}

func cloneItems(items []domain.OrderItem) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	copy(out, items)
	return out
}

func readyMessage(tableID int) string {
	return fmt.Sprintf("Order for Table #%d is ready to serve", tableID)
}
