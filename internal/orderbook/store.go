// Package orderbook is the captain-side order aggregate: the in-progress
// digital orders of the floor, their line items and the pending -> confirmed
// -> completed lifecycle. Confirmation is the single admission path into the
// kitchen subsystem.
package orderbook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/kitchen"
	"restaurant-pos/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
	ErrEmptyOrder    = errors.New("order has no items")
)

// Admitter receives the confirmed-order snapshot. Satisfied by the kitchen
// store.
type Admitter interface {
	AddOrder(order domain.Order)
}

// Publisher pushes order events onto the message bus. Optional; nil
// disables publishing (tests, demo mode).
type Publisher interface {
	OrderConfirmed(ctx context.Context, msg domain.OrderConfirmedMessage) error
	StatusChanged(ctx context.Context, msg domain.StatusChangedMessage) error
}

type Store struct {
	mu       sync.Mutex
	orders   map[string]*domain.Order
	orderIDs []string
	// admitting marks orders whose confirm is in flight: the status commit
	// waits for the history insert, and a second confirm must not slip in
	// between.
	admitting map[string]bool

	kitchen Admitter
	history repository.Orders
	relay   Publisher
	lg      *logger.Logger
	now     func() time.Time
}

func NewStore(admitter Admitter, history repository.Orders, relay Publisher, lg *logger.Logger) *Store {
	if lg == nil {
		lg = logger.New("orderbook")
	}
	return &Store{
		orders:    make(map[string]*domain.Order),
		admitting: make(map[string]bool),
		kitchen:   admitter,
		history:   history,
		relay:     relay,
		lg:        lg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a fresh pending order for a table.
func (s *Store) Create(tableID int, waiterID string) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &domain.Order{
		ID:        uuid.NewString(),
		TableID:   tableID,
		WaiterID:  waiterID,
		Status:    domain.OrderPending,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	s.orders[o.ID] = o
	s.orderIDs = append(s.orderIDs, o.ID)
	return cloneOrder(*o)
}

func (s *Store) Get(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, ErrOrderNotFound
	}
	return cloneOrder(*o), nil
}

func (s *Store) List() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, cloneOrder(*s.orders[id]))
	}
	return out
}

// AddItem appends a menu item to the order. A line item with the same name
// already on the order is incremented instead of duplicated.
func (s *Store) AddItem(orderID string, menuItem domain.MenuItem) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, ErrOrderNotFound
	}
	for i := range o.Items {
		if o.Items[i].Name == menuItem.Name {
			o.Items[i].Quantity++
			o.UpdatedAt = s.now()
			return cloneOrder(*o), nil
		}
	}
	o.Items = append(o.Items, domain.OrderItem{
		ID:              uuid.NewString(),
		Name:            menuItem.Name,
		Quantity:        1,
		Price:           menuItem.Price, // snapshot, decoupled from catalog drift
		Category:        menuItem.Category,
		Section:         menuItem.Section,
		PreparationTime: menuItem.PreparationTime,
		Status:          domain.ItemPending,
	})
	o.UpdatedAt = s.now()
	return cloneOrder(*o), nil
}

// RemoveItem deletes a line item by id.
func (s *Store) RemoveItem(orderID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.UpdatedAt = s.now()
			return nil
		}
	}
	return ErrItemNotFound
}

// UpdateItem merges a partial patch into one line item. Quantity is applied
// as given; there is deliberately no minimum here (see DESIGN.md).
func (s *Store) UpdateItem(orderID, itemID string, patch domain.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	for i := range o.Items {
		if o.Items[i].ID != itemID {
			continue
		}
		if patch.Quantity != nil {
			o.Items[i].Quantity = *patch.Quantity
		}
		if patch.Notes != nil {
			o.Items[i].Notes = *patch.Notes
		}
		if patch.Status != nil {
			o.Items[i].Status = *patch.Status
		}
		o.UpdatedAt = s.now()
		return nil
	}
	return ErrItemNotFound
}

// UpdateStatus sets the order status. Transitioning into confirmed snapshots
// the order, defaults missing sections, records it in the order history,
// admits it to the kitchen and publishes it on the bus — exactly once. The
// confirmed status is committed only after the history insert succeeds, so a
// failed confirm leaves the order pending and a retry runs the whole
// admission again; a repeat confirm of an already-confirmed order changes
// nothing.
func (s *Store) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	o, ok := s.orders[orderID]
	if !ok {
		s.mu.Unlock()
		return domain.Order{}, ErrOrderNotFound
	}
	if status != domain.OrderConfirmed {
		old := o.Status
		o.Status = status
		o.UpdatedAt = s.now()
		result := cloneOrder(*o)
		s.mu.Unlock()
		s.publishStatusChange(ctx, result.ID, old, status)
		return result, nil
	}
	if o.Status == domain.OrderConfirmed || s.admitting[orderID] {
		result := cloneOrder(*o)
		s.mu.Unlock()
		return result, nil
	}
	if len(o.Items) == 0 {
		s.mu.Unlock()
		return domain.Order{}, ErrEmptyOrder
	}
	s.admitting[orderID] = true
	snapshot := cloneOrder(*o)
	s.mu.Unlock()

	snapshot.Status = domain.OrderPending // kitchen-side lifecycle starts over
	for i := range snapshot.Items {
		if snapshot.Items[i].Section == "" {
			snapshot.Items[i].Section = kitchen.SectionFor(snapshot.Items[i].Category)
		}
	}
	snapshot.TotalAmount = snapshot.Total()

	number, err := s.recordConfirmed(ctx, snapshot)
	if err != nil {
		s.mu.Lock()
		delete(s.admitting, orderID)
		s.mu.Unlock()
		return domain.Order{}, err
	}
	snapshot.OrderNumber = number

	// commit point: the order only reads back confirmed once the history
	// row exists
	s.mu.Lock()
	o.Status = domain.OrderConfirmed
	o.OrderNumber = number
	o.UpdatedAt = s.now()
	result := cloneOrder(*o)
	delete(s.admitting, orderID)
	s.mu.Unlock()

	if s.kitchen != nil {
		s.kitchen.AddOrder(snapshot)
	}
	if s.relay != nil {
		msg := domain.OrderConfirmedMessage{
			OrderID:     snapshot.ID,
			OrderNumber: number,
			TableID:     snapshot.TableID,
			WaiterID:    snapshot.WaiterID,
			Items:       snapshot.Items,
			TotalAmount: snapshot.TotalAmount,
			Preference:  snapshot.OrderPreference,
			ConfirmedAt: s.now(),
		}
		if err := s.relay.OrderConfirmed(ctx, msg); err != nil {
			s.lg.Error("order_publish_failed", err, map[string]any{"order_id": snapshot.ID})
		}
	}
	s.lg.Info("order_confirmed", map[string]any{
		"order_id":     snapshot.ID,
		"order_number": number,
		"table_id":     snapshot.TableID,
		"total":        snapshot.TotalAmount,
	})
	return result, nil
}

// recordConfirmed numbers the order and persists it. The day-scoped sequence
// comes from a count outside the insert transaction, so a concurrent confirm
// can claim the same number first; the unique constraint rejects the loser
// and the next attempt reads the advanced count.
func (s *Store) recordConfirmed(ctx context.Context, snapshot domain.Order) (string, error) {
	const attempts = 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		number, err := s.orderNumber(ctx)
		if err != nil {
			return "", err
		}
		if s.history == nil {
			return number, nil
		}
		confirmed := snapshot
		confirmed.Status = domain.OrderConfirmed
		confirmed.OrderNumber = number
		err = s.history.InsertConfirmedTx(ctx, confirmed, number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return "", fmt.Errorf("record confirmed order: %w", err)
		}
		lastErr = err
	}
	return "", fmt.Errorf("record confirmed order: %w", lastErr)
}

// orderNumber builds the day-scoped sequence number (ORD_YYYYMMDD_NNN).
func (s *Store) orderNumber(ctx context.Context) (string, error) {
	seq := 0
	if s.history != nil {
		n, err := s.history.CountToday(ctx)
		if err != nil {
			return "", fmt.Errorf("order sequence: %w", err)
		}
		seq = n
	}
	return fmt.Sprintf("ORD_%s_%03d", s.now().Format("20060102"), seq+1), nil
}

func (s *Store) publishStatusChange(ctx context.Context, orderID string, old, status domain.OrderStatus) {
	if s.relay == nil || old == status {
		return
	}
	msg := domain.StatusChangedMessage{
		OrderID:   orderID,
		OldStatus: old,
		NewStatus: status,
		ChangedBy: "order-service",
		Timestamp: s.now(),
	}
	if err := s.relay.StatusChanged(ctx, msg); err != nil {
		s.lg.Error("status_publish_failed", err, map[string]any{"order_id": orderID})
	}
}

func cloneOrder(o domain.Order) domain.Order {
	out := o
	out.Items = make([]domain.OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	if o.SplitDetails != nil {
		out.SplitDetails = append([]domain.SplitShare(nil), o.SplitDetails...)
	}
	return out
}
