// Package waiter tracks delivery: which waiter handles which ready order and
// what state each table is in. Waiter and table masters persist in the
// masters database; the ready/assigned order pools are runtime state fed by
// kitchen notifications.
package waiter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

var (
	ErrWaiterNotFound = errors.New("waiter not found")
	ErrTableNotFound  = errors.New("table not found")
	ErrOrderNotFound  = errors.New("order not assigned or ready")
)

type completedOrder struct {
	order       domain.Order
	completedAt time.Time
}

type Ledger struct {
	db *gorm.DB

	mu        sync.Mutex
	ready     []domain.Order
	assigned  []domain.Order
	completed []completedOrder

	now func() time.Time
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// --- waiter masters -----------------------------------------------------

func (l *Ledger) AddWaiter(w domain.Waiter) error {
	if w.Status == "" {
		w.Status = domain.WaiterActive
	}
	if err := l.db.Create(&w).Error; err != nil {
		return fmt.Errorf("add waiter: %w", err)
	}
	return nil
}

func (l *Ledger) Waiters() ([]domain.Waiter, error) {
	var out []domain.Waiter
	if err := l.db.Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list waiters: %w", err)
	}
	return out, nil
}

func (l *Ledger) UpdateWaiterStatus(waiterID string, status domain.WaiterStatus) error {
	res := l.db.Model(&domain.Waiter{}).Where("id = ?", waiterID).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update waiter status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWaiterNotFound
	}
	return nil
}

// AssignTables replaces a waiter's table set and stamps the waiter on each
// table row.
func (l *Ledger) AssignTables(waiterID string, tableIDs []int) error {
	var w domain.Waiter
	if err := l.db.First(&w, "id = ?", waiterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWaiterNotFound
		}
		return fmt.Errorf("assign tables: %w", err)
	}
	w.AssignedTables = tableIDs
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&w).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Table{}).Where("id IN ?", tableIDs).Update("waiter_id", waiterID).Error
	})
}

// --- table masters ------------------------------------------------------

// AddTable stores the table and returns the row with its generated id.
func (l *Ledger) AddTable(t domain.Table) (domain.Table, error) {
	if t.Status == "" {
		t.Status = domain.TableAvailable
	}
	if err := l.db.Create(&t).Error; err != nil {
		return domain.Table{}, fmt.Errorf("add table: %w", err)
	}
	return t, nil
}

func (l *Ledger) Tables() ([]domain.Table, error) {
	var out []domain.Table
	if err := l.db.Order("number").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return out, nil
}

func (l *Ledger) UpdateTableStatus(tableID int, status domain.TableStatus) error {
	res := l.db.Model(&domain.Table{}).Where("id = ?", tableID).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update table status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTableNotFound
	}
	return nil
}

func (l *Ledger) AssignWaiterToTable(tableID int, waiterID string) error {
	var w domain.Waiter
	if err := l.db.First(&w, "id = ?", waiterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWaiterNotFound
		}
		return fmt.Errorf("assign waiter: %w", err)
	}
	found := false
	for _, id := range w.AssignedTables {
		if id == tableID {
			found = true
			break
		}
	}
	if !found {
		w.AssignedTables = append(w.AssignedTables, tableID)
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Table{}).Where("id = ?", tableID).Update("waiter_id", waiterID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTableNotFound
		}
		return tx.Save(&w).Error
	})
}

// MarkTableOccupied is the side effect of opening an order on a table.
func (l *Ledger) MarkTableOccupied(tableID int) error {
	return l.UpdateTableStatus(tableID, domain.TableOccupied)
}

// --- ready / assigned pools --------------------------------------------

// ReadyNotification feeds the ready pool from a kitchen dispatch. Redelivered
// notifications for an order already pooled are dropped.
func (l *Ledger) ReadyNotification(n domain.Notification) {
	if n.Type != domain.NotifyReady || n.OrderDetails == nil {
		return
	}
	order := domain.Order{
		ID:          n.OrderID,
		TableID:     n.TableID,
		WaiterID:    n.AssignedWaiterID,
		Items:       append([]domain.OrderItem(nil), n.OrderDetails.Items...),
		Status:      domain.OrderReady,
		CreatedAt:   n.Timestamp,
		UpdatedAt:   n.Timestamp,
		TotalAmount: n.OrderDetails.TotalAmount,
	}
	l.AddReadyOrder(order)
}

func (l *Ledger) AddReadyOrder(order domain.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, o := range l.ready {
		if o.ID == order.ID {
			return
		}
	}
	for _, o := range l.assigned {
		if o.ID == order.ID {
			return
		}
	}
	order.Status = domain.OrderReady
	l.ready = append(l.ready, order)
}

func (l *Ledger) ReadyOrders() []domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Order, len(l.ready))
	copy(out, l.ready)
	return out
}

func (l *Ledger) AssignedOrders() []domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Order, len(l.assigned))
	copy(out, l.assigned)
	return out
}

// AssignOrder moves a ready order to the assigned pool and stamps the waiter.
func (l *Ledger) AssignOrder(orderID, waiterID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, o := range l.ready {
		if o.ID == orderID {
			o.WaiterID = waiterID
			l.ready = append(l.ready[:i], l.ready[i+1:]...)
			l.assigned = append(l.assigned, o)
			return nil
		}
	}
	return ErrOrderNotFound
}

// CompleteOrder removes the order from the assigned pool. The order is kept
// on a completed list that only feeds the analytics queries.
func (l *Ledger) CompleteOrder(orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, o := range l.assigned {
		if o.ID == orderID {
			o.Status = domain.OrderCompleted
			l.assigned = append(l.assigned[:i], l.assigned[i+1:]...)
			l.completed = append(l.completed, completedOrder{order: o, completedAt: l.now()})
			return nil
		}
	}
	return ErrOrderNotFound
}

func (l *Ledger) WaiterOrders(waiterID string) []domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.Order
	for _, o := range l.assigned {
		if o.WaiterID == waiterID {
			out = append(out, o)
		}
	}
	return out
}

func (l *Ledger) TableOrders(tableID int) []domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.Order
	for _, o := range l.assigned {
		if o.TableID == tableID {
			out = append(out, o)
		}
	}
	return out
}
