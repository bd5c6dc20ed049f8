package repository

import (
	"context"
	"sync"
	"time"

	"restaurant-pos/internal/domain"
)

// Memory is an in-process Orders implementation for tests and for running
// the API without Postgres (local demo mode).
type Memory struct {
	mu      sync.Mutex
	orders  map[string]domain.Order
	numbers map[string]string
	used    map[string]bool
	created map[string]time.Time
	log     map[string][]StatusEvent
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		orders:  make(map[string]domain.Order),
		numbers: make(map[string]string),
		used:    make(map[string]bool),
		created: make(map[string]time.Time),
		log:     make(map[string][]StatusEvent),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) InsertConfirmedTx(_ context.Context, order domain.Order, orderNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.used[orderNumber] {
		return ErrDuplicateOrderNumber
	}
	m.orders[order.ID] = order
	m.numbers[order.ID] = orderNumber
	m.used[orderNumber] = true
	m.created[order.ID] = m.now()
	m.log[order.ID] = append(m.log[order.ID], StatusEvent{
		Status:    order.Status,
		ChangedBy: "order-service",
		ChangedAt: m.now(),
	})
	return nil
}

func (m *Memory) AppendStatus(_ context.Context, orderID string, status domain.OrderStatus, changedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	m.orders[orderID] = o
	m.log[orderID] = append(m.log[orderID], StatusEvent{
		Status:    status,
		ChangedBy: changedBy,
		ChangedAt: m.now(),
	})
	return nil
}

// CountToday mirrors the SQL implementation's created_at::date filter so the
// ORD sequence restarts at the day boundary.
func (m *Memory) CountToday(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	y, mo, d := m.now().Date()
	count := 0
	for _, at := range m.created {
		cy, cmo, cd := at.Date()
		if cy == y && cmo == mo && cd == d {
			count++
		}
	}
	return count, nil
}

func (m *Memory) Timeline(_ context.Context, orderID string, limit, offset int) ([]StatusEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := m.log[orderID]
	if offset >= len(events) {
		return nil, nil
	}
	events = events[offset:]
	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	out := make([]StatusEvent, len(events))
	copy(out, events)
	return out, nil
}
