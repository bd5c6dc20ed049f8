package waiter

import "time"

// turnoverWindow bounds the table turnover query to the current shift.
const turnoverWindow = 8 * time.Hour

// Efficiency is the share of a waiter's orders that reached completion.
// A waiter with no orders on record scores 100.
func (l *Ledger) Efficiency(waiterID string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	open := 0
	for _, o := range l.assigned {
		if o.WaiterID == waiterID {
			open++
		}
	}
	done := 0
	for _, c := range l.completed {
		if c.order.WaiterID == waiterID {
			done++
		}
	}
	total := open + done
	if total == 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}

// AverageOrderTime reports the mean minutes from order creation to delivery
// for a waiter's completed orders.
func (l *Ledger) AverageOrderTime(waiterID string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum float64
	var n int
	for _, c := range l.completed {
		if c.order.WaiterID != waiterID || c.order.CreatedAt.IsZero() {
			continue
		}
		sum += c.completedAt.Sub(c.order.CreatedAt).Minutes()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TableTurnoverRate counts orders seen on a table within the shift window.
func (l *Ledger) TableTurnoverRate(tableID int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-turnoverWindow)
	count := 0
	for _, o := range l.assigned {
		if o.TableID == tableID && o.CreatedAt.After(cutoff) {
			count++
		}
	}
	for _, c := range l.completed {
		if c.order.TableID == tableID && c.completedAt.After(cutoff) {
			count++
		}
	}
	return count
}
