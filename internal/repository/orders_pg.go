// Package repository persists the order history: every confirmed order, its
// line items and an append-only status log that feeds the tracking timeline.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber reports a lost race on the day-scoped sequence;
	// the caller regenerates the number and retries.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

type StatusEvent struct {
	Status    domain.OrderStatus `json:"status"`
	ChangedBy string             `json:"changed_by"`
	ChangedAt time.Time          `json:"changed_at"`
}

type Orders interface {
	// InsertConfirmedTx writes the order, its items and the first status log
	// entry in one transaction.
	InsertConfirmedTx(ctx context.Context, order domain.Order, orderNumber string) error
	AppendStatus(ctx context.Context, orderID string, status domain.OrderStatus, changedBy string) error
	CountToday(ctx context.Context) (int, error)
	Timeline(ctx context.Context, orderID string, limit, offset int) ([]StatusEvent, error)
}

type OrdersPG struct {
	db *database.Conn
}

func NewOrdersPG(db *database.Conn) *OrdersPG { return &OrdersPG{db: db} }

func (r *OrdersPG) InsertConfirmedTx(ctx context.Context, order domain.Order, orderNumber string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders
		    (id, order_number, table_id, waiter_id, total_amount, status, order_preference, customer_notes, created_at, updated_at)
		VALUES
		    ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`,
		order.ID,
		orderNumber,
		order.TableID,
		nullIfEmpty(order.WaiterID),
		order.TotalAmount,
		string(order.Status),
		string(order.OrderPreference),
		nullIfEmpty(order.CustomerNotes),
		order.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, name, category, section, quantity, price, preparation_time, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		`, it.ID, order.ID, it.Name, it.Category, it.Section, it.Quantity, it.Price, it.PreparationTime, nullIfEmpty(it.Notes))
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", it.Name, err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, 'order-service', NOW())
	`, order.ID, string(order.Status))
	if err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *OrdersPG) AppendStatus(ctx context.Context, orderID string, status domain.OrderStatus, changedBy string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1
	`, orderID, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, NOW())
	`, orderID, string(status), changedBy)
	if err != nil {
		return fmt.Errorf("append status log: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *OrdersPG) CountToday(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders WHERE created_at::date = NOW()::date
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *OrdersPG) Timeline(ctx context.Context, orderID string, limit, offset int) ([]StatusEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id=$1
		ORDER BY changed_at ASC
		LIMIT $2 OFFSET $3
	`, orderID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	var out []StatusEvent
	for rows.Next() {
		var ev StatusEvent
		var status string
		if err := rows.Scan(&status, &ev.ChangedBy, &ev.ChangedAt); err != nil {
			return nil, err
		}
		ev.Status = domain.OrderStatus(status)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
