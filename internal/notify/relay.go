package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/connections/rabbitmq"
	"restaurant-pos/internal/domain"
)

// Sink receives ready notifications inside this process.
type Sink interface {
	ReadyNotification(n domain.Notification)
}

// Relay is the bridge between the stores and the broker. It implements the
// kitchen's Emitter and the orderbook's Publisher. With a nil client it
// degrades to in-process delivery only.
type Relay struct {
	mq    *rabbitmq.Client
	sinks []Sink
	lg    *logger.Logger
}

func NewRelay(mq *rabbitmq.Client, lg *logger.Logger, sinks ...Sink) *Relay {
	if lg == nil {
		lg = logger.New("notify-relay")
	}
	return &Relay{mq: mq, sinks: sinks, lg: lg}
}

// OrderReady delivers the snapshot to the local sinks and fans it out on the
// broker. Local delivery happens first so the waiter screen does not depend
// on broker availability.
func (r *Relay) OrderReady(n domain.Notification) {
	for _, sink := range r.sinks {
		sink.ReadyNotification(n)
	}
	if r.mq == nil {
		return
	}

	var items []domain.OrderItem
	var total float64
	if n.OrderDetails != nil {
		items = n.OrderDetails.Items
		total = n.OrderDetails.TotalAmount
	}
	msg := domain.OrderReadyMessage{
		NotificationID:   n.ID,
		OrderID:          n.OrderID,
		TableID:          n.TableID,
		Message:          n.Message,
		AssignedWaiterID: n.AssignedWaiterID,
		Items:            items,
		TotalAmount:      total,
		DispatchedAt:     n.Timestamp,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		r.lg.Error("notification_encode_failed", err, map[string]any{"order_id": n.OrderID})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = r.mq.Publish(ctx, rabbitmq.NotificationsExchange, "", body, amqp.Table{
		"x-source": "kitchen",
	})
	if err != nil {
		r.lg.Error("notification_publish_failed", err, map[string]any{"order_id": n.OrderID})
		return
	}
	r.lg.Debug("notification_published", map[string]any{"order_id": n.OrderID, "table_id": n.TableID})
}

// OrderConfirmed publishes the admission event on the orders topic.
func (r *Relay) OrderConfirmed(ctx context.Context, msg domain.OrderConfirmedMessage) error {
	if r.mq == nil {
		return nil
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode confirmed order: %w", err)
	}
	key := fmt.Sprintf("kitchen.confirmed.%d", msg.TableID)
	if err := r.mq.Publish(ctx, rabbitmq.OrdersExchange, key, body, amqp.Table{
		"x-source": "order-service",
	}); err != nil {
		return fmt.Errorf("publish confirmed order: %w", err)
	}
	return nil
}

// StatusChanged publishes a non-admission status transition on the orders
// topic, keyed by the new status so consumers can bind selectively.
func (r *Relay) StatusChanged(ctx context.Context, msg domain.StatusChangedMessage) error {
	if r.mq == nil {
		return nil
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode status change: %w", err)
	}
	key := "order.status." + string(msg.NewStatus)
	if err := r.mq.Publish(ctx, rabbitmq.OrdersExchange, key, body, amqp.Table{
		"x-source": "order-service",
	}); err != nil {
		return fmt.Errorf("publish status change: %w", err)
	}
	return nil
}
