package notify

import (
	"context"
	"encoding/json"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/connections/rabbitmq"
	"restaurant-pos/internal/domain"
)

// Subscriber consumes the notifications queue and replays ready events into
// local sinks. It is the cross-process counterpart of the relay: a waiter
// terminal runs this to see dispatches from a kitchen running elsewhere.
type Subscriber struct {
	mq       *rabbitmq.Client
	consumer string
	prefetch int
	sinks    []Sink
	lg       *logger.Logger
}

func NewSubscriber(mq *rabbitmq.Client, consumer string, prefetch int, lg *logger.Logger, sinks ...Sink) *Subscriber {
	if lg == nil {
		lg = logger.New("notification-subscriber")
	}
	return &Subscriber{mq: mq, consumer: consumer, prefetch: prefetch, sinks: sinks, lg: lg}
}

// Run consumes until ctx is cancelled. Undecodable payloads are rejected
// without requeue so the broker dead-letters them.
func (s *Subscriber) Run(ctx context.Context) error {
	msgs, err := s.mq.Consume(rabbitmq.NotificationsQueue, s.consumer, s.prefetch)
	if err != nil {
		return err
	}
	s.lg.Info("subscriber_started", map[string]any{"queue": rabbitmq.NotificationsQueue})

	for {
		select {
		case <-ctx.Done():
			s.lg.Info("graceful_shutdown", nil)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			var msg domain.OrderReadyMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				s.lg.Error("notification_decode_failed", err, nil)
				_ = d.Nack(false, false)
				continue
			}
			n := domain.Notification{
				ID:               msg.NotificationID,
				OrderID:          msg.OrderID,
				TableID:          msg.TableID,
				Message:          msg.Message,
				Type:             domain.NotifyReady,
				Timestamp:        msg.DispatchedAt,
				AssignedWaiterID: msg.AssignedWaiterID,
				OrderDetails: &domain.OrderSnapshot{
					Items:       msg.Items,
					TotalAmount: msg.TotalAmount,
				},
			}
			for _, sink := range s.sinks {
				sink.ReadyNotification(n)
			}
			s.lg.Debug("notification_received", map[string]any{"order_id": msg.OrderID, "table_id": msg.TableID})
			_ = d.Ack(false)
		}
	}
}
