// Package notifier publishes booking notification events to RabbitMQ.
// It satisfies the resolver's Notifier contract; errors are returned so
// the caller can log and ignore them without interrupting the request.
package notifier

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/trainee-seat-reservation/internal/model"
	q "github.com/iliyamo/trainee-seat-reservation/internal/queue"
)

const queueName = "booking.notifications"

// Publisher dials the broker per publish. Bookings are rare enough
// that connection reuse is not worth the reconnect handling.
type Publisher struct{}

// New returns a Publisher.
func New() *Publisher { return &Publisher{} }

// BookingConfirmed publishes a confirmation event for a new booking.
func (p *Publisher) BookingConfirmed(ctx context.Context, b *model.Booking) error {
	return publish(ctx, eventFor(q.KindBookingConfirmed, b))
}

// BookingCancelled publishes a cancellation event for a deleted booking.
func (p *Publisher) BookingCancelled(ctx context.Context, b *model.Booking) error {
	return publish(ctx, eventFor(q.KindBookingCancelled, b))
}

func eventFor(kind q.NotificationKind, b *model.Booking) q.BookingNotificationEvent {
	return q.BookingNotificationEvent{
		Kind:        kind,
		BookingID:   b.ID,
		UserName:    b.UserName,
		UserEmail:   b.UserEmail,
		LayoutName:  b.LayoutName,
		SeatID:      b.SeatID,
		BookingDate: b.BookingDate,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// publish sends one persistent JSON message to the notification queue.
// It never panics; any error is logged and returned.
func publish(ctx context.Context, event q.BookingNotificationEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
