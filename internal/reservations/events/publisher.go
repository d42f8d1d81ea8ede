// Package events publishes reservation lifecycle events to the Kafka
// stream. Publishing is best-effort: a broker outage never fails the
// booking that triggered it.
package events

import (
	"context"
	"time"

	"tably/pkg/kafka"
	"tably/pkg/logger"
	"tably/pkg/model"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"

	schemaVersion = "1"
	source        = "reservations"
)

// Publisher receives reservation lifecycle notifications.
type Publisher interface {
	ReservationConfirmed(ctx context.Context, res model.Reservation)
	ReservationCancelled(ctx context.Context, res model.Reservation)
	Close() error
}

// producer is the slice of the Kafka producer the publisher needs;
// narrowed for testability.
type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// ReservationEvent is the wire payload for both event types.
type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	CustomerName  string    `json:"customer_name"`
	PartySize     int       `json:"party_size"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	TableID       int       `json:"table_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type KafkaPublisher struct {
	producer producer
	log      *logger.Logger
}

func NewKafkaPublisher(p *kafka.Producer, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: p, log: log}
}

func (kp *KafkaPublisher) ReservationConfirmed(ctx context.Context, res model.Reservation) {
	kp.publish(ctx, EventReservationConfirmed, res)
}

func (kp *KafkaPublisher) ReservationCancelled(ctx context.Context, res model.Reservation) {
	kp.publish(ctx, EventReservationCancelled, res)
}

func (kp *KafkaPublisher) publish(ctx context.Context, eventType string, res model.Reservation) {
	msg := kafka.NewMessage().
		WithKey(res.ID).
		WithEventType(eventType).
		WithSource(source).
		WithHeader(kafka.HeaderSchemaVersion, schemaVersion).
		WithValue(ReservationEvent{
			ReservationID: res.ID,
			CustomerName:  res.CustomerName,
			PartySize:     res.PartySize,
			Date:          res.Slot.Date.String(),
			Time:          res.Slot.Time.String(),
			TableID:       res.TableID,
			Status:        res.Status,
			OccurredAt:    time.Now().UTC(),
		}).
		Build()

	if err := kp.producer.Publish(ctx, msg); err != nil {
		kp.log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", res.ID,
			"error", err,
		)
	}
}

func (kp *KafkaPublisher) Close() error {
	return kp.producer.Close()
}

// Noop is the publisher used when no brokers are configured.
type Noop struct{}

func (Noop) ReservationConfirmed(context.Context, model.Reservation) {}
func (Noop) ReservationCancelled(context.Context, model.Reservation) {}
func (Noop) Close() error                                            { return nil }
