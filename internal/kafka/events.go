package kafka

import (
	"encoding/json"
	"fmt"

	"clinic-api/internal/config"
	"clinic-api/internal/logger"
	"clinic-api/internal/models"
)

// Events publishes the clinic's domain events. When disabled it is a no-op,
// so handlers never branch on whether Kafka is wired.
type Events struct {
	Producer *Producer
	Topics   config.TopicConfig
	Logger   *logger.Logger
	Enabled  bool
}

func NewEvents(producer *Producer, topics config.TopicConfig, log *logger.Logger, enabled bool) *Events {
	return &Events{Producer: producer, Topics: topics, Logger: log, Enabled: enabled}
}

func (e *Events) publish(topic, key string, v interface{}) error {
	if !e.Enabled || e.Producer == nil {
		return nil
	}
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := e.Producer.Publish(topic, key, value); err != nil {
		e.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
		return err
	}
	return nil
}

func (e *Events) PublishBookingCreated(booking models.Booking) error {
	return e.publish(e.Topics.BookingCreated, booking.ID, booking)
}

func (e *Events) PublishBookingStatusChanged(booking models.Booking) error {
	return e.publish(e.Topics.BookingStatusChanged, booking.ID, booking)
}

func (e *Events) PublishPaymentCreated(payment models.Payment) error {
	return e.publish(e.Topics.PaymentCreated, payment.ID, payment)
}

func (e *Events) PublishContactSubmitted(submission models.ContactSubmission) error {
	return e.publish(e.Topics.ContactSubmitted, submission.ID, submission)
}
