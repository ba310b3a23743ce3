package bookingevents

import (
	"context"
	"errors"
	"sync"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventBookingCommitted is the single event type emitted by the admission
// flow. Consumers (reminder and notification services) key off it.
const EventBookingCommitted = "booking.committed"

// BookingEventMessage is the payload published to the booking events queue.
type BookingEventMessage struct {
	Event         string    `json:"event"`
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	PatientID     string    `json:"patient_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	EmittedAt     time.Time `json:"emitted_at"`
}

// Service publishes committed bookings to a durable RabbitMQ queue with
// publisher confirms.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	queue    string
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService initializes the queue service, declares the durable queue and
// enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, queue string) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}
	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Service{ch: ch, log: log, queue: queue, confirms: confirms}, nil
}

var _ contracts.BookingEventPublisher = (*Service)(nil)

func (s *Service) PublishBookingCommitted(ctx context.Context, appointment *models.Appointment) error {
	msg := BookingEventMessage{
		Event:         EventBookingCommitted,
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Start:         appointment.Start,
		End:           appointment.End,
		EmittedAt:     time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	// Publishing and waiting on the confirm must not interleave between
	// goroutines; confirms arrive in publish order per channel.
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx,
		"",      // exchange
		s.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmation := <-s.confirms:
		if !confirmation.Ack {
			return exceptions.ErrQueuePublish(errors.New("broker nacked publish"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}

	s.log.Debug("bookingevents: published booking.committed",
		zap.String("appointment_id", appointment.ID),
	)
	return nil
}
