package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/medibook/medibook-booking-gateway/internal/config"
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
)

// AppointmentListener consumes appointment lifecycle events published by the
// backend and drops the affected taken-slot cache entries, so availability
// answers reflect bookings made outside this gateway.
type AppointmentListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cache   out.CachePort
	cfg     *config.Config
	logger  out.LoggerPort
}

// AppointmentEventMessage is the body published on medibook.appointment.*
// routing keys. Date is the appointment day, not the publish time.
type AppointmentEventMessage struct {
	AppointmentID int64               `json:"appointmentId"`
	DoctorID      int64               `json:"doctorId"`
	Date          *jsontypes.CivilDate `json:"date"`
	Status        string              `json:"status"`
}

func NewAppointmentListener(cache out.CachePort, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:    conn,
		channel: channel,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("appointment.message.failed", out.LogFields{
						"error":       err.Error(),
						"routing_key": msg.RoutingKey,
					})
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.Queue,
	})

	return nil
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	verb, err := parseAppointmentRoutingKey(msg.RoutingKey)
	if err != nil {
		return err
	}

	var event AppointmentEventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"verb":           verb,
		"appointment_id": event.AppointmentID,
		"doctor_id":      event.DoctorID,
	})

	if l.cache == nil {
		return nil
	}

	// Events without a doctor and day cannot be keyed, so everything goes.
	if event.DoctorID == 0 || event.Date == nil {
		l.cache.PurgeTakenSlots(ctx)
		return nil
	}

	l.cache.InvalidateTakenSlots(ctx, event.DoctorID, *event.Date)

	l.logger.Info("appointment.message.invalidated", out.LogFields{
		"doctor_id": event.DoctorID,
		"date":      event.Date.String(),
	})

	return nil
}

// Routing keys look like medibook.appointment.created or
// medibook.appointment.cancelled. The last segment is the event verb.
func parseAppointmentRoutingKey(routingKey string) (string, error) {
	parts := strings.Split(routingKey, ".")
	if len(parts) < 3 || parts[1] != "appointment" {
		return "", fmt.Errorf("invalid routing key: %s", routingKey)
	}
	return parts[len(parts)-1], nil
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
