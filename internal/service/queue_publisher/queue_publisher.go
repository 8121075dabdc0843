// Package queue_publisher publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	q "github.com/filmstore/sakila-api/internal/queue"
)

// Publisher publishes events to the broker at URL. The zero value is not
// usable; construct with New.
type Publisher struct {
	url string
	log zerolog.Logger
}

// New returns a Publisher for the given broker URL.
func New(url string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// PublishCustomerCreated publishes a CustomerCreatedEvent to the
// "customer.created" queue. The function never panics; any error is logged
// and returned so the caller can choose to ignore it. Messages are marked
// as persistent.
func (p *Publisher) PublishCustomerCreated(ctx context.Context, event q.CustomerCreatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		"customer.created", // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                 // default exchange
		"customer.created", // routing key = queue name
		false,              // mandatory
		false,              // immediate
		pub,
	); err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}

	return nil
}
