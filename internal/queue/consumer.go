package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const customerQueueName = "customer.created"

// StartCustomerConsumer connects to RabbitMQ, declares the durable
// customer.created queue, and consumes messages forever. Each event is
// written to the structured log. The function runs a reconnect loop with
// backoff and keeps the server operating through broker outages; bad
// messages are rejected without requeueing to avoid tight loops.
func StartCustomerConsumer(url string, log zerolog.Logger) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("customer-consumer: dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, log); err != nil {
			log.Warn().Err(err).Msg("customer-consumer: consume loop ended, reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, log zerolog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn().Err(err).Msg("customer-consumer: set QoS failed")
	}

	if _, err := ch.QueueDeclare(customerQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(customerQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, log); err != nil {
			log.Error().Err(err).Msg("customer-consumer: handle message failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, log zerolog.Logger) error {
	var ev CustomerCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	log.Info().
		Uint64("customer_id", ev.CustomerID).
		Int("store_id", ev.StoreID).
		Str("name", ev.FirstName+" "+ev.LastName).
		Str("city", ev.City).
		Str("country", ev.Country).
		Str("created_at", ev.CreatedAt).
		Msg("customer created")
	return nil
}
