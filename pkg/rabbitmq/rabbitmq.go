package rabbitmq

import (
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

const (
	// OrderExchange is the topic exchange order events are published to.
	OrderExchange = "orders"
	// OrderEventsQueue receives every order event for auditing.
	OrderEventsQueue = "order_events"
	orderBindingKey  = "order.#"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the order topology.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected, exchange %s and queue %s declared.", OrderExchange, OrderEventsQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareTopology(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(
		OrderExchange, // name
		"topic",       // kind
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", OrderExchange, err)
	}

	_, err = ch.QueueDeclare(
		OrderEventsQueue, // name
		true,             // durable (persists messages across broker restarts)
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", OrderEventsQueue, err)
	}

	if err := ch.QueueBind(OrderEventsQueue, orderBindingKey, OrderExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", OrderEventsQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to exchange with routingKey.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeOrderEvents starts a goroutine that passes every message on the
// order events queue to handler. Messages are acked when handler succeeds
// and dropped (nacked without requeue) when it fails, so a poison message
// cannot loop forever.
func (c *Client) ConsumeOrderEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		OrderEventsQueue, // queue
		"",               // consumer tag
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for order events on %s", OrderEventsQueue)

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}

// LogOrderEvent is a handler for ConsumeOrderEvents that writes each event
// to the log as an audit trail.
func LogOrderEvent(msg amqp.Delivery) error {
	if msg.ContentType != "" && msg.ContentType != "application/json" {
		return fmt.Errorf("unexpected content type %q", msg.ContentType)
	}
	log.Printf("Order event %s: %s", msg.RoutingKey, msg.Body)
	return nil
}
