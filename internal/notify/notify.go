// Package notify publishes finished summaries to an AMQP exchange.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/schema"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishTimeout bounds a single publish.
const publishTimeout = 5 * time.Second

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher sends summaries to a durable direct exchange.
type AMQPPublisher struct {
	conn       *amqp.Connection
	ch         channel
	exchange   string
	routingKey string
	now        func() time.Time
}

var _ contract.Publisher = &AMQPPublisher{} // Compile-time check

// NewAMQPPublisher dials url and declares the exchange.
func NewAMQPPublisher(url, exchange, routingKey string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, routingKey: routingKey, now: time.Now}, nil
}

// Publish sends output as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, output *schema.SummaryOutput) error {
	if output == nil {
		return fmt.Errorf("nothing to publish")
	}
	msg := NewSummaryMessage(output, p.now())
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.MessageID,
			Timestamp:    msg.GeneratedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
