// Package amqp publishes session events to a RabbitMQ exchange.
package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// channel is the part of *amqp091.Channel used by the Publisher.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Publisher struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
}

// NewPublisher connects to the broker and declares the exchange.
func NewPublisher(url, exchangeName string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchangeName)
	if err != nil {
		conn.Close()
		return nil, err
	}

	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchangeName string) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		channel:      ch,
		exchangeName: exchangeName,
	}, nil
}

// Publish publishes a session event as persistent message.
func (p *Publisher) Publish(ctx context.Context, event models.SessionEvent) error {
	msg := NewSessionMessage(event)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName,   // exchange
		msg.RoutingKey(), // routing key
		false,            // mandatory
		false,            // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().
		Str("type", string(msg.Type)).
		Str("user", msg.UserID.String()).
		Str("exchange", p.exchangeName).
		Msg("published session event")

	return nil
}

// Run publishes all events received on the channel until it is closed
// or the context is done. Failed publishes are logged and skipped.
func (p *Publisher) Run(ctx context.Context, events <-chan models.SessionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			if err := p.Publish(ctx, event); err != nil {
				log.Error().Err(err).Str("type", string(event.Type)).Msg("publishing session event failed")
			}
		}
	}
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
