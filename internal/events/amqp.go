package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

var (
	ErrPublishNacked  = errors.New("publish NACK from broker")
	ErrConfirmsClosed = errors.New("amqp confirm channel closed")
)

// AMQPPublisher publishes events to a fanout exchange with publisher confirms.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	acks <-chan amqp.Confirmation
	mu   sync.Mutex // confirms arrive in publish order
}

// DialAMQP connects to the broker and declares the exchange.
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enabling publisher confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, acks: acks}, nil
}

// Publish sends event as JSON and waits for the broker's confirm.
func (p *AMQPPublisher) Publish(routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	tag := p.ch.GetNextPublishSeqNo()
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing %s: %w", routingKey, err)
	}

	return awaitConfirm(ctx, p.acks, tag)
}

// awaitConfirm waits for the confirm carrying tag. Confirms for earlier
// publishes that timed out are discarded.
func awaitConfirm(ctx context.Context, acks <-chan amqp.Confirmation, tag uint64) error {
	for {
		select {
		case conf, ok := <-acks:
			if !ok {
				return ErrConfirmsClosed
			}
			if conf.DeliveryTag < tag {
				continue
			}
			if conf.Ack {
				return nil
			}
			return ErrPublishNacked
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close shuts the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
