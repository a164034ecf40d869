package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends JSON events to a durable topic exchange. A channel dropped
// by the broker is redialed on the next publish.
type Publisher struct {
	mu       sync.Mutex
	url      string
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
}

func NewPublisher(url, exchange string, log *zap.Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: exchange,
		log:      log.With(zap.String("component", "publisher"), zap.String("exchange", exchange)),
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

// connect dials the broker, opens a channel and declares the exchange.
// Callers hold p.mu, except NewPublisher.
func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		// nil on a graceful Close
		if amqpErr, ok := <-closed; ok && amqpErr != nil {
			p.log.Warn("AMQP channel closed by broker",
				zap.Int("code", amqpErr.Code),
				zap.String("reason", amqpErr.Reason),
			)
		}
	}()

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	p.closeLocked()
	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("reconnect: %w", err)
	}

	p.log.Info("AMQP channel reopened")
	return p.ch, nil
}

// PublishJSON marshals v and publishes it under the given routing key.
// amqp channels are not safe for concurrent publishing, hence the mutex.
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", key, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.publishLocked(ctx, key, msg)
	if errors.Is(err, amqp.ErrClosed) {
		// closed between the check and the publish; one fresh channel
		p.closeLocked()
		err = p.publishLocked(ctx, key, msg)
	}
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	p.log.Debug("Event published", zap.String("routing_key", key))
	return nil
}

func (p *Publisher) publishLocked(ctx context.Context, key string, msg amqp.Publishing) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, p.exchange, key, false, false, msg)
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}
