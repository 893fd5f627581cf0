package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"storefront-checkout/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const analyticsExchange = "checkout.analytics"

// Publisher is the fire-and-forget analytics side-channel. Publish
// failures are logged, never surfaced to the checkout flow.
type Publisher struct {
	cm      *ConnectionManager
	ctx     context.Context
	mu      sync.Mutex
	channel *amqp.Channel
}

func NewPublisher(ctx context.Context, cm *ConnectionManager) (*Publisher, error) {
	p := &Publisher{
		cm:  cm,
		ctx: ctx,
	}

	if err := p.ensureChannel(); err != nil {
		return nil, fmt.Errorf("failed to open publisher channel: %w", err)
	}

	return p, nil
}

func (p *Publisher) ensureChannel() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}

	if p.cm == nil {
		return fmt.Errorf("no rabbitmq connection available")
	}
	conn := p.cm.GetConnection()
	if conn == nil {
		return fmt.Errorf("no rabbitmq connection available")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		analyticsExchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.channel = ch
	return nil
}

// Publish sends an analytics event. The routing key doubles as the event
// pattern in the envelope.
func (p *Publisher) Publish(routingKey string, payload interface{}) error {
	if err := p.ensureChannel(); err != nil {
		return err
	}

	msg, err := NewMessage(payload, nil)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.PublishWithContext(
		p.ctx,
		analyticsExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		*msg.GeneratePubsubPayload(routingKey),
	); err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	return nil
}

// TryPublish is Publish with the error swallowed into the log. Used on
// paths that must never fail because of analytics.
func (p *Publisher) TryPublish(routingKey string, payload interface{}) {
	if err := p.Publish(routingKey, payload); err != nil {
		logger.Warning.Printf("analytics publish failed for %s: %v", routingKey, err)
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}
